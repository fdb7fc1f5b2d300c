package framing

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const (
	// DefaultMaxMessageSize is the default limit on the size of a
	// decoded message.
	DefaultMaxMessageSize = 10 * 1024 * 1024

	// minBufferSize is the smallest buffer the chunked decoder works with.
	minBufferSize = 16
)

// ErrMessageTooLarge is returned by ReadMessage when a message exceeds
// the configured maximum size.
var ErrMessageTooLarge = errors.New("netconf message too large")

// Reader reads whole NETCONF messages from a framed stream.
//
// A Reader starts in end-of-message mode. After a <hello> exchange in
// which both peers advertise base:1.1, SetChunked switches the Reader to
// chunked framing for the rest of the stream.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	scanner *bufio.Scanner
	split   bufio.SplitFunc
	chunked bool
	eom     bool
	maxSize int
}

// ReaderOption is a Reader option function
type ReaderOption func(*Reader)

// WithChunked starts the Reader in chunked framing mode.
func WithChunked() ReaderOption { return func(r *Reader) { r.setChunked() } }

// WithMaxMessageSize limits the size of messages in bytes. Values below
// 1 disable the limit.
func WithMaxMessageSize(size int) ReaderOption { return func(r *Reader) { r.maxSize = size } }

// WithBufferSize sets the initial read buffer size.
func WithBufferSize(size int) ReaderOption {
	return func(r *Reader) {
		if size < minBufferSize {
			size = minBufferSize
		}
		r.scanner.Buffer(make([]byte, size), size*4)
	}
}

// NewReader returns a Reader decoding messages read from rd.
func NewReader(rd io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{scanner: bufio.NewScanner(rd), maxSize: DefaultMaxMessageSize}
	r.split = SplitEOM(r.endOfMessage)
	r.scanner.Split(r.splitFunc)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetChunked switches the Reader to chunked framing, starting with the
// next message. Calling it again has no effect.
func (r *Reader) SetChunked() {
	if !r.chunked {
		r.setChunked()
	}
}

// Chunked returns true if the Reader uses chunked framing.
func (r *Reader) Chunked() bool { return r.chunked }

func (r *Reader) setChunked() {
	r.chunked = true
	r.split = SplitChunked(r.endOfMessage)
}

func (r *Reader) endOfMessage() { r.eom = true }

// splitFunc delegates to the current framing mode's split function, so
// that the mode may change between messages. Whitespace at the end of
// the stream is discarded.
func (r *Reader) splitFunc(b []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(b) > 0 && len(bytes.TrimSpace(b)) == 0 {
		return len(b), nil, nil
	}
	return r.split(b, atEOF)
}

// ReadMessage returns the next message, without framing.
//
// io.EOF is returned when the stream ends between messages; trailing
// whitespace is ignored. io.ErrUnexpectedEOF is returned when it ends
// within one.
func (r *Reader) ReadMessage() ([]byte, error) {
	var msg []byte
	for r.scanner.Scan() {
		msg = append(msg, r.scanner.Bytes()...)
		if r.maxSize > 0 && len(msg) > r.maxSize {
			return nil, ErrMessageTooLarge
		}
		if r.eom {
			r.eom = false
			return msg, nil
		}
	}
	switch err := r.scanner.Err(); {
	case err == nil && len(msg) == 0:
		return nil, io.EOF
	case err == nil, err == io.ErrUnexpectedEOF:
		if len(bytes.TrimSpace(msg)) == 0 {
			return nil, io.EOF
		}
		return nil, io.ErrUnexpectedEOF
	default:
		return nil, errors.Wrap(err, "read message")
	}
}
