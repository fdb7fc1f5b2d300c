package framing

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ErrBadChunk reports a chunked framing violation.
type ErrBadChunk struct {
	Message string
	Offset  int
}

func (e ErrBadChunk) Error() string {
	msg := "netconf bad chunk"
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Offset < 1 {
		return msg
	}
	return fmt.Sprintf("%s at input offset %d", msg, e.Offset)
}

var (
	// tokenEOM terminates each message of an end-of-message framed stream
	tokenEOM = []byte("]]>]]>")
	// chunkIntro starts each chunk header and the end-of-chunks marker
	chunkIntro = []byte("\n#")
)

// maxChunkSizeDigits is the length of the largest chunk-size, 4294967295.
const maxChunkSizeDigits = 10

// SplitEOM returns a bufio.SplitFunc suitable for RFC6242
// "end-of-message delimited" NETCONF transport streams.
//
// endOfMessage will be called at the end of each NETCONF message.
func SplitEOM(endOfMessage func()) bufio.SplitFunc {
	s := &eomSplitter{endOfMessage: endOfMessage}
	return s.split
}

type eomSplitter struct {
	endOfMessage func()
	// partial is set while part of a message has been returned
	partial bool
}

func (s *eomSplitter) split(b []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(b) == 0 {
		if s.partial {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return 0, nil, nil
	}
	if idx := bytes.Index(b, tokenEOM); idx > -1 {
		s.partial = false
		if s.endOfMessage != nil {
			s.endOfMessage()
		}
		return idx + len(tokenEOM), b[:idx], nil
	}
	if atEOF {
		s.partial = true
		return len(b), b, nil
	}
	if len(b) <= len(tokenEOM)*2 {
		return 0, nil, nil
	}
	// a delimiter may only begin within the last len(tokenEOM)-1 bytes
	n := len(b) - (len(tokenEOM) - 1)
	s.partial = true
	return n, b[:n], nil
}

// SplitChunked returns a bufio.SplitFunc suitable for decoding
// "chunked framing" NETCONF transport streams.
//
// endOfMessage will be called at the end of each NETCONF message, when
// an empty token is also returned.
//
// It must only be used with bufio.Scanner who have a buffer of
// at least 16 bytes.
func SplitChunked(endOfMessage func()) bufio.SplitFunc {
	s := &chunkedSplitter{endOfMessage: endOfMessage}
	return s.split
}

type chunkState int

const (
	chunkHeader chunkState = iota
	chunkSize
	chunkData
	chunkTrailer
)

type chunkedSplitter struct {
	endOfMessage func()
	state        chunkState
	// chunks counts the chunks of the current message
	chunks int
	// left is the number of bytes remaining in the current chunk
	left int
}

func (s *chunkedSplitter) split(b []byte, atEOF bool) (advance int, token []byte, err error) {
	for advance < len(b) {
		cur := b[advance:]
		switch s.state {
		case chunkHeader:
			// "\n#" followed by a size digit or '#', and a newline
			switch {
			case len(cur) < 4 && !atEOF:
				return advance, nil, nil
			case len(cur) < len(chunkIntro)+1 && bytes.HasPrefix(chunkIntro, cur):
				return advance, nil, io.ErrUnexpectedEOF
			case !bytes.HasPrefix(cur, chunkIntro):
				return advance, nil, ErrBadChunk{Message: "invalid chunk header"}
			}
			switch c := cur[2]; {
			case c == '#':
				advance += 3
				s.state = chunkTrailer
			case c >= '1' && c <= '9':
				advance += 2
				s.state = chunkSize
			default:
				return advance, nil, ErrBadChunk{Message: "invalid chunk size"}
			}
		case chunkSize:
			idx := bytes.IndexByte(cur, '\n')
			switch {
			case idx > maxChunkSizeDigits, idx < 0 && len(cur) > maxChunkSizeDigits:
				return advance, nil, ErrBadChunk{Message: "chunk size too large"}
			case idx < 0 && !atEOF:
				return advance, nil, nil
			case idx < 0:
				return advance, nil, io.ErrUnexpectedEOF
			}
			size, perr := strconv.ParseUint(string(cur[:idx]), 10, 32)
			if perr != nil {
				msg := perr.Error()
				if ne, ok := perr.(*strconv.NumError); ok {
					msg = ne.Err.Error()
				}
				return advance, nil, ErrBadChunk{Message: "invalid chunk size: " + msg}
			}
			advance += idx + 1
			s.left = int(size)
			s.state = chunkData
		case chunkData:
			n := len(cur)
			if s.left < n {
				n = s.left
			}
			if s.left -= n; s.left == 0 {
				s.state = chunkHeader
				s.chunks++
			}
			return advance + n, cur[:n], nil
		case chunkTrailer:
			if cur[0] != '\n' || s.chunks == 0 {
				return advance, nil, ErrBadChunk{Message: "invalid chunk terminator"}
			}
			advance++
			s.state = chunkHeader
			s.chunks = 0
			if s.endOfMessage != nil {
				s.endOfMessage()
			}
			// stop at the message boundary so the caller observes it
			// before the next message is decoded
			return advance, cur[:0], nil
		}
	}
	if atEOF && s.state != chunkHeader {
		return advance, nil, io.ErrUnexpectedEOF
	}
	return advance, nil, nil
}
