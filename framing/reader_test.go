package framing

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
)

func readAll(r *Reader) ([]string, error) {
	var msgs []string
	for {
		msg, err := r.ReadMessage()
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, string(msg))
	}
}

func TestReader(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   string
		opts    []ReaderOption
		want    []string
		wantErr error
	}{
		{name: "empty", input: "", wantErr: io.EOF},
		{name: "eom single", input: "<hello/>]]>]]>", want: []string{"<hello/>"}, wantErr: io.EOF},
		{
			name:    "eom several with trailing newline",
			input:   "<hello/>]]>]]>\n<rpc/>]]>]]>\n",
			want:    []string{"<hello/>", "\n<rpc/>"},
			wantErr: io.EOF,
		},
		{name: "eom truncated", input: "<hello/>]]>]]><rpc>", want: []string{"<hello/>"}, wantErr: io.ErrUnexpectedEOF},
		{name: "eom delimiter only", input: "]]>]]>", want: []string{""}, wantErr: io.EOF},
		{
			name:    "chunked",
			input:   "\n#3\n<rp\n#3\nc/>\n##\n\n#8\n<hello/>\n##\n",
			opts:    []ReaderOption{WithChunked()},
			want:    []string{"<rpc/>", "<hello/>"},
			wantErr: io.EOF,
		},
		{
			name:    "chunked trailing whitespace",
			input:   "\n#6\n<rpc/>\n##\n\n",
			opts:    []ReaderOption{WithChunked()},
			want:    []string{"<rpc/>"},
			wantErr: io.EOF,
		},
		{
			name:    "chunked truncated",
			input:   "\n#6\n<rpc/>\n#9\n<rp",
			opts:    []ReaderOption{WithChunked()},
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "too large",
			input:   "0123456789]]>]]>",
			opts:    []ReaderOption{WithMaxMessageSize(4)},
			wantErr: ErrMessageTooLarge,
		},
		{
			name:    "size limit disabled",
			input:   strings.Repeat("x", 100) + "]]>]]>",
			opts:    []ReaderOption{WithMaxMessageSize(0), WithBufferSize(8)},
			want:    []string{strings.Repeat("x", 100)},
			wantErr: io.EOF,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			got, err := readAll(NewReader(strings.NewReader(tc.input), tc.opts...))
			check.Equal(tc.want, got)
			check.ErrorIs(err, tc.wantErr)
		})
	}
}

func TestReaderBadChunk(t *testing.T) {
	check := assert.New(t)
	_, err := NewReader(strings.NewReader("<hello/>]]>]]>"), WithChunked()).ReadMessage()
	var bad ErrBadChunk
	check.ErrorAs(err, &bad)
}

func TestReaderSetChunked(t *testing.T) {
	check := assert.New(t)
	input := "<hello/>]]>]]>\n#6\n<rpc/>\n##\n\n#2\nab\n#1\nc\n##\n"
	// one byte at a time, to cross every boundary
	r := NewReader(iotest.OneByteReader(strings.NewReader(input)))
	check.False(r.Chunked())

	msg, err := r.ReadMessage()
	check.NoError(err)
	check.Equal("<hello/>", string(msg))

	r.SetChunked()
	r.SetChunked()
	check.True(r.Chunked())

	got, err := readAll(r)
	check.Equal([]string{"<rpc/>", "abc"}, got)
	check.ErrorIs(err, io.EOF)
}
