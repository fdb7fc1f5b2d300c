package main

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/yamt/enetconf/framing"
	"github.com/yamt/enetconf/message"
	"github.com/yamt/enetconf/ncerr"
)

// result is one line of output.
type result struct {
	Index   int          `json:"index"`
	Source  string       `json:"source,omitempty"`
	Message any          `json:"message,omitempty"`
	Error   *ncerr.Error `json:"error,omitempty"`
}

type helloJSON struct {
	Type string `json:"type"`
	*message.Hello
}

type rpcJSON struct {
	Type      string            `json:"type"`
	MessageID string            `json:"message-id"`
	Operation string            `json:"operation"`
	Params    message.Operation `json:"params"`
}

func renderMessage(msg message.Message) any {
	switch m := msg.(type) {
	case *message.Hello:
		return helloJSON{Type: m.Name(), Hello: m}
	case *message.RPC:
		return rpcJSON{Type: m.Name(), MessageID: m.MessageID, Operation: m.Operation.Name(), Params: m.Operation}
	}
	return nil
}

// rpcError converts any failure into the <rpc-error> a server would send.
func rpcError(err error) *ncerr.Error {
	if de, ok := message.IsDecodeError(err); ok {
		return de.RPCError()
	}
	if e, ok := ncerr.As(err); ok {
		return e
	}
	var bad framing.ErrBadChunk
	switch {
	case errors.As(err, &bad), errors.Is(err, io.ErrUnexpectedEOF):
		return ncerr.MalformedMessage(ncerr.WithMessage(err.Error()))
	case errors.Is(err, framing.ErrMessageTooLarge):
		return ncerr.TooBig(ncerr.WithType(ncerr.TypeTransport), ncerr.WithMessage(err.Error()))
	}
	return ncerr.OperationFailed(ncerr.WithType(ncerr.TypeApplication), ncerr.WithMessage(err.Error()))
}

type encoder struct {
	enc *json.Encoder
}

func newEncoder(w io.Writer) *encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &encoder{enc: enc}
}

func (e *encoder) writeMessage(index int, source string, msg message.Message) error {
	return e.enc.Encode(result{Index: index, Source: source, Message: renderMessage(msg)})
}

func (e *encoder) writeError(index int, source string, err error) error {
	return e.enc.Encode(result{Index: index, Source: source, Error: rpcError(err)})
}
