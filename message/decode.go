package message

import (
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/yamt/enetconf/xmlutil"
)

// Decode decodes the validated document (or document element) n into a
// Message. On failure the error is a *DecodeError and the Message is nil.
func Decode(n *xmlquery.Node) (Message, error) {
	root := xmlutil.Root(n)
	if root == nil {
		return nil, newError(KindUnknownRoot, "", "", "")
	}
	var (
		msg Message
		err error
	)
	switch root.Data {
	case elemRPC:
		msg, err = decodeRPC(root)
	case elemHello:
		msg, err = decodeHello(root)
	default:
		err = newError(KindUnknownRoot, root.Data, "", "")
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func decodeRPC(n *xmlquery.Node) (Message, error) {
	id, err := requireAttr(n, attrMessageID)
	if err != nil {
		return nil, kindAs(err, KindMissingMessageID)
	}
	op, err := decodeOperation(n)
	if err != nil {
		return nil, err
	}
	return &RPC{MessageID: id, Operation: op}, nil
}

func decodeHello(n *xmlquery.Node) (Message, error) {
	capabilities := xmlutil.Child(n, elemCapabilities)
	if capabilities == nil {
		return nil, newError(KindMissingCapabilities, elemHello, elemCapabilities, "")
	}
	hello := &Hello{Capabilities: decodeCapabilities(capabilities)}
	if sid := xmlutil.Child(n, elemSessionID); sid != nil {
		text, err := requireText(sid)
		if err != nil {
			return nil, err
		}
		v, perr := strconv.ParseUint(text, 10, 32)
		if perr != nil {
			return nil, newError(KindInvalidSessionID, elemHello, elemSessionID, text)
		}
		id := uint32(v)
		hello.SessionID = &id
	}
	return hello, nil
}

// decodeCapabilities returns the text of each <capability> child in
// document order. Other children, and capabilities not holding a single
// text value, are skipped.
func decodeCapabilities(n *xmlquery.Node) Capabilities {
	caps := Capabilities{}
	for _, c := range xmlutil.Children(n) {
		if c.Data != elemCapability {
			continue
		}
		if uri, ok := xmlutil.Text(c); ok {
			caps = append(caps, uri)
		}
	}
	return caps
}
