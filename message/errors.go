package message

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/yamt/enetconf/ncerr"
)

// Kind classifies a DecodeError.
type Kind int

const (
	// KindUnknownRoot: the document element is neither <hello> nor <rpc>.
	KindUnknownRoot Kind = iota + 1
	// KindMissingMessageID: <rpc> has no message-id attribute.
	KindMissingMessageID
	// KindMissingCapabilities: <hello> has no <capabilities>.
	KindMissingCapabilities
	// KindUnsupportedOperation: <rpc> has no supported operation child.
	KindUnsupportedOperation
	// KindMissingSource: an operation requiring <source> has none.
	KindMissingSource
	// KindMissingDatastoreChild: an operation requiring <target> has none.
	KindMissingDatastoreChild
	// KindInvalidDatastore: <source> or <target> does not hold one of
	// <running>, <candidate>, <startup> or <url>.
	KindInvalidDatastore
	// KindMissingSelect: an xpath <filter> has no select attribute.
	KindMissingSelect
	// KindInvalidFilterType: <filter> type is neither subtree nor xpath.
	KindInvalidFilterType
	// KindInvalidEnumValue: an enumerated <edit-config> parameter holds
	// an unknown value.
	KindInvalidEnumValue
	// KindMissingAttribute: a required attribute is absent.
	KindMissingAttribute
	// KindExpectedText: an element expected to hold text does not hold
	// exactly one text node.
	KindExpectedText
	// KindInvalidSessionID: <session-id> is not a 32 bit unsigned integer.
	KindInvalidSessionID
)

var kindNames = map[Kind]string{
	KindUnknownRoot:           "unknown root",
	KindMissingMessageID:      "missing message-id",
	KindMissingCapabilities:   "missing capabilities",
	KindUnsupportedOperation:  "unsupported operation",
	KindMissingSource:         "missing source",
	KindMissingDatastoreChild: "missing datastore",
	KindInvalidDatastore:      "invalid datastore",
	KindMissingSelect:         "missing select",
	KindInvalidFilterType:     "invalid filter type",
	KindInvalidEnumValue:      "invalid enum value",
	KindMissingAttribute:      "missing attribute",
	KindExpectedText:          "expected text",
	KindInvalidSessionID:      "invalid session-id",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DecodeError describes why a document could not be decoded.
type DecodeError struct {
	Kind Kind
	// Element is the name of the element the problem was found in.
	Element string
	// Field names the offending child element or attribute, if any.
	Field string
	// Value is the offending value, if any.
	Value string
}

func (e *DecodeError) Error() string {
	s := "decode: " + e.Kind.String()
	if e.Element != "" {
		s += " in <" + e.Element + ">"
	}
	if e.Field != "" {
		s += " field:" + e.Field
	}
	if e.Value != "" {
		s += fmt.Sprintf(" value:%q", e.Value)
	}
	return s
}

// Is reports whether target is a *DecodeError of the same Kind, so that
// errors.Is(err, message.ErrMissingSource) matches any missing source.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t != nil && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrUnknownRoot           = &DecodeError{Kind: KindUnknownRoot}
	ErrMissingMessageID      = &DecodeError{Kind: KindMissingMessageID}
	ErrMissingCapabilities   = &DecodeError{Kind: KindMissingCapabilities}
	ErrUnsupportedOperation  = &DecodeError{Kind: KindUnsupportedOperation}
	ErrMissingSource         = &DecodeError{Kind: KindMissingSource}
	ErrMissingDatastoreChild = &DecodeError{Kind: KindMissingDatastoreChild}
	ErrInvalidDatastore      = &DecodeError{Kind: KindInvalidDatastore}
	ErrMissingSelect         = &DecodeError{Kind: KindMissingSelect}
	ErrInvalidFilterType     = &DecodeError{Kind: KindInvalidFilterType}
	ErrInvalidEnumValue      = &DecodeError{Kind: KindInvalidEnumValue}
	ErrMissingAttribute      = &DecodeError{Kind: KindMissingAttribute}
	ErrExpectedText          = &DecodeError{Kind: KindExpectedText}
	ErrInvalidSessionID      = &DecodeError{Kind: KindInvalidSessionID}
)

// IsDecodeError returns the *DecodeError in err's chain, if any.
func IsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// RPCError returns the <rpc-error> reporting e to the peer.
func (e *DecodeError) RPCError() *ncerr.Error {
	msg := ncerr.WithMessage(e.Error())
	switch e.Kind {
	case KindUnknownRoot:
		return ncerr.UnknownElement(e.Element, ncerr.WithType(ncerr.TypeRPC), msg)
	case KindMissingMessageID:
		return ncerr.MissingAttribute(e.Field, e.Element, ncerr.WithType(ncerr.TypeRPC), msg)
	case KindMissingAttribute, KindMissingSelect:
		return ncerr.MissingAttribute(e.Field, e.Element, ncerr.WithType(ncerr.TypeProtocol), msg)
	case KindInvalidFilterType:
		return ncerr.BadAttribute(e.Field, e.Element, ncerr.WithType(ncerr.TypeProtocol), msg)
	case KindMissingCapabilities, KindMissingSource, KindMissingDatastoreChild:
		return ncerr.MissingElement(e.Field, ncerr.WithType(ncerr.TypeProtocol), msg)
	case KindInvalidDatastore, KindExpectedText:
		bad := e.Field
		if bad == "" {
			bad = e.Element
		}
		return ncerr.BadElement(bad, ncerr.WithType(ncerr.TypeProtocol), msg)
	case KindUnsupportedOperation:
		return ncerr.OperationNotSupported(ncerr.WithType(ncerr.TypeProtocol), msg)
	case KindInvalidEnumValue, KindInvalidSessionID:
		return ncerr.InvalidValue(ncerr.WithType(ncerr.TypeProtocol), msg)
	}
	return ncerr.OperationFailed(ncerr.WithType(ncerr.TypeApplication), msg)
}

func newError(kind Kind, element, field, value string) *DecodeError {
	return &DecodeError{Kind: kind, Element: element, Field: field, Value: value}
}
