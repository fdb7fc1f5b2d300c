package ncerr

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

// Type represents the NETCONF error-type enumerate
type Type int

const (
	// TypeApplication is an application layer error
	TypeApplication Type = iota
	// TypeProtocol is a NETCONF protocol layer error
	TypeProtocol
	// TypeRPC is a NETCONF RPC layer error
	TypeRPC
	// TypeTransport is an error at the secure transport layer
	TypeTransport
)

var typeNames = [...]string{
	TypeApplication: "application",
	TypeProtocol:    "protocol",
	TypeRPC:         "rpc",
	TypeTransport:   "transport",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func (t *Type) UnmarshalText(b []byte) error {
	s := string(bytes.TrimSpace(b))
	for i, name := range typeNames {
		if name == s {
			*t = Type(i)
			return nil
		}
	}
	return errors.New("unknown value")
}

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Severity represents the NETCONF error-severity enumerate
type Severity int

const (
	// SeverityError indicates "error" level
	SeverityError Severity = iota
	// SeverityWarning indicates "warning" level.
	// (Not used in errors defined in RFC6241 Appendix A)
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error-tag values from RFC6241 Appendix A used by this module.
const (
	TagTooBig                = "too-big"
	TagMissingAttribute      = "missing-attribute"
	TagBadAttribute          = "bad-attribute"
	TagMissingElement        = "missing-element"
	TagBadElement            = "bad-element"
	TagUnknownElement        = "unknown-element"
	TagUnknownNamespace      = "unknown-namespace"
	TagInvalidValue          = "invalid-value"
	TagOperationNotSupported = "operation-not-supported"
	TagOperationFailed       = "operation-failed"
	TagMalformedMessage      = "malformed-message"
)

// Error represents a NETCONF error.
//
// The zero XMLName frames the error as an <rpc-error> in the NETCONF
// base namespace:
//   e := ncerr.MissingElement("target")
//   out, _ := xml.Marshal(e)
type Error struct {
	XMLName  xml.Name   `xml:"urn:ietf:params:xml:ns:netconf:base:1.0 rpc-error" json:"-"`
	Type     Type       `xml:"error-type" json:"error-type"`
	Tag      string     `xml:"error-tag" json:"error-tag"`
	Severity Severity   `xml:"error-severity" json:"error-severity"`
	AppTag   string     `xml:"error-app-tag,omitempty" json:"error-app-tag,omitempty"`
	Path     string     `xml:"error-path,omitempty" json:"error-path,omitempty"`
	Message  string     `xml:"error-message,omitempty" json:"error-message,omitempty"`
	Info     *ErrorInfo `xml:"error-info,omitempty" json:"error-info,omitempty"`
}

// ErrorInfo holds the <error-info> elements defined by RFC6241.
type ErrorInfo struct {
	BadAttribute string `xml:"bad-attribute,omitempty" json:"bad-attribute,omitempty"`
	BadElement   string `xml:"bad-element,omitempty" json:"bad-element,omitempty"`
	BadNamespace string `xml:"bad-namespace,omitempty" json:"bad-namespace,omitempty"`
	SessionID    string `xml:"session-id,omitempty" json:"session-id,omitempty"`
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s error tag:%s", e.Type, e.Tag)
	if e.AppTag != "" {
		s += " app-tag:" + e.AppTag
	}
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if info := e.Info; info != nil {
		if info.BadAttribute != "" {
			s += " bad-attribute:" + info.BadAttribute
		}
		if info.BadElement != "" {
			s += " bad-element:" + info.BadElement
		}
		if info.BadNamespace != "" {
			s += " bad-namespace:" + info.BadNamespace
		}
		if info.SessionID != "" {
			s += " session-id:" + info.SessionID
		}
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// Is reports whether target is an *Error or Error with the same error-tag,
// allowing errors.Is(err, ncerr.MissingElement("")) style matching.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case *Error:
		return t != nil && t.Tag == e.Tag
	case Error:
		return t.Tag == e.Tag
	}
	return false
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newError(tag string, info *ErrorInfo, opts []Option) *Error {
	e := &Error{Tag: tag, Info: info}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func InvalidValue(opts ...Option) *Error { return newError(TagInvalidValue, nil, opts) }

func TooBig(opts ...Option) *Error { return newError(TagTooBig, nil, opts) }

func MissingAttribute(attributeName, elementName string, opts ...Option) *Error {
	return newError(TagMissingAttribute, &ErrorInfo{BadAttribute: attributeName, BadElement: elementName}, opts)
}

func BadAttribute(attributeName, elementName string, opts ...Option) *Error {
	return newError(TagBadAttribute, &ErrorInfo{BadAttribute: attributeName, BadElement: elementName}, opts)
}

func MissingElement(elementName string, opts ...Option) *Error {
	return newError(TagMissingElement, &ErrorInfo{BadElement: elementName}, opts)
}

func BadElement(elementName string, opts ...Option) *Error {
	return newError(TagBadElement, &ErrorInfo{BadElement: elementName}, opts)
}

func UnknownElement(elementName string, opts ...Option) *Error {
	return newError(TagUnknownElement, &ErrorInfo{BadElement: elementName}, opts)
}

func UnknownNamespace(elementName, namespace string, opts ...Option) *Error {
	return newError(TagUnknownNamespace, &ErrorInfo{BadElement: elementName, BadNamespace: namespace}, opts)
}

func OperationNotSupported(opts ...Option) *Error {
	return newError(TagOperationNotSupported, nil, opts)
}

func OperationFailed(opts ...Option) *Error { return newError(TagOperationFailed, nil, opts) }

func MalformedMessage(opts ...Option) *Error {
	e := newError(TagMalformedMessage, nil, opts)
	// error-type must be rpc for malformed-message
	e.Type = TypeRPC
	return e
}
