package message

import "strings"

// Message is a decoded NETCONF message; either *Hello or *RPC.
type Message interface {
	// Name returns the document element name, "hello" or "rpc".
	Name() string
	isMessage()
}

// Hello is the capabilities exchange message.
type Hello struct {
	// Capabilities are the advertised capability URIs in document
	// order, duplicates included.
	Capabilities Capabilities `json:"capabilities"`
	// SessionID is only sent by servers.
	SessionID *uint32 `json:"session-id,omitempty"`
}

// RPC is an <rpc> request carrying exactly one operation.
type RPC struct {
	// MessageID is opaque and echoed back in the reply.
	MessageID string    `json:"message-id"`
	Operation Operation `json:"-"`
}

func (*Hello) Name() string { return elemHello }
func (*RPC) Name() string   { return elemRPC }

func (*Hello) isMessage() {}
func (*RPC) isMessage()   {}

// Capabilities is a slice of strings denoting NETCONF capability URIs
type Capabilities []string

// Has returns true if uri is in the capabilities set. Any query
// (parameters following "?") in uri is not compared.
func (c Capabilities) Has(uri string) bool {
	uri = strings.SplitN(uri, "?", 2)[0]
	for _, cap := range c {
		if uri == strings.SplitN(cap, "?", 2)[0] {
			return true
		}
	}
	return false
}

// Well known capability URIs.
const (
	CapBase10    = "urn:ietf:params:netconf:base:1.0"
	CapBase11    = "urn:ietf:params:netconf:base:1.1"
	CapCandidate = "urn:ietf:params:netconf:capability:candidate:1.0"
	CapStartup   = "urn:ietf:params:netconf:capability:startup:1.0"
	CapURL       = "urn:ietf:params:netconf:capability:url:1.0"
	CapXPath     = "urn:ietf:params:netconf:capability:xpath:1.0"
)

const (
	elemHello        = "hello"
	elemRPC          = "rpc"
	elemCapabilities = "capabilities"
	elemCapability   = "capability"
	elemSessionID    = "session-id"
	elemSource       = "source"
	elemTarget       = "target"
	elemFilter       = "filter"
	elemConfig       = "config"
	elemURL          = "url"

	elemDefaultOperation = "default-operation"
	elemTestOption       = "test-option"
	elemErrorOption      = "error-option"

	attrMessageID = "message-id"
	attrType      = "type"
	attrSelect    = "select"
)
