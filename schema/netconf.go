package schema

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
	"github.com/yamt/enetconf/ncerr"
	"github.com/yamt/enetconf/xmlutil"
)

const (
	nsNC = "urn:ietf:params:xml:ns:netconf:base:1.0"

	// nameWildcard matches any element name not matched explicitly.
	nameWildcard = "*"
)

// NETCONFSchema is a compiled NETCONF schema.
type NETCONFSchema struct {
	root *Node
}

// Root returns the schema root node, whose children are the permitted
// document elements.
func (s *NETCONFSchema) Root() *Node { return s.root }

// base is the base:1.0 schema subset shared by all validators.
var base = &NETCONFSchema{root: buildNETCONFSchema()}

// BaseSchema returns the compiled base:1.0 schema.
func BaseSchema() *NETCONFSchema { return base }

func buildNETCONFSchema() *Node {
	nc := ElementNode("")
	nc.Append(schemaNodeHello(), schemaNodeRPC())
	return nc
}

func schemaNodeHello() *Node {
	hello := ElementNode("hello")
	capabilities := hello.Append(ElementNode("capabilities", WithOccurs(1, 1)))
	capabilities.Append(TextNode("capability", WithMinOccurs(1)))
	hello.Append(TextNode("session-id", WithOccurs(0, 1), WithCheck(checkSessionID)))
	return hello
}

func schemaNodeRPC() *Node {
	rpc := ElementNode("rpc", WithAttr("message-id", true))
	rpc.Append(
		schemaNodeGetConfig(),
		schemaNodeEditConfig(),
		schemaNodeCopyConfig(),
		schemaNodeDeleteConfig(),
		// other operations are left for the decoder to reject
		AnyNode(nameWildcard),
	)
	return rpc
}

func schemaNodeGetConfig() *Node {
	op := ElementNode("get-config")
	op.Append(
		schemaNodeDatastore("source"),
		AnyNode("filter", WithOccurs(0, 1),
			WithAttr("type", true, "subtree", "xpath"),
			WithAttr("select", false),
			WithCheck(checkFilter)),
	)
	return op
}

func schemaNodeEditConfig() *Node {
	op := ElementNode("edit-config")
	op.Append(
		schemaNodeDatastore("target"),
		TextNode("default-operation", WithOccurs(0, 1), WithValues("merge", "replace", "none")),
		TextNode("test-option", WithOccurs(0, 1), WithValues("test-then-set", "set", "test-only")),
		TextNode("error-option", WithOccurs(0, 1),
			WithValues("stop-on-error", "continue-on-error", "rollback-on-error")),
		AnyNode("config", WithOccurs(0, 1)),
		TextNode("url", WithOccurs(0, 1)),
	)
	return op
}

func schemaNodeCopyConfig() *Node {
	op := ElementNode("copy-config")
	op.Append(schemaNodeDatastore("source"), schemaNodeDatastore("target"))
	return op
}

func schemaNodeDeleteConfig() *Node {
	op := ElementNode("delete-config")
	op.Append(schemaNodeDatastore("target"))
	return op
}

// schemaNodeDatastore returns a <source> or <target> node holding one
// of the datastore elements.
func schemaNodeDatastore(name string) *Node {
	ds := ElementNode(name, WithOccurs(1, 1), WithChoice())
	ds.Append(
		ElementNode("running", WithMaxOccurs(1)),
		ElementNode("candidate", WithMaxOccurs(1)),
		ElementNode("startup", WithMaxOccurs(1)),
		TextNode("url", WithOccurs(0, 1)),
	)
	return ds
}

func checkSessionID(n *xmlquery.Node) error {
	text, _ := xmlutil.Text(n)
	if _, err := strconv.ParseUint(text, 10, 32); err != nil {
		return errors.WithStack(ncerr.InvalidValue(ncerr.WithType(ncerr.TypeProtocol), pathOf(n),
			ncerr.WithMessage("session-id must be a 32 bit unsigned integer: "+strconv.Quote(text))))
	}
	return nil
}

// checkFilter requires a select attribute holding a valid XPath 1.0
// expression on xpath filters. Prefixes in the expression must be
// declared in scope of the <filter> element.
func checkFilter(n *xmlquery.Node) error {
	if typ, _ := xmlutil.Attr(n, "type"); typ != "xpath" {
		return nil
	}
	sel, ok := xmlutil.Attr(n, "select")
	if !ok {
		return errors.WithStack(ncerr.MissingAttribute("select", n.Data, ncerr.WithType(ncerr.TypeProtocol), pathOf(n)))
	}
	if _, err := xpath.CompileWithNS(strings.TrimSpace(sel), xmlutil.InScope(n)); err != nil {
		return errors.WithStack(ncerr.BadAttribute("select", n.Data, ncerr.WithType(ncerr.TypeProtocol), pathOf(n),
			ncerr.WithMessage(err.Error())))
	}
	return nil
}
