package schema

import (
	"encoding/xml"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
	"github.com/yamt/enetconf/ncerr"
)

// NodeType is the type of a schema node.
type NodeType int

const (
	// NodeTypeElement nodes hold child element nodes.
	NodeTypeElement NodeType = iota
	// NodeTypeText nodes are elements holding a single text value.
	NodeTypeText
	// NodeTypeAny nodes are elements whose content is not checked.
	NodeTypeAny
)

// Node is a schema element node.
type Node struct {
	T    NodeType
	Name string
	Opt  NodeOptions

	// Attrs are the attributes checked on matching elements.
	Attrs []Attr
	// Values, if not empty, are the allowed values of a text node.
	Values []string
	// Check, if not nil, is run after the node's own checks pass.
	Check func(n *xmlquery.Node) error

	parent   *Node
	children []*Node
}

// Attr describes an attribute of a schema node.
type Attr struct {
	Name     string
	Required bool
	Values   []string
}

// NodeOptions are schema node constraints.
type NodeOptions struct {
	minOccurs, maxOccurs int
	// choice requires exactly one element child, of any child node.
	choice bool
}

// MinOccurs returns the minimum occurrences of the node within its
// parent, or -1 if unconstrained.
func (o NodeOptions) MinOccurs() int { return o.minOccurs }

// MaxOccurs returns the maximum occurrences of the node within its
// parent, or -1 if unbounded.
func (o NodeOptions) MaxOccurs() int { return o.maxOccurs }

// NodeOption is a schema node constructor option.
type NodeOption func(*Node)

func WithMinOccurs(n int) NodeOption { return func(x *Node) { x.Opt.minOccurs = n } }
func WithMaxOccurs(n int) NodeOption { return func(x *Node) { x.Opt.maxOccurs = n } }

// WithOccurs sets both the minimum and maximum occurrences.
func WithOccurs(min, max int) NodeOption {
	return func(x *Node) { x.Opt.minOccurs, x.Opt.maxOccurs = min, max }
}

// WithChoice makes the element require exactly one element child.
func WithChoice() NodeOption { return func(x *Node) { x.Opt.choice = true } }

// WithAttr adds an attribute constraint.
func WithAttr(name string, required bool, values ...string) NodeOption {
	return func(x *Node) { x.Attrs = append(x.Attrs, Attr{Name: name, Required: required, Values: values}) }
}

// WithValues restricts a text node to the given values.
func WithValues(values ...string) NodeOption { return func(x *Node) { x.Values = values } }

// WithCheck adds a custom check run against matching elements.
func WithCheck(fn func(n *xmlquery.Node) error) NodeOption { return func(x *Node) { x.Check = fn } }

func newNode(t NodeType, name string, opts []NodeOption) *Node {
	n := &Node{T: t, Name: name, Opt: NodeOptions{minOccurs: -1, maxOccurs: -1}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ElementNode returns an element schema node.
func ElementNode(name string, opts ...NodeOption) *Node {
	return newNode(NodeTypeElement, name, opts)
}

// TextNode returns a schema node for a text-only element.
func TextNode(name string, opts ...NodeOption) *Node {
	return newNode(NodeTypeText, name, opts)
}

// AnyNode returns a schema node for an element with unchecked content.
func AnyNode(name string, opts ...NodeOption) *Node {
	return newNode(NodeTypeAny, name, opts)
}

// Append adds children to n and returns the first of them, so that
// single children can be appended and extended inline.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// Children returns the child schema nodes of n.
func (n *Node) Children() []*Node { return n.children }

// Parent returns the parent schema node of n.
func (n *Node) Parent() *Node { return n.parent }

// Child returns the child schema node for an element named local. An
// explicit match is preferred over a wildcard.
func (n *Node) Child(local string) *Node {
	var wildcard *Node
	for _, c := range n.children {
		switch c.Name {
		case local:
			return c
		case nameWildcard:
			wildcard = c
		}
	}
	return wildcard
}

// ConstraintError is an occurs constraint violation.
type ConstraintError struct {
	Node    *Node  // Node is the schema node the constraint failed upon
	Name    string // Name is the constraint which failed
	Message string
	Args    interface{}
	Token   xml.Token
}

func (e ConstraintError) Error() string {
	var constraint string
	switch e.Name {
	case "min-occurs", "max-occurs":
		v, _ := e.Args.([]int)
		constraint = fmt.Sprintf("%s:%d (saw %d)", e.Name, v[1], v[0])
	}
	if se, ok := e.Token.(xml.StartElement); ok && se.Name.Local != "" {
		return fmt.Sprintf("constraint %s failed on element %s", constraint, pprintElem(se))
	}
	return fmt.Sprintf("constraint %s failed", constraint)
}

// Unwrap returns the <rpc-error> for the failed constraint.
func (e ConstraintError) Unwrap() error {
	var local string
	if se, ok := e.Token.(xml.StartElement); ok {
		local = se.Name.Local
	}
	opt := ncerr.WithType(ncerr.TypeProtocol)
	if e.Name == "min-occurs" {
		return ncerr.MissingElement(local, opt, ncerr.WithMessage(e.Error()))
	}
	return ncerr.BadElement(local, opt, ncerr.WithMessage(e.Error()))
}

// IsConstraintError returns the ConstraintError in err's chain, if any.
func IsConstraintError(err error) (ConstraintError, bool) {
	var ce ConstraintError
	ok := errors.As(err, &ce)
	return ce, ok
}

// checkOccurs checks the occurrence count of each child node of n.
func checkOccurs(n *Node, seen map[*Node]int, space string) error {
	for _, c := range n.children {
		if c.Name == nameWildcard {
			continue
		}
		occurs, token := seen[c], xml.StartElement{Name: xml.Name{Space: space, Local: c.Name}}
		if want := c.Opt.MinOccurs(); want > -1 && want > occurs {
			return ConstraintError{Node: c, Name: "min-occurs", Token: token, Args: []int{occurs, want}}
		}
		if want := c.Opt.MaxOccurs(); want > -1 && occurs > want {
			return ConstraintError{Node: c, Name: "max-occurs", Token: token, Args: []int{occurs, want}}
		}
	}
	return nil
}

func elemStr(n xml.Name) string { return genElemStr(n, "<") }

func pprintElem(t xml.Token) string {
	switch t := t.(type) {
	case xml.StartElement:
		return genElemStr(t.Name, "<")
	case xml.EndElement:
		return genElemStr(t.Name, "</")
	}
	return ""
}

func genElemStr(n xml.Name, pfx string) string {
	local := n.Local
	if local == "" {
		return ""
	}
	if ns := n.Space; ns != "" {
		return pfx + local + ` xmlns="` + ns + `">`
	}
	return pfx + local + ">"
}
