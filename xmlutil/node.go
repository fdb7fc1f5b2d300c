package xmlutil

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Lookups over a parse tree produced by xmlquery. Element names are
// compared by local name only; namespace membership is the schema's
// concern. Where several children share a name, the first in document
// order wins and later ones are ignored.

// Children returns the element children of n in document order.
func Children(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	if n == nil {
		return out
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// FirstElement returns the first element child of n, or nil.
func FirstElement(n *xmlquery.Node) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// Child returns the first element child of n named local, or nil.
func Child(n *xmlquery.Node, local string) *xmlquery.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

// Root returns the document element of a parsed document. If n is
// already an element, it is returned as is.
func Root(n *xmlquery.Node) *xmlquery.Node {
	if n == nil || n.Type == xmlquery.ElementNode {
		return n
	}
	return FirstElement(n)
}

// Path returns the absolute path of element n as a slash separated
// list of local names, e.g. "/rpc/edit-config/target". It returns ""
// for nil and non-element nodes.
func Path(n *xmlquery.Node) string {
	var names []string
	for ; n != nil && n.Type == xmlquery.ElementNode; n = n.Parent {
		names = append(names, n.Data)
	}
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(names[i])
	}
	return b.String()
}

// Attr returns the value of the unqualified attribute name on n.
// The second result is false when the attribute is absent.
func Attr(n *xmlquery.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attr {
		if attr.Name.Local == name && attr.Name.Space == "" {
			return attr.Value, true
		}
	}
	return "", false
}

// Text returns the trimmed value of n's content when it is exactly one
// text (or CDATA) node. Comments are ignored. The second result is false
// for empty content, element content, or several text nodes.
func Text(n *xmlquery.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	var text *xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if text != nil {
				return "", false
			}
			text = c
		case xmlquery.CommentNode:
		default:
			return "", false
		}
	}
	if text == nil {
		return "", false
	}
	return strings.TrimSpace(text.Data), true
}

// InnerXML returns the verbatim serialization of n's children.
func InnerXML(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return n.OutputXML(false)
}
