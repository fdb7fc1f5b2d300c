package xmlutil

import (
	"encoding/xml"

	"github.com/antchfx/xmlquery"
)

// Name returns the expanded name of a parse tree element node.
func Name(n *xmlquery.Node) xml.Name {
	if n == nil {
		return xml.Name{}
	}
	return xml.Name{Space: n.NamespaceURI, Local: n.Data}
}
