package xmlutil

import (
	"github.com/antchfx/xmlquery"
)

// PrefixMap is a prefix to namespace URI map
type PrefixMap map[string]string

// InScope returns the namespace prefixes declared on n and its ancestors.
// Declarations closer to n shadow those of its ancestors. The default
// namespace is not a prefix and is not included.
func InScope(n *xmlquery.Node) PrefixMap {
	pmap := PrefixMap{}
	for ; n != nil; n = n.Parent {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		for _, attr := range n.Attr {
			if attr.Name.Space != "xmlns" {
				continue
			}
			if _, shadowed := pmap[attr.Name.Local]; !shadowed {
				pmap[attr.Name.Local] = attr.Value
			}
		}
	}
	return pmap
}
