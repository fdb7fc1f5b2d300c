package message

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/yamt/enetconf/xmlutil"
)

// requireAttr returns the trimmed value of the unqualified attribute name.
func requireAttr(n *xmlquery.Node, name string) (string, error) {
	v, ok := xmlutil.Attr(n, name)
	if !ok {
		return "", newError(KindMissingAttribute, n.Data, name, "")
	}
	return strings.TrimSpace(v), nil
}

// requireText returns the trimmed text content of n.
func requireText(n *xmlquery.Node) (string, error) {
	v, ok := xmlutil.Text(n)
	if !ok {
		return "", newError(KindExpectedText, n.Data, "", "")
	}
	return v, nil
}

// kindAs re-labels a generic extraction failure with a more specific kind.
func kindAs(err error, kind Kind) error {
	if de, ok := err.(*DecodeError); ok {
		return newError(kind, de.Element, de.Field, de.Value)
	}
	return err
}
