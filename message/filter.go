package message

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yamt/enetconf/xmlutil"
)

// FilterType is the value of a <filter> element's type attribute.
type FilterType int

const (
	Subtree FilterType = iota
	XPath
)

func (t FilterType) String() string {
	switch t {
	case Subtree:
		return "subtree"
	case XPath:
		return "xpath"
	default:
		return fmt.Sprintf("FilterType(%d)", int(t))
	}
}

func (t FilterType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *FilterType) UnmarshalText(b []byte) error {
	v, err := ParseFilterType(string(bytes.TrimSpace(b)))
	if err == nil {
		*t = v
	}
	return err
}

// ParseFilterType converts a type attribute value to a FilterType.
func ParseFilterType(s string) (FilterType, error) {
	switch s {
	case "subtree":
		return Subtree, nil
	case "xpath":
		return XPath, nil
	}
	return 0, errors.New("unknown value")
}

// Filter limits the scope of a <get-config> reply.
type Filter struct {
	Type FilterType `json:"type"`
	// Select is the XPath expression of an xpath filter.
	Select string `json:"select,omitempty"`
	// Namespaces holds the prefixes in scope at the <filter> element,
	// against which the prefixes used in Select resolve.
	Namespaces xmlutil.PrefixMap `json:"namespaces,omitempty"`
	// Content is the verbatim content of a subtree filter.
	Content string `json:"content,omitempty"`
}
