package schema

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yamt/enetconf/ncerr"
	"github.com/yamt/enetconf/xmlutil"
)

// DefaultMaxSize is the default limit on the size of a document.
const DefaultMaxSize = 10 * 1024 * 1024

// Validator checks NETCONF documents against a NETCONFSchema.
// A Validator is safe for concurrent use.
type Validator struct {
	schema   *NETCONFSchema
	strictNS bool
	maxSize  int64
	log      logrus.FieldLogger
}

// Option is a Validator option function
type Option func(*Validator)

// WithStrictNamespace requires every checked element to be in the
// NETCONF base:1.0 namespace. Otherwise, the empty namespace is also
// accepted.
func WithStrictNamespace(strict bool) Option { return func(v *Validator) { v.strictNS = strict } }

// WithMaxSize limits the size of documents in bytes. Values below 1
// disable the limit.
func WithMaxSize(size int64) Option { return func(v *Validator) { v.maxSize = size } }

// WithLogger sets the logger validation failures are reported to, at
// debug level.
func WithLogger(log logrus.FieldLogger) Option { return func(v *Validator) { v.log = log } }

// WithSchema replaces the base schema.
func WithSchema(s *NETCONFSchema) Option { return func(v *Validator) { v.schema = s } }

// NewValidator returns a Validator for the base:1.0 schema.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{schema: base, maxSize: DefaultMaxSize, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate reads a document from r, parses it and checks it against
// the schema, returning the parse tree (a document node).
func (v *Validator) Validate(ctx context.Context, r io.Reader) (*xmlquery.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := v.validate(r)
	if err != nil {
		v.log.WithError(err).Debug("schema validation failed")
		return nil, err
	}
	return doc, nil
}

func (v *Validator) validate(r io.Reader) (*xmlquery.Node, error) {
	if v.maxSize > 0 {
		r = io.LimitReader(r, v.maxSize+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	if v.maxSize > 0 && int64(len(b)) > v.maxSize {
		return nil, errors.WithStack(ncerr.TooBig(ncerr.WithType(ncerr.TypeRPC),
			ncerr.WithMessage(fmt.Sprintf("document exceeds %d bytes", v.maxSize))))
	}
	if hasDirective(b) {
		return nil, errors.WithStack(ncerr.MalformedMessage(ncerr.WithMessage("DTD declarations are not allowed")))
	}
	doc, err := xmlquery.Parse(bytes.NewReader(b))
	if err != nil {
		return nil, errors.WithStack(ncerr.MalformedMessage(ncerr.WithMessage(err.Error())))
	}
	root := xmlutil.Root(doc)
	if root == nil {
		return nil, errors.WithStack(ncerr.MalformedMessage(ncerr.WithMessage("no document element")))
	}
	rule := v.schema.root.Child(root.Data)
	if rule == nil || rule.Name == nameWildcard {
		return nil, errNodeUnknownElement(v.schema.root, root)
	}
	if err := v.validateElement(root, rule); err != nil {
		return nil, err
	}
	return doc, nil
}

func (v *Validator) validateElement(n *xmlquery.Node, rule *Node) error {
	if ns := n.NamespaceURI; ns != nsNC && (v.strictNS || ns != "") {
		return errors.WithStack(ncerr.UnknownNamespace(n.Data, ns, ncerr.WithType(ncerr.TypeProtocol), pathOf(n)))
	}
	for _, attr := range rule.Attrs {
		val, ok := xmlutil.Attr(n, attr.Name)
		if !ok {
			if attr.Required {
				return errors.WithStack(ncerr.MissingAttribute(attr.Name, n.Data, ncerr.WithType(ncerr.TypeRPC), pathOf(n)))
			}
			continue
		}
		if len(attr.Values) > 0 && !contains(attr.Values, val) {
			return errors.WithStack(ncerr.BadAttribute(attr.Name, n.Data, ncerr.WithType(ncerr.TypeProtocol), pathOf(n),
				ncerr.WithMessage(fmt.Sprintf("unexpected value %q", val))))
		}
	}

	var err error
	switch rule.T {
	case NodeTypeText:
		err = validateText(n, rule)
	case NodeTypeElement:
		err = v.validateChildren(n, rule)
	}
	if err == nil && rule.Check != nil {
		err = rule.Check(n)
	}
	return err
}

// hasDirective reports whether a markup declaration precedes the
// document element. Syntax errors are left to the parser.
func hasDirective(b []byte) bool {
	d := xml.NewDecoder(bytes.NewReader(b))
	for {
		tok, err := d.RawToken()
		if err != nil {
			return false
		}
		switch tok.(type) {
		case xml.Directive:
			return true
		case xml.StartElement:
			return false
		}
	}
}

func validateText(n *xmlquery.Node, rule *Node) error {
	if c := xmlutil.FirstElement(n); c != nil {
		return errNodeUnknownElement(rule, c)
	}
	text, ok := xmlutil.Text(n)
	if !ok || text == "" {
		return errors.WithStack(ncerr.InvalidValue(ncerr.WithType(ncerr.TypeProtocol), pathOf(n),
			ncerr.WithMessage(fmt.Sprintf("element %s requires a text value", elemStr(xmlutil.Name(n))))))
	}
	if len(rule.Values) > 0 && !contains(rule.Values, text) {
		return errors.WithStack(ncerr.InvalidValue(ncerr.WithType(ncerr.TypeProtocol), pathOf(n),
			ncerr.WithMessage(fmt.Sprintf("unexpected value %q in element %s", text, elemStr(xmlutil.Name(n))))))
	}
	return nil
}

func (v *Validator) validateChildren(n *xmlquery.Node, rule *Node) error {
	seen := map[*Node]int{}
	var elements int
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) != "" {
				return errNodeUnexpectedCData(n, c.Data)
			}
			continue
		case xmlquery.ElementNode:
		default:
			continue
		}
		child := rule.Child(c.Data)
		if child == nil {
			return errNodeUnknownElement(rule, c)
		}
		if child.Name == nameWildcard {
			// wildcard content is neither namespace nor content checked
			continue
		}
		if elements++; rule.Opt.choice && elements > 1 {
			return errors.WithStack(ncerr.BadElement(c.Data, ncerr.WithType(ncerr.TypeProtocol), pathOf(n),
				ncerr.WithMessage(fmt.Sprintf("element %s must hold a single element", elemStr(xmlutil.Name(n))))))
		}
		seen[child]++
		if err := v.validateElement(c, child); err != nil {
			return err
		}
	}
	if rule.Opt.choice && elements == 0 {
		return errors.WithStack(ncerr.MissingElement(n.Data, ncerr.WithType(ncerr.TypeProtocol), pathOf(n),
			ncerr.WithMessage(fmt.Sprintf("element %s must hold one of %s", elemStr(xmlutil.Name(n)), childNames(rule)))))
	}
	if err := checkOccurs(rule, seen, n.NamespaceURI); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func childNames(n *Node) string {
	var names []string
	for _, c := range n.children {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func errNodeUnexpectedCData(n *xmlquery.Node, cdata string) error {
	return errors.WithStack(ncerr.UnknownElement("CDATA", ncerr.WithType(ncerr.TypeProtocol), pathOf(n), ncerr.WithMessage(fmt.Sprintf(
		"unexpected character data found in element %s: %q", elemStr(xmlutil.Name(n)), strings.TrimSpace(cdata)))))
}

func errNodeUnknownElement(parent *Node, se *xmlquery.Node) error {
	where := "document"
	if parent.Name != "" {
		where = "element " + elemStr(xml.Name{Local: parent.Name})
	}
	return errors.WithStack(ncerr.UnknownElement(se.Data, ncerr.WithType(ncerr.TypeProtocol), pathOf(se.Parent), ncerr.WithMessage(fmt.Sprintf(
		"unexpected element %s found in %s", elemStr(xmlutil.Name(se)), where))))
}

// pathOf sets the error-path to the absolute path of element n.
func pathOf(n *xmlquery.Node) ncerr.Option { return ncerr.WithPath(xmlutil.Path(n)) }
