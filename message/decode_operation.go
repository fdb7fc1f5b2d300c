package message

import (
	"github.com/antchfx/xmlquery"
	"github.com/yamt/enetconf/xmlutil"
)

// decodeOperation decodes the first child of rpc naming a supported
// operation. Other children, and any later operation elements, are
// ignored.
func decodeOperation(rpc *xmlquery.Node) (Operation, error) {
	for _, c := range xmlutil.Children(rpc) {
		switch c.Data {
		case OpGetConfig:
			return decodeGetConfig(c)
		case OpEditConfig:
			return decodeEditConfig(c)
		case OpCopyConfig:
			return decodeCopyConfig(c)
		case OpDeleteConfig:
			return decodeDeleteConfig(c)
		}
	}
	var first string
	if c := xmlutil.FirstElement(rpc); c != nil {
		first = c.Data
	}
	return nil, newError(KindUnsupportedOperation, elemRPC, first, "")
}

func decodeGetConfig(n *xmlquery.Node) (Operation, error) {
	source, err := decodeSource(n)
	if err != nil {
		return nil, err
	}
	filter, err := decodeFilter(xmlutil.Child(n, elemFilter))
	if err != nil {
		return nil, err
	}
	return &GetConfig{Source: source, Filter: filter}, nil
}

func decodeEditConfig(n *xmlquery.Node) (Operation, error) {
	target, err := decodeTarget(n)
	if err != nil {
		return nil, err
	}
	op := &EditConfig{Target: target}
	if c := xmlutil.Child(n, elemDefaultOperation); c != nil {
		v, err := decodeEnum(c, ParseEditDefault)
		if err != nil {
			return nil, err
		}
		op.DefaultOperation = &v
	}
	if c := xmlutil.Child(n, elemTestOption); c != nil {
		v, err := decodeEnum(c, ParseTestOption)
		if err != nil {
			return nil, err
		}
		op.TestOption = &v
	}
	if c := xmlutil.Child(n, elemErrorOption); c != nil {
		v, err := decodeEnum(c, ParseErrorOption)
		if err != nil {
			return nil, err
		}
		op.ErrorOption = &v
	}
	if c := xmlutil.Child(n, elemConfig); c != nil {
		op.Config = xmlutil.InnerXML(c)
	} else if c := xmlutil.Child(n, elemURL); c != nil {
		if op.URL, err = requireText(c); err != nil {
			return nil, err
		}
	}
	return op, nil
}

func decodeCopyConfig(n *xmlquery.Node) (Operation, error) {
	source, err := decodeSource(n)
	if err != nil {
		return nil, err
	}
	target, err := decodeTarget(n)
	if err != nil {
		return nil, err
	}
	return &CopyConfig{Source: source, Target: target}, nil
}

func decodeDeleteConfig(n *xmlquery.Node) (Operation, error) {
	target, err := decodeTarget(n)
	if err != nil {
		return nil, err
	}
	return &DeleteConfig{Target: target}, nil
}

// decodeEnum converts the text of n using parse, reporting unknown
// values as KindInvalidEnumValue.
func decodeEnum[T any](n *xmlquery.Node, parse func(string) (T, error)) (T, error) {
	var zero T
	text, err := requireText(n)
	if err != nil {
		return zero, err
	}
	v, err := parse(text)
	if err != nil {
		parent := ""
		if n.Parent != nil {
			parent = n.Parent.Data
		}
		return zero, newError(KindInvalidEnumValue, parent, n.Data, text)
	}
	return v, nil
}

func decodeSource(op *xmlquery.Node) (Datastore, error) {
	n := xmlutil.Child(op, elemSource)
	if n == nil {
		return Datastore{}, newError(KindMissingSource, op.Data, elemSource, "")
	}
	return decodeDatastore(n)
}

func decodeTarget(op *xmlquery.Node) (Datastore, error) {
	n := xmlutil.Child(op, elemTarget)
	if n == nil {
		return Datastore{}, newError(KindMissingDatastoreChild, op.Data, elemTarget, "")
	}
	return decodeDatastore(n)
}

// decodeDatastore decodes the first element child of a <source> or
// <target> element.
func decodeDatastore(n *xmlquery.Node) (Datastore, error) {
	c := xmlutil.FirstElement(n)
	if c == nil {
		return Datastore{}, newError(KindInvalidDatastore, n.Data, "", "")
	}
	kind, ok := datastoreKind(c.Data)
	switch {
	case !ok:
		return Datastore{}, newError(KindInvalidDatastore, n.Data, c.Data, "")
	case kind == URL:
		url, err := requireText(c)
		if err != nil {
			return Datastore{}, err
		}
		return URLDatastore(url), nil
	}
	return Datastore{Kind: kind}, nil
}

// decodeFilter decodes an optional <filter>; a nil n yields a nil Filter.
func decodeFilter(n *xmlquery.Node) (*Filter, error) {
	if n == nil {
		return nil, nil
	}
	// the type value is compared verbatim, without trimming
	typ, ok := xmlutil.Attr(n, attrType)
	if !ok {
		return nil, newError(KindMissingAttribute, elemFilter, attrType, "")
	}
	ft, err := ParseFilterType(typ)
	if err != nil {
		return nil, newError(KindInvalidFilterType, elemFilter, attrType, typ)
	}
	switch ft {
	case XPath:
		sel, err := requireAttr(n, attrSelect)
		if err != nil {
			return nil, kindAs(err, KindMissingSelect)
		}
		return &Filter{Type: XPath, Select: sel, Namespaces: xmlutil.InScope(n)}, nil
	default:
		return &Filter{Type: Subtree, Content: xmlutil.InnerXML(n)}, nil
	}
}
