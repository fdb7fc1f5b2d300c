package message

import (
	"context"
	"io"

	"github.com/antchfx/xmlquery"
)

// Validator checks a raw NETCONF document against the protocol schema
// and returns its parse tree. *schema.Validator implements it.
type Validator interface {
	Validate(ctx context.Context, r io.Reader) (*xmlquery.Node, error)
}

// Read validates the document read from r with v and decodes it.
//
// Validation errors are returned unchanged; a document that fails
// validation may warrant ending the session rather than replying with
// an <rpc-error>, which is for the caller to decide. Decode errors are
// *DecodeError values.
func Read(ctx context.Context, v Validator, r io.Reader) (Message, error) {
	doc, err := v.Validate(ctx, r)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}
