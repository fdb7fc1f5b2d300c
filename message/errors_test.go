package message

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/yamt/enetconf/ncerr"
)

func TestDecodeErrorString(t *testing.T) {
	for _, tc := range []struct {
		err  *DecodeError
		want string
	}{
		{&DecodeError{Kind: KindUnknownRoot}, "decode: unknown root"},
		{&DecodeError{Kind: KindUnknownRoot, Element: "foo"}, "decode: unknown root in <foo>"},
		{
			&DecodeError{Kind: KindInvalidFilterType, Element: "filter", Field: "type", Value: "foo"},
			`decode: invalid filter type in <filter> field:type value:"foo"`,
		},
		{&DecodeError{Kind: Kind(99)}, "decode: Kind(99)"},
	} {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestDecodeErrorIs(t *testing.T) {
	check := assert.New(t)
	err := errors.Wrap(newError(KindMissingSource, "get-config", "source", ""), "rpc 101")
	check.ErrorIs(err, ErrMissingSource)
	check.NotErrorIs(err, ErrMissingDatastoreChild)

	de, ok := IsDecodeError(err)
	if check.True(ok) {
		check.Equal("get-config", de.Element)
	}
	_, ok = IsDecodeError(errors.New("other"))
	check.False(ok)
}

func TestRPCError(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  *DecodeError
		want ncerr.Error
	}{
		{
			name: "unknown root",
			err:  &DecodeError{Kind: KindUnknownRoot, Element: "rpc-reply"},
			want: ncerr.Error{Type: ncerr.TypeRPC, Tag: ncerr.TagUnknownElement, Info: &ncerr.ErrorInfo{BadElement: "rpc-reply"}},
		},
		{
			name: "missing message-id",
			err:  &DecodeError{Kind: KindMissingMessageID, Element: "rpc", Field: "message-id"},
			want: ncerr.Error{Type: ncerr.TypeRPC, Tag: ncerr.TagMissingAttribute,
				Info: &ncerr.ErrorInfo{BadAttribute: "message-id", BadElement: "rpc"}},
		},
		{
			name: "missing select",
			err:  &DecodeError{Kind: KindMissingSelect, Element: "filter", Field: "select"},
			want: ncerr.Error{Type: ncerr.TypeProtocol, Tag: ncerr.TagMissingAttribute,
				Info: &ncerr.ErrorInfo{BadAttribute: "select", BadElement: "filter"}},
		},
		{
			name: "invalid filter type",
			err:  &DecodeError{Kind: KindInvalidFilterType, Element: "filter", Field: "type", Value: "foo"},
			want: ncerr.Error{Type: ncerr.TypeProtocol, Tag: ncerr.TagBadAttribute,
				Info: &ncerr.ErrorInfo{BadAttribute: "type", BadElement: "filter"}},
		},
		{
			name: "missing target",
			err:  &DecodeError{Kind: KindMissingDatastoreChild, Element: "edit-config", Field: "target"},
			want: ncerr.Error{Type: ncerr.TypeProtocol, Tag: ncerr.TagMissingElement, Info: &ncerr.ErrorInfo{BadElement: "target"}},
		},
		{
			name: "empty datastore",
			err:  &DecodeError{Kind: KindInvalidDatastore, Element: "source"},
			want: ncerr.Error{Type: ncerr.TypeProtocol, Tag: ncerr.TagBadElement, Info: &ncerr.ErrorInfo{BadElement: "source"}},
		},
		{
			name: "unknown datastore",
			err:  &DecodeError{Kind: KindInvalidDatastore, Element: "source", Field: "scratch"},
			want: ncerr.Error{Type: ncerr.TypeProtocol, Tag: ncerr.TagBadElement, Info: &ncerr.ErrorInfo{BadElement: "scratch"}},
		},
		{
			name: "unsupported operation",
			err:  &DecodeError{Kind: KindUnsupportedOperation, Element: "rpc", Field: "commit"},
			want: ncerr.Error{Type: ncerr.TypeProtocol, Tag: ncerr.TagOperationNotSupported},
		},
		{
			name: "invalid enum",
			err:  &DecodeError{Kind: KindInvalidEnumValue, Element: "edit-config", Field: "test-option", Value: "x"},
			want: ncerr.Error{Type: ncerr.TypeProtocol, Tag: ncerr.TagInvalidValue},
		},
		{
			name: "unknown kind",
			err:  &DecodeError{Kind: Kind(99)},
			want: ncerr.Error{Type: ncerr.TypeApplication, Tag: ncerr.TagOperationFailed},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			got := tc.err.RPCError()
			tc.want.Message = tc.err.Error()
			check.Equal(tc.want, *got)
			check.Equal(ncerr.SeverityError, got.Severity)
		})
	}
}
