package message_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yamt/enetconf/message"
	"github.com/yamt/enetconf/ncerr"
	"github.com/yamt/enetconf/schema"
)

func TestRead(t *testing.T) {
	v := schema.NewValidator()
	for _, tc := range []struct {
		name    string
		input   string
		want    message.Message
		wantTag string
		wantErr error
	}{
		{
			name:  "get-config",
			input: `<rpc message-id="101"><get-config><source><running/></source></get-config></rpc>`,
			want: &message.RPC{MessageID: "101",
				Operation: &message.GetConfig{Source: message.RunningDatastore()}},
		},
		{
			name: "hello",
			input: `<hello xmlns="urn:ietf:params:xml:ns:netconf:base:1.0"><capabilities>
<capability>urn:ietf:params:netconf:base:1.1</capability></capabilities></hello>`,
			want: &message.Hello{Capabilities: message.Capabilities{message.CapBase11}},
		},
		{
			name:    "not xml",
			input:   `<rpc message-id="1">`,
			wantTag: ncerr.TagMalformedMessage,
		},
		{
			name:    "schema rejects unknown datastore",
			input:   `<rpc message-id="1"><get-config><source><scratch/></source></get-config></rpc>`,
			wantTag: ncerr.TagUnknownElement,
		},
		{
			name:    "unsupported operation passes schema",
			input:   `<rpc message-id="1"><commit/></rpc>`,
			wantErr: message.ErrUnsupportedOperation,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			got, err := message.Read(context.Background(), v, strings.NewReader(tc.input))
			switch {
			case tc.wantTag != "":
				check.Nil(got)
				rerr, ok := ncerr.As(err)
				if check.True(ok, "want *ncerr.Error, got %v", err) {
					check.Equal(tc.wantTag, rerr.Tag)
				}
			case tc.wantErr != nil:
				check.Nil(got)
				check.ErrorIs(err, tc.wantErr)
			default:
				if check.NoError(err) {
					check.Equal(tc.want, got)
				}
			}
		})
	}
}

func TestReadDirectiveTextInConfig(t *testing.T) {
	check := assert.New(t)
	input := `<rpc message-id="1"><edit-config><target><running/></target><config><x><![CDATA[<!DOCTYPE]]></x></config></edit-config></rpc>`
	got, err := message.Read(context.Background(), schema.NewValidator(), strings.NewReader(input))
	if !check.NoError(err) {
		return
	}
	rpc, ok := got.(*message.RPC)
	if check.True(ok) {
		ec, ok := rpc.Operation.(*message.EditConfig)
		if check.True(ok) {
			check.Equal(message.RunningDatastore(), ec.Target)
			check.Contains(ec.Config, "DOCTYPE")
		}
	}

	_, err = message.Read(context.Background(), schema.NewValidator(), strings.NewReader(`<!DOCTYPE rpc><rpc message-id="1"/>`))
	rerr, ok := ncerr.As(err)
	if check.True(ok) {
		check.Equal(ncerr.TagMalformedMessage, rerr.Tag)
	}
}
