package xmlutil

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInScope(t *testing.T) {
	doc, err := xmlquery.Parse(strings.NewReader(`
<rpc xmlns="urn:ietf:params:xml:ns:netconf:base:1.0" xmlns:t="urn:outer" xmlns:if="urn:if" message-id="1">
  <get-config>
    <filter xmlns:t="urn:inner" type="xpath" select="/t:top"/>
  </get-config>
</rpc>`))
	require.NoError(t, err)
	filter := Child(Child(Root(doc), "get-config"), "filter")
	require.NotNil(t, filter)

	a := assert.New(t)
	a.Equal(PrefixMap{"t": "urn:inner", "if": "urn:if"}, InScope(filter))
	a.Equal(PrefixMap{"t": "urn:outer", "if": "urn:if"}, InScope(Root(doc)))
	a.Equal(PrefixMap{}, InScope(nil))
}
