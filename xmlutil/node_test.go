package xmlutil

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRoot(t *testing.T, s string) *xmlquery.Node {
	doc, err := xmlquery.Parse(strings.NewReader(s))
	require.NoError(t, err)
	root := Root(doc)
	require.NotNil(t, root)
	return root
}

func TestChildLookups(t *testing.T) {
	root := parseRoot(t, `<a>
  text
  <b n="1"/>
  <!-- comment -->
  <c/>
  <b n="2"/>
</a>`)
	check := assert.New(t)

	var names []string
	for _, c := range Children(root) {
		names = append(names, c.Data)
	}
	check.Equal([]string{"b", "c", "b"}, names)
	check.Equal("b", FirstElement(root).Data)

	// first occurrence wins
	v, ok := Attr(Child(root, "b"), "n")
	check.True(ok)
	check.Equal("1", v)

	check.Nil(Child(root, "d"))
	check.Nil(FirstElement(Child(root, "c")))
	check.Nil(Children(nil))
	check.Same(root, Root(root))
}

func TestAttr(t *testing.T) {
	root := parseRoot(t, `<rpc xmlns:x="urn:x" message-id="101" x:other="o" empty=""/>`)
	check := assert.New(t)
	for _, tc := range []struct {
		name  string
		want  string
		found bool
	}{
		{name: "message-id", want: "101", found: true},
		{name: "empty", want: "", found: true},
		{name: "other"},
		{name: "missing"},
	} {
		v, ok := Attr(root, tc.name)
		check.Equal(tc.found, ok, tc.name)
		check.Equal(tc.want, v, tc.name)
	}
	_, ok := Attr(nil, "message-id")
	check.False(ok)
}

func TestText(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
		ok   bool
	}{
		{in: `<capability>  urn:x  </capability>`, want: "urn:x", ok: true},
		{in: "<url>\n\tfile:///cfg.xml\n</url>", want: "file:///cfg.xml", ok: true},
		{in: `<url><!-- note -->file:///a</url>`, want: "file:///a", ok: true},
		{in: `<url><![CDATA[ file:///b ]]></url>`, want: "file:///b", ok: true},
		{in: `<url></url>`},
		{in: `<url/>`},
		{in: `<url><x/></url>`},
		{in: `<url>a<x/>b</url>`},
	} {
		t.Run(tc.in, func(t *testing.T) {
			check := assert.New(t)
			got, ok := Text(parseRoot(t, tc.in))
			check.Equal(tc.ok, ok)
			check.Equal(tc.want, got)
		})
	}
}

func TestInnerXML(t *testing.T) {
	root := parseRoot(t, `<filter type="subtree"><top xmlns="urn:t"><users/></top></filter>`)
	check := assert.New(t)
	inner := InnerXML(root)
	check.True(strings.HasPrefix(inner, "<top"), inner)
	check.Contains(inner, "users")
	check.NotContains(inner, "filter")
	check.Equal("", InnerXML(nil))
}

func TestPath(t *testing.T) {
	check := assert.New(t)
	root := parseRoot(t, `<rpc message-id="1"><edit-config><target><running/></target></edit-config></rpc>`)
	target := Child(Child(root, "edit-config"), "target")
	check.Equal("/rpc/edit-config/target", Path(target))
	check.Equal("/rpc/edit-config/target/running", Path(FirstElement(target)))
	check.Equal("/rpc", Path(root))
	check.Equal("", Path(root.Parent))
	check.Equal("", Path(nil))
}
