package htmltext

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single paragraph", input: "<p>1000</p>", want: "1000"},
		{name: "strong inside paragraph", input: "<p>Deals <strong>Ice DMG</strong></p>", want: "Deals  Ice DMG"},
		{name: "adjacent paragraphs keep words apart", input: "<p>One</p><p>Two</p>", want: "One  Two"},
		{name: "script is dropped", input: "<p>Safe</p><script>alert(1)</script>", want: "Safe"},
		{name: "entities are decoded", input: "<p>Tom &amp; Jerry</p>", want: "Tom & Jerry"},
		{name: "other tags keep their text", input: `<span style="color:#f29e38">Rare</span> item`, want: "Rare item"},
		{name: "plain text passes through", input: "No tags here.", want: "No tags here."},
		{name: "empty string", input: "", want: ""},
		{name: "unclosed markup", input: "<p><strong>Broken", want: "Broken"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Text(tc.input))
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	for _, in := range []string{"<p>A <strong>bold</strong> claim</p>", "plain words", "<p>x</p><p>y</p>"} {
		once := Text(in)
		require.Equal(t, once, Text(once), "input %q", in)
	}
}

func TestText_NoAngleBracketsAndOrderPreserved(t *testing.T) {
	inputs := []string{
		"<p>Level 1</p><p><strong>HP</strong> 1000</p>",
		"<strong>A</strong><strong>B</strong><p>C</p>",
		"<p></p><p>only</p>",
	}
	for _, in := range inputs {
		got := Text(in)
		require.NotContains(t, got, "<")
		require.NotContains(t, got, ">")

		plain := inlineTagRegex.ReplaceAllString(in, " ")
		require.Equal(t, strings.Fields(plain), strings.Fields(got), "input %q", in)
	}
}

func TestFragments(t *testing.T) {
	require.Equal(t, "Line one Line two", Fragments([]string{"<p>Line one</p><p>Line two</p>"}))
	require.Equal(t, "Bold start", Fragments([]string{"<p><strong>Bold</strong> start</p>"}))
	require.Equal(t, "", Fragments(nil))
	require.Equal(t, "", Fragments([]string{""}))
}

func TestFragments_OnlyFirstElementCounts(t *testing.T) {
	a := Fragments([]string{"<p>first</p>", "<p>second</p>"})
	b := Fragments([]string{"<p>first</p>", "<script>x</script><p>anything else</p>"})
	require.Equal(t, "first", a)
	require.Equal(t, a, b)
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "scalar string", raw: `"<p>Hello</p>"`, want: "Hello"},
		{name: "fragment array", raw: `["<p>a</p><p>b</p>", "<p>c</p>"]`, want: "a b"},
		{name: "empty array", raw: `[]`, want: ""},
		{name: "non-string fragment", raw: `[42]`, want: ""},
		{name: "null", raw: `null`, want: ""},
		{name: "number", raw: `7`, want: ""},
		{name: "object", raw: `{"a":1}`, want: ""},
		{name: "missing", raw: ``, want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FromJSON(json.RawMessage(tc.raw)))
		})
	}
}
