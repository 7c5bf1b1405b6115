package nesting

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yacobolo/silk/internal/csstext"
)

func TestSplitSelector(t *testing.T) {
	tests := []struct {
		sel, base, suffix string
	}{
		{".a", ".a", ""},
		{".a:hover", ".a", ":hover"},
		{".a::before", ".a", "::before"},
		{".a[data-open]", ".a", "[data-open]"},
		{".a:not(.b):hover", ".a", ":not(.b):hover"},
		{":where(.a)", ":where(.a)", ""},
		{":where(.a):focus-visible", ":where(.a)", ":focus-visible"},
		{":root", ":root", ""},
		{".a:hover, .b", ".a:hover, .b", ""},
		{".card .title:hover", ".card .title", ":hover"},
	}
	for _, tt := range tests {
		base, suffix := SplitSelector(tt.sel)
		assert.Equal(t, tt.base, base, tt.sel)
		assert.Equal(t, tt.suffix, suffix, tt.sel)
	}
}

func TestGroupRulesBySelector(t *testing.T) {
	tr := New(DefaultConfig(), nil)

	groups := tr.GroupRulesBySelector([]string{
		".btn { color: red; padding: 1rem; }",
		".btn:hover { color: blue; }",
		".link { color: green; }",
		".btn { color: black; }",
		".btn:hover { background-color: #eee; }",
		".btn::before { content: \"\"; }",
	})

	want := []Group{
		{
			Selector: ".btn",
			Base: []csstext.Decl{
				{Property: "color", Value: "black"},
				{Property: "padding", Value: "1rem"},
			},
			Nested: []NestedRule{
				{Selector: "&:hover", Decls: []csstext.Decl{
					{Property: "color", Value: "blue"},
					{Property: "background-color", Value: "#eee"},
				}},
				{Selector: "&::before", Decls: []csstext.Decl{{Property: "content", Value: `""`}}},
			},
		},
		{
			Selector: ".link",
			Base:     []csstext.Decl{{Property: "color", Value: "green"}},
		},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupSkipsMalformedRules(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tr := New(DefaultConfig(), zap.New(core))

	groups := tr.GroupRulesBySelector([]string{
		".a { color: red;",
		"not a rule",
		".b { color: red; }",
	})
	require.Len(t, groups, 1)
	assert.Equal(t, ".b", groups[0].Selector)
	assert.Equal(t, 2, logs.FilterMessage("skipping malformed rule").Len())
}

func TestGenerateNestedCSS(t *testing.T) {
	tr := New(DefaultConfig(), nil)
	decls := []csstext.Decl{{Property: "color", Value: "red"}}
	nested := []NestedRule{{Selector: "&:hover", Decls: []csstext.Decl{{Property: "color", Value: "blue"}}}}

	assert.Equal(t, ".a {\n  color: red;\n  &:hover { color: blue; }\n}", tr.GenerateNestedCSS(".a", decls, nested))
	assert.Equal(t, ".a { color: red; }", tr.GenerateNestedCSS(".a", decls, nil))
	assert.Equal(t, ".a:hover { color: blue; }", tr.GenerateNestedCSS(".a", nil, nested),
		"a single nested entry without base declarations stays flat")

	two := append(nested, NestedRule{Selector: "&::after", Decls: []csstext.Decl{{Property: "content", Value: `""`}}})
	assert.Equal(t, ".a {\n  &:hover { color: blue; }\n  &::after { content: \"\"; }\n}", tr.GenerateNestedCSS(".a", nil, two))

	legacy := New(Config{Enabled: true, LegacyFallback: true}, nil)
	assert.Equal(t, ".a { color: red; }\n.a:hover { color: blue; }", legacy.GenerateNestedCSS(".a", decls, nested))

	disabled := New(Config{}, nil)
	assert.Equal(t, ".a:hover { color: blue; }", disabled.GenerateNestedCSS(".a", nil, nested))
}

func TestConvertToNestedCSS(t *testing.T) {
	tr := New(DefaultConfig(), nil)

	in := `@layer utilities;
.a { color: red; }
@media (min-width: 768px) { .a { color: blue; } }
.a:hover { color: green; }`

	want := "@layer utilities;\n" +
		".a {\n  color: red;\n  &:hover { color: green; }\n}\n" +
		"@media (min-width: 768px) { .a { color: blue; } }"
	assert.Equal(t, want, tr.ConvertToNestedCSS(in))
}

func TestNestingRoundTrip(t *testing.T) {
	tr := New(DefaultConfig(), nil)
	rules := []string{
		":where(.x) { margin: 0; }",
		":where(.x):hover { margin: 1px; }",
		".y { color: red; padding: 2px; }",
		".y[aria-selected] { color: blue; }",
		".y:focus-visible { outline: 2px solid red; }",
		".z:hover { color: red; }",
	}

	original := tr.GroupRulesBySelector(rules)

	var css []string
	for _, g := range original {
		css = append(css, tr.GenerateNestedCSS(g.Selector, g.Base, g.Nested))
	}

	var expanded []string
	for _, block := range css {
		expanded = append(expanded, tr.ExpandNestedCSS(block)...)
	}
	regrouped := tr.GroupRulesBySelector(expanded)

	if diff := cmp.Diff(original, regrouped); diff != "" {
		t.Errorf("round trip mismatch (-original +regrouped):\n%s", diff)
	}
}
