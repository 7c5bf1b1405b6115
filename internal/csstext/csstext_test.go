package csstext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	css := `
@layer base, utilities;
/* comment { not a block } */
.a { color: red; background: url("x;y.png"); }
@media (min-width: 768px) {
  .b:hover { color: blue }
}
.c { &:hover { color: green; } }
`
	items := Split(css)
	require.Len(t, items, 4)

	assert.Equal(t, ItemStatement, items[0].Kind)
	assert.Equal(t, "@layer base, utilities", items[0].Prelude)
	assert.True(t, items[0].IsAtRule())

	assert.Equal(t, ItemBlock, items[1].Kind)
	assert.Equal(t, ".a", items[1].Prelude)
	assert.Equal(t, []Decl{
		{Property: "color", Value: "red"},
		{Property: "background", Value: `url("x;y.png")`},
	}, items[1].Decls())

	media := items[2]
	assert.True(t, media.IsAtRule())
	assert.Equal(t, "@media (min-width: 768px)", media.Prelude)
	require.Len(t, media.Blocks(), 1)
	assert.Equal(t, ".b:hover", media.Blocks()[0].Prelude)
	assert.Equal(t, []Decl{{Property: "color", Value: "blue"}}, media.Blocks()[0].Decls())

	nested := items[3]
	assert.Empty(t, nested.Decls())
	require.Len(t, nested.Blocks(), 1)
	assert.Equal(t, "&:hover", nested.Blocks()[0].Prelude)
}

func TestSplitUnbalanced(t *testing.T) {
	items := Split(".a { color: red; } } .b { color: blue; } .c { color: green;")
	require.Len(t, items, 2)
	assert.Equal(t, ".a", items[0].Prelude)
	assert.Equal(t, ".b", items[1].Prelude)
}

func TestRender(t *testing.T) {
	items := Split("@media print { .a { color : red ; } }")
	assert.Equal(t, "@media print { .a { color: red; } }", Render(items))
	assert.Equal(t, ".x { a: b; c: d; }", FormatRule(".x", []Decl{{"a", "b"}, {"c", "d"}}))
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		name      string
		rule      string
		wantSel   string
		wantDecls []Decl
	}{
		{
			name:      "plain class",
			rule:      ".a { color: red; }",
			wantSel:   ".a",
			wantDecls: []Decl{{Property: "color", Value: "red"}},
		},
		{
			name:    "pseudo and multiple declarations",
			rule:    ".btn:hover{color:blue;background-color:#fff}",
			wantSel: ".btn:hover",
			wantDecls: []Decl{
				{Property: "color", Value: "blue"},
				{Property: "background-color", Value: "#fff"},
			},
		},
		{
			name:      "where wrapper",
			rule:      ":where(.x) { padding: 1rem; }",
			wantSel:   ":where(.x)",
			wantDecls: []Decl{{Property: "padding", Value: "1rem"}},
		},
		{
			name:      "custom property",
			rule:      ".t { --gap: 4px; }",
			wantSel:   ".t",
			wantDecls: []Decl{{Property: "--gap", Value: "4px"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, decls, ok := ParseRule(tt.rule)
			require.True(t, ok)
			assert.Equal(t, tt.wantSel, sel)
			assert.Equal(t, tt.wantDecls, decls)
		})
	}
}

func TestParseRuleKeepsValueSpacing(t *testing.T) {
	rule := `:where(.a) > p { margin: 0 auto !important; font-family: "Inter", sans-serif; ` +
		`grid-template-columns: repeat(2, minmax(0, 1fr)); }`

	sel, decls, ok := ParseRule(rule)
	require.True(t, ok)
	assert.Equal(t, ":where(.a) > p", sel)
	assert.Equal(t, []Decl{
		{Property: "margin", Value: "0 auto !important"},
		{Property: "font-family", Value: `"Inter", sans-serif`},
		{Property: "grid-template-columns", Value: "repeat(2, minmax(0, 1fr))"},
	}, decls)
	assert.Equal(t, rule, FormatRule(sel, decls))
}

func TestParseRuleRejectsMalformed(t *testing.T) {
	for _, rule := range []string{
		"",
		"color: red;",
		".a { color: red;",
		"{ color: red; }",
		"@media print { .a { color: red; } }",
		".a { .b { color: red; } }",
	} {
		_, _, ok := ParseRule(rule)
		assert.False(t, ok, rule)
	}
}

func TestTokenize(t *testing.T) {
	toks := Tokenize(".a:hover")
	require.Len(t, toks, 4)
	assert.Equal(t, ".", toks[0].Data)
	assert.Equal(t, "a", toks[1].Data)
	assert.Equal(t, ":", toks[2].Data)
	assert.Equal(t, "hover", toks[3].Data)
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "background-color", Kebab("backgroundColor"))
	assert.Equal(t, "color", Kebab("color"))
	assert.Equal(t, "focus-visible", Kebab("focusVisible"))
	assert.Equal(t, "-webkit-line-clamp", Kebab("WebkitLineClamp"))
}
