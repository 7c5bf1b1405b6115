package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	assert.Equal(t, ":where(.a)", Generate("a", DefaultOptions(), ""))
	assert.Equal(t, ":where(.a):hover", Generate("a", DefaultOptions(), ":hover"))
	assert.Equal(t, ".a::before", Generate("a", Options{}, "::before"))
}

func TestWrapWhere(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{".a", ":where(.a)"},
		{".a .b", ":where(.a .b)"},
		{":where(.a)", ":where(.a)"},
		{":hover", ":hover"},
		{"::before", "::before"},
		{"@media print", "@media print"},
		{"&:hover", "&:hover"},
		{":where(.a):hover", ":where(.a):hover"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WrapWhere(tt.in), tt.in)
	}
	assert.Equal(t, WrapWhere(".x"), WrapWhere(WrapWhere(".x")))
}

func TestCalculateSpecificity(t *testing.T) {
	tests := []struct {
		sel  string
		want Specificity
	}{
		{".a", Specificity{0, 0, 1, 0}},
		{"#id", Specificity{0, 1, 0, 0}},
		{"div", Specificity{0, 0, 0, 1}},
		{"div.a#b", Specificity{0, 1, 1, 1}},
		{".a:hover", Specificity{0, 0, 2, 0}},
		{"a[href]", Specificity{0, 0, 1, 1}},
		{`input[type="text"]`, Specificity{0, 0, 1, 1}},
		{"p::before", Specificity{0, 0, 0, 2}},
		{"p:after", Specificity{0, 0, 0, 2}},
		{"li:nth-child(2n+1)", Specificity{0, 0, 1, 1}},
		{":where(#a .b)", Specificity{}},
		{":where(.a):hover", Specificity{0, 0, 1, 0}},
		{":is(#a, .b) span", Specificity{0, 1, 0, 1}},
		{":not(.a.b)", Specificity{0, 0, 2, 0}},
		{".a, #b", Specificity{0, 1, 0, 0}},
		{"ul > li + li", Specificity{0, 0, 0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateSpecificity(tt.sel))
		})
	}
}

func TestWhereAlwaysZero(t *testing.T) {
	for _, sel := range []string{".a", "#id .b", "div.c > span", "a[href]:hover", ".x.y.z"} {
		assert.Equal(t, Specificity{}, CalculateSpecificity(WrapWhere(sel)), sel)
	}
}

func TestCompareSpecificity(t *testing.T) {
	assert.Equal(t, -1, CompareSpecificity(".a", "#a"))
	assert.Equal(t, 1, CompareSpecificity(".a.b", ".a"))
	assert.Equal(t, 0, CompareSpecificity(".a", ".b"))
	assert.Equal(t, -1, CompareSpecificity(":where(.a)", "div"))
}

func TestOptimize(t *testing.T) {
	assert.Equal(t, ".a .b", Optimize("  .a   .b ", Options{}))
	assert.Equal(t, ".a", Optimize("*.a", Options{}))
	assert.Equal(t, ".btn", Optimize(`[class~="btn"]`, Options{}))
	assert.Equal(t, ":where(.btn)", Optimize(`*[class~="btn"]`, DefaultOptions()))
	assert.Equal(t, "*", Optimize("*", Options{}))
}

func TestExtractClassNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, ExtractClassNames(":where(.a) .b:hover > .c.a"))
	assert.Empty(t, ExtractClassNames("div#x"))
}

func TestPseudo(t *testing.T) {
	tests := map[string]string{
		"_hover":        ":hover",
		"_focusVisible": ":focus-visible",
		"_first":        ":first-child",
		"_odd":          ":nth-child(odd)",
		"_before":       "::before",
		"_placeholder":  "::placeholder",
		"_ariaExpanded": ":aria-expanded",
		"_[data-open]":  "[data-open]",
		"_&:hover":      ":hover",
	}
	for key, want := range tests {
		assert.Equal(t, want, Pseudo(key), key)
	}
}

func TestCondition(t *testing.T) {
	bp := map[string]string{"md": "800px", "tablet": "900px"}

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"@md", "@media (min-width: 800px)", true},
		{"@tablet", "@media (min-width: 900px)", true},
		{"@lg", "@media (min-width: 1024px)", true},
		{"@2xl", "@media (min-width: 1536px)", true},
		{"@dark", "@media (prefers-color-scheme: dark)", true},
		{"@print", "@media print", true},
		{"@motionReduce", "@media (prefers-reduced-motion: reduce)", true},
		{"@container (min-width: 400px)", "@container (min-width: 400px)", true},
		{"@media screen and (min-width: 10px)", "@media screen and (min-width: 10px)", true},
		{"@supports (display: grid)", "@supports (display: grid)", true},
		{"@nope", "@nope", false},
	}
	for _, tt := range tests {
		got, ok := Condition(tt.key, bp)
		assert.Equal(t, tt.want, got, tt.key)
		assert.Equal(t, tt.wantOK, ok, tt.key)
	}
}
