package silk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindClassColumn(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		class   string
		wantCol int
	}{
		{
			name:    "single class",
			line:    `<div class="btn">`,
			class:   "btn",
			wantCol: 13,
		},
		{
			name:    "multiple classes - first",
			line:    `<div class="btn btn--primary">`,
			class:   "btn",
			wantCol: 13,
		},
		{
			name:    "multiple classes - second",
			line:    `<div class="btn btn--primary">`,
			class:   "btn--primary",
			wantCol: 17,
		},
		{
			name:    "prefix of a later class",
			line:    `<div class="btn--primary btn">`,
			class:   "btn",
			wantCol: 26,
		},
		{
			name:    "with leading spaces",
			line:    `  <div class="btn btn--outline">`,
			class:   "btn--outline",
			wantCol: 19,
		},
		{
			name:    "single quotes",
			line:    `<div class='icon nav-item-icon'>`,
			class:   "nav-item-icon",
			wantCol: 18,
		},
		{
			name:    "jsx className",
			line:    `<p className="z0 z1">`,
			class:   "z1",
			wantCol: 18,
		},
		{
			name:    "class not found",
			line:    `<div class="btn">`,
			class:   "nonexistent",
			wantCol: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantCol, findClassColumn(tt.line, tt.class))
		})
	}
}

func TestIsTemplGenerated(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"standard templ generated (_templ.go)", "internal/web/features/sidebar_templ.go", true},
		{"alternate templ generated (.templ.go)", "internal/web/features/sidebar.templ.go", true},
		{"regular go file", "internal/api/handlers.go", false},
		{"templ source file", "internal/web/features/sidebar.templ", false},
		{"file with templ in name but not generated", "internal/templates/handler.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, isTemplGenerated(tt.path), "isTemplGenerated(%q)", tt.path)
		})
	}
}

func TestExtractClassesFromLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"class attribute", `<div class="a b">`, []string{"a", "b"}},
		{"className attribute", `<div className="silk_p_1rem_h0vptlh">`, []string{"silk_p_1rem_h0vptlh"}},
		{"braced literal", `<div class={ "card" }>`, []string{"card"}},
		{"template literal", "<div className={`x y`}>", []string{"x", "y"}},
		{"templ.Classes", `<div class={ templ.Classes("a b", ui.Card, templ.KV("c", on)) }>`, []string{"a", "b"}},
		{"templ.KV", `<div class={ templ.KV("active", isActive) }>`, []string{"active"}},
		{"comment", `// <div class="nope">`, nil},
		{"no class", `<div id="main">`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, ref := range extractClassesFromLine(tt.line, 3, "page.html") {
				assert.Equal(t, 3, ref.Location.Line)
				got = append(got, ref.Class)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTemplArgs(t *testing.T) {
	assert.Equal(t, []string{`"a"`, ` f(x, y)`, ` "b"`}, splitTemplArgs(`"a", f(x, y), "b"`))
}

func TestScanUsage(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, ".gitignore", "dist/\n")
	writeTestFile(t, root, "web/index.html", "<body class=\"z0 z1\">\n  <p class=\"z1\">hi</p>\n</body>\n")
	writeTestFile(t, root, "web/page.templ", `<div class={ templ.Classes("z2") }></div>`+"\n")
	writeTestFile(t, root, "web/page_templ.go", `templ.Classes("generated")`+"\n")
	writeTestFile(t, root, "dist/out.html", `<div class="ignored"></div>`+"\n")

	usage, err := ScanUsage(root, []string{"web/**/*", "dist/**/*.html"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"z0", "z1", "z2"}, usage.Classes())
	assert.Equal(t, ScanStats{FilesDiscovered: 4, FilesScanned: 2, FilesSkipped: 2}, usage.Stats)
	assert.Len(t, usage.Refs, 4)
}

func TestScanUsageBadPattern(t *testing.T) {
	_, err := ScanUsage(t.TempDir(), []string{"[unclosed"}, nil)
	assert.Error(t, err)
}

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
