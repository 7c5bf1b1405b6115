package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/silk"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".silk.yaml")
	configContent := `
verbose: true

build:
  source: web
  output: public/app.css
  production: true
  prefix: app-
  include:
    - "styles/**/*.silk.yaml"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "web", k.String("build.source"))
	assert.Equal(t, "public/app.css", k.String("build.output"))
	assert.True(t, k.Bool("build.production"))

	cfg, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, "web", cfg.SourceDir)
	assert.Equal(t, "public/app.css", cfg.OutputFile)
	assert.Equal(t, []string{"styles/**/*.silk.yaml"}, cfg.Includes)
	assert.True(t, cfg.Options.Production)
	assert.Equal(t, "app-", cfg.Options.ClassPrefix)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// A missing config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/.silk.yaml"))

	cfg, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.SourceDir)
	assert.Equal(t, silk.DefaultIncludes, cfg.Includes)
	assert.Equal(t, "dist/silk.css", cfg.OutputFile)
	assert.Empty(t, cfg.ManifestFile)
	assert.Empty(t, cfg.TokensFile)
	assert.Nil(t, cfg.Tokens)
	assert.Nil(t, cfg.Options.Minifier)
	assert.False(t, cfg.Options.Production)
	assert.Empty(t, cfg.Options.LayerOrder)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".silk.yaml")
	configContent := `
build:
  source: from-file
  minify: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("SILK_BUILD_SOURCE", "from-env")
	t.Setenv("SILK_BUILD_MINIFY", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.SourceDir)
	assert.True(t, cfg.Options.Minify)
}

func TestBuildBuildConfig_FlagKeysWin(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("build.output", "from-file.css"))
	require.NoError(t, k.Set("output", "from-flag.css"))
	require.NoError(t, k.Set("build.nesting", true))
	require.NoError(t, k.Set("nesting", false))

	cfg, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.css", cfg.OutputFile)
	assert.False(t, cfg.Options.Nesting)
}

func TestBuildBuildConfig_LayerOrder(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("build.layer-order", []string{"base", "utilities", "recipes"}))

	cfg, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, []silk.Layer{"base", "utilities", "recipes"}, cfg.Options.LayerOrder)

	require.NoError(t, k.Set("build.layer-order", []string{"components"}))
	_, err = buildBuildConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layer-order")
}

func TestBuildBuildConfig_ExternalMinifier(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("build.external-minifier", true))

	cfg, err := buildBuildConfig()
	require.NoError(t, err)
	assert.NotNil(t, cfg.Options.Minifier)
}

func TestBuildBuildConfig_InlineTokens(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".silk.yaml")
	configContent := `
tokens:
  colors:
    brand:
      "500": "#3b82f6"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildBuildConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Tokens)
	v, ok := cfg.Tokens.Lookup("colors", "brand.500")
	assert.True(t, ok)
	assert.Equal(t, "#3b82f6", v)
}

func TestBuildCommand(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ui"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui", "card.silk.yaml"),
		[]byte("styles:\n  card: { p: 4, color: red }\n"), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.SetArgs([]string{
		"build",
		"--config", filepath.Join(dir, ".silk.yaml"),
		"--source", dir,
		"--manifest", "silk.json",
		"--report", "json",
	})
	require.NoError(t, rootCmd.Execute())

	css, err := os.ReadFile(filepath.Join(dir, "dist", "silk.css"))
	require.NoError(t, err)
	assert.Contains(t, string(css), "padding: 1rem;")

	f, err := os.Open(filepath.Join(dir, "silk.json"))
	require.NoError(t, err)
	defer f.Close()
	m, err := silk.ReadManifest(f)
	require.NoError(t, err)
	assert.Len(t, m.Styles, 1)

	var report struct {
		Stats struct {
			Files int `json:"files"`
			Rules int `json:"rules"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Stats.Files)
	assert.Equal(t, 2, report.Stats.Rules)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(".silk.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "build:")
	assert.Contains(t, string(data), "output: dist/silk.css")
}

func TestInitCommand_DefaultConfigLoads(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".silk.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(defaultConfig), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	cfg, err := buildBuildConfig()
	require.NoError(t, err)
	assert.Equal(t, "dist/silk.json", cfg.ManifestFile)
	assert.Len(t, cfg.Options.LayerOrder, 6)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".silk.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".silk.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".silk.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "build:")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "silk dev\n", out.String())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, []string{"a"}, getStringsWithFallback("flag-key", "config.key", []string{"a"}))
	require.NoError(t, k.Set("config.key", []string{"b"}))
	assert.Equal(t, []string{"b"}, getStringsWithFallback("flag-key", "config.key", []string{"a"}))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestCompletionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	rootCmd.SetArgs([]string{"completion", "fish"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "complete -c silk")

	rootCmd.SetArgs([]string{"completion", "tcsh"})
	assert.Error(t, rootCmd.Execute())
}
