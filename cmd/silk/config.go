package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/silk"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".silk.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// A nil koanf makes posflag skip flags the user did not set, so flag
	// defaults never shadow values from the file or the environment.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", nil), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// SILK_BUILD_SOURCE -> build.source
	// SILK_VERBOSE -> verbose
	if err := k.Load(env.Provider("SILK_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "SILK_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildBuildConfig constructs the library's BuildConfig from koanf state.
func buildBuildConfig() (silk.BuildConfig, error) {
	cfg := silk.BuildConfig{
		SourceDir:    getStringWithFallback("source", "build.source", "."),
		Includes:     getStringsWithFallback("include", "build.include", silk.DefaultIncludes),
		TokensFile:   getStringWithFallback("tokens-file", "build.tokens-file", ""),
		OutputFile:   getStringWithFallback("output", "build.output", "dist/silk.css"),
		ManifestFile: getStringWithFallback("manifest", "build.manifest", ""),
		Purge:        getStringsWithFallback("purge", "build.purge", nil),
		Options: silk.Options{
			Production:      getBoolWithFallback("production", "build.production", false),
			ShortClassNames: getBoolWithFallback("short-names", "build.short-names", false),
			Minify:          getBoolWithFallback("minify", "build.minify", false),
			OptimizeCSS:     getBoolWithFallback("optimize", "build.optimize", false),
			ClassPrefix:     getStringWithFallback("prefix", "build.prefix", ""),
			DisableWhere:    getBoolWithFallback("no-where", "build.no-where", false),
			DisableLayers:   getBoolWithFallback("no-layers", "build.no-layers", false),
			Nesting:         getBoolWithFallback("nesting", "build.nesting", false),
			LegacyFallback:  getBoolWithFallback("legacy-fallback", "build.legacy-fallback", false),
			TokenVariables:  getBoolWithFallback("token-variables", "build.token-variables", false),
			CSSVariables:    getBoolWithFallback("css-variables", "build.css-variables", false),
		},
	}

	for _, name := range getStringsWithFallback("layer-order", "build.layer-order", nil) {
		l, err := silk.ParseLayer(name)
		if err != nil {
			return cfg, fmt.Errorf("layer-order: %w", err)
		}
		cfg.Options.LayerOrder = append(cfg.Options.LayerOrder, l)
	}

	if getBoolWithFallback("external-minifier", "build.external-minifier", false) {
		cfg.Options.Minifier = silk.NewTdewolffMinifier()
	}

	// Tokens written inline in the config file win over a tokens file.
	if k.Exists("tokens") {
		cfg.Tokens = silk.DefineConfig(k.Cut("tokens").Raw())
	}

	return cfg, nil
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
