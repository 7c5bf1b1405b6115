package silk

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultIncludes matches style sheets anywhere below the source directory.
var DefaultIncludes = []string{"**/*.silk.yaml"}

// BuildConfig configures Build.
type BuildConfig struct {
	// SourceDir is the root for Includes and Purge patterns.
	SourceDir string
	// Includes are doublestar globs of style sheets.
	Includes []string

	// TokensFile is a YAML token file. Tokens takes precedence when set.
	TokensFile string
	Tokens     *DesignConfig

	// OutputFile receives the CSS. Empty means no file is written.
	OutputFile string
	// ManifestFile receives the JSON manifest. Empty means no file is written.
	ManifestFile string

	// Purge are globs of content files. When set, rules of classes that no
	// content file mentions are dropped.
	Purge []string

	Options Options
	Logger  *zap.Logger
}

// BuildResult summarizes a build.
type BuildResult struct {
	FilesScanned int
	Styles       int
	Recipes      int
	Globals      int
	Rules        int
	// ClassesUsed is the number of distinct classes found by purge scanning.
	ClassesUsed int
	Bytes       int
	Warnings    []string

	CSS     string
	Classes SheetClasses
}

// Build runs the engine over every style sheet and writes the outputs.
// Style sheets that fail to parse become warnings.
func Build(cfg BuildConfig) (*BuildResult, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	cfg.Options.Logger = log

	design := cfg.Tokens
	if design == nil && cfg.TokensFile != "" {
		var err error
		design, err = LoadConfigFile(resolvePath(cfg.SourceDir, cfg.TokensFile))
		if err != nil {
			return nil, fmt.Errorf("load tokens: %w", err)
		}
	}

	includes := cfg.Includes
	if len(includes) == 0 {
		includes = DefaultIncludes
	}
	files, _, err := expandGlobs(cfg.SourceDir, includes, newFileFilter(cfg.SourceDir))
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	log.Debug("found style sheets", zap.Int("files", len(files)))

	result := &BuildResult{
		FilesScanned: len(files),
		Classes: SheetClasses{
			Styles:  make(map[string]string),
			Recipes: make(map[string]RecipeClasses),
		},
	}

	sys := CreateStyleSystem(design, cfg.Options)
	sheets, warnings := processFiles(files, log)
	result.Warnings = warnings
	for _, sheet := range sheets {
		result.Globals += len(sheet.sheet.Globals)
		classes := sys.Apply(sheet.sheet)
		result.Warnings = append(result.Warnings, mergeClasses(&result.Classes, classes, sheet.path)...)
	}
	result.Styles = len(result.Classes.Styles)
	result.Recipes = len(result.Classes.Recipes)
	result.Rules = sys.Len()

	opts := RulesOptions{Optimize: cfg.Options.OptimizeCSS || cfg.Options.Production}
	if len(cfg.Purge) > 0 {
		usage, err := ScanUsage(cfg.SourceDir, cfg.Purge, log)
		if err != nil {
			return nil, fmt.Errorf("purge scan failed: %w", err)
		}
		opts.UsedClasses = usage.Classes()
		result.ClassesUsed = len(opts.UsedClasses)
	}

	result.CSS = sys.GetCSSRules(opts)
	result.Bytes = len(result.CSS)

	if cfg.OutputFile != "" {
		if err := writeFile(resolvePath(cfg.SourceDir, cfg.OutputFile), []byte(result.CSS)); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
	}
	if cfg.ManifestFile != "" {
		data, err := MarshalManifest(result)
		if err != nil {
			return nil, fmt.Errorf("encode manifest: %w", err)
		}
		if err := writeFile(resolvePath(cfg.SourceDir, cfg.ManifestFile), data); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
	}

	log.Info("build finished",
		zap.Int("files", result.FilesScanned),
		zap.Int("rules", result.Rules),
		zap.Int("bytes", result.Bytes),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

type parsedSheet struct {
	path  string
	sheet *StyleSheet
}

// processFiles parses every style sheet. Failures become warnings.
func processFiles(files []string, log *zap.Logger) ([]parsedSheet, []string) {
	var sheets []parsedSheet
	var warnings []string

	for _, file := range files {
		log.Debug("parsing style sheet", zap.String("file", file))

		data, err := os.ReadFile(file)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to read %s: %v", file, err))
			continue
		}
		sheet, err := ParseStyleSheet(data)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Failed to parse %s: %v", file, err))
			continue
		}
		sheets = append(sheets, parsedSheet{path: file, sheet: sheet})
	}
	return sheets, warnings
}

// mergeClasses adds src to dst. Names defined twice keep the first
// definition and produce a warning.
func mergeClasses(dst *SheetClasses, src SheetClasses, file string) []string {
	var warnings []string
	for _, name := range sortedKeys(src.Styles) {
		if _, dup := dst.Styles[name]; dup {
			warnings = append(warnings, fmt.Sprintf("Duplicate style %q in %s (first definition kept)", name, file))
			continue
		}
		dst.Styles[name] = src.Styles[name]
	}
	for _, name := range sortedKeys(src.Recipes) {
		if _, dup := dst.Recipes[name]; dup {
			warnings = append(warnings, fmt.Sprintf("Duplicate recipe %q in %s (first definition kept)", name, file))
			continue
		}
		dst.Recipes[name] = src.Recipes[name]
	}
	return warnings
}

func resolvePath(root, path string) string {
	if root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// StyleNames returns the names of all styles in natural order.
func (r *BuildResult) StyleNames() []string {
	return sortedKeys(r.Classes.Styles)
}
