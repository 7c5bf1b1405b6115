// Package silk is a zero-runtime atomic CSS engine.
//
// Styles are written as ordered declaration lists against a design-token
// config. Every declaration becomes one atomic class; the engine returns the
// class names and collects the CSS rules for a later export.
//
// # Engine
//
//	cfg := silk.DefineConfig(map[string]any{
//		"colors": map[string]any{"brand": map[string]any{"500": "#3b82f6"}},
//	})
//	sys := silk.CreateStyleSystem(cfg, silk.Options{})
//	classes := sys.CSS(silk.Style{
//		{Key: "bg", Value: silk.Str("brand.500")},
//		{Key: "p", Value: silk.Num(4)},
//		{Key: "_hover", Value: silk.Nest(silk.Style{{Key: "bg", Value: silk.Str("red")}})},
//	})
//	css := sys.GetCSSRules(silk.RulesOptions{})
//
// # Build
//
// Build runs the engine over YAML style sheets and writes the stylesheet
// plus a JSON manifest mapping style names to class names:
//
//	result, err := silk.Build(silk.BuildConfig{
//		SourceDir:  "styles",
//		Includes:   []string{"**/*.silk.yaml"},
//		OutputFile: "dist/silk.css",
//	})
//
// # CLI Tool
//
// The same pipeline is available as a CLI:
//
//	go install github.com/yacobolo/silk/cmd/silk@latest
package silk
