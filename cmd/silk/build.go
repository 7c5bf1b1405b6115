package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/silk"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"gen"},
	Short:   "Build atomic CSS and a class manifest from style sheets",
	Long: `Build reads every *.silk.yaml style sheet below the source directory,
turns each declaration into an atomic class and writes the CSS and manifest.

Style sheets that fail to parse are reported as warnings. With --purge,
rules of classes that no content file mentions are dropped.`,
	Example: `  silk build
  silk build --source web --tokens-file tokens.yaml --manifest dist/silk.json
  silk build --production --purge "templates/**/*.html"`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("source", "", "Root of style sheets, outputs and purge patterns (default \".\")")
	f.StringSlice("include", nil, "Style sheet glob patterns (default **/*.silk.yaml)")
	f.String("tokens-file", "", "YAML design token file")
	f.String("output", "", "CSS output file (default dist/silk.css)")
	f.String("manifest", "", "JSON manifest output file")
	f.StringSlice("purge", nil, "Content glob patterns used to drop unused classes")
	f.String("report", "", "Report format: text or json")
	f.Bool("strict", false, "Fail when the build produced warnings")

	f.Bool("production", false, "Hashed class names, optimized and minified CSS")
	f.Bool("short-names", false, "Counter class names (z0, z1, ...) in production")
	f.Bool("minify", false, "Minify the CSS")
	f.Bool("optimize", false, "Merge and deduplicate rules")
	f.Bool("external-minifier", false, "Minify with tdewolff/minify instead of the built-in minifier")
	f.String("prefix", "", "Class name prefix")
	f.Bool("no-where", false, "Emit plain class selectors instead of :where()")
	f.Bool("no-layers", false, "Emit rules without @layer blocks")
	f.StringSlice("layer-order", nil, "Cascade layer order")
	f.Bool("nesting", false, "Fold rules into nested CSS")
	f.Bool("legacy-fallback", false, "Expand nested CSS for older browsers")
	f.Bool("token-variables", false, "Emit tokens as custom properties on :root")
	f.Bool("css-variables", false, "Resolve tokens to var() references")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	log := newLogger(getBoolWithFallback("verbose", "verbose", false), quiet)
	defer func() { _ = log.Sync() }()

	cfg, err := buildBuildConfig()
	if err != nil {
		return err
	}
	cfg.Logger = log

	format, err := silk.ParseReportFormat(getStringWithFallback("report", "build.report", "text"))
	if err != nil {
		return err
	}

	result, err := silk.Build(cfg)
	if err != nil {
		return err
	}

	if !quiet {
		out := cmd.OutOrStdout()
		useColors := getBoolWithFallback("color", "color", false) || silk.ShouldUseColors(out)
		if err := silk.WriteReport(out, result, silk.ReportOptions{Format: format, UseColors: useColors}); err != nil {
			return err
		}
	}

	if getBoolWithFallback("strict", "build.strict", false) && len(result.Warnings) > 0 {
		return fmt.Errorf("build produced %d warnings", len(result.Warnings))
	}
	return nil
}
