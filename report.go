package silk

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
)

// ReportFormat selects how WriteReport prints a build result.
type ReportFormat string

const (
	ReportText ReportFormat = "text"
	ReportJSON ReportFormat = "json"
)

// ParseReportFormat converts a format flag. Empty means text.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch s {
	case "", "text":
		return ReportText, nil
	case "json":
		return ReportJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text or json)", s)
}

// Terminal styles for the build report. Lipgloss degrades colors based on
// terminal capabilities.
var (
	styleCyan   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleYellow = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleGreen  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleGray   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderStyle applies style only when colors are enabled.
func renderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// ShouldUseColors reports whether w is a terminal, or colors are forced by
// FORCE_COLOR or GitHub Actions.
func ShouldUseColors(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// ReportOptions configures WriteReport.
type ReportOptions struct {
	Format    ReportFormat
	UseColors bool
}

// WriteReport prints a summary of result.
func WriteReport(w io.Writer, result *BuildResult, opts ReportOptions) error {
	if opts.Format == ReportJSON {
		return writeJSONReport(w, result)
	}
	return writeTextReport(w, result, opts.UseColors)
}

func writeTextReport(w io.Writer, result *BuildResult, useColors bool) error {
	rows := []struct {
		label string
		value string
	}{
		{"Style sheets", fmt.Sprint(result.FilesScanned)},
		{"Styles", fmt.Sprint(result.Styles)},
		{"Recipes", fmt.Sprint(result.Recipes)},
		{"Globals", fmt.Sprint(result.Globals)},
		{"Rules", fmt.Sprint(result.Rules)},
		{"CSS size", formatBytes(result.Bytes)},
	}
	if result.ClassesUsed > 0 {
		rows = append(rows, struct {
			label string
			value string
		}{"Classes used", fmt.Sprint(result.ClassesUsed)})
	}

	if _, err := fmt.Fprintln(w, renderStyle(styleCyan, "silk build", useColors)); err != nil {
		return err
	}
	for _, r := range rows {
		label := renderStyle(styleGray, fmt.Sprintf("%-13s", r.label), useColors)
		if _, err := fmt.Fprintf(w, "  %s %s\n", label, r.value); err != nil {
			return err
		}
	}

	if len(result.Warnings) > 0 {
		header := fmt.Sprintf("\nWarnings (%d):", len(result.Warnings))
		if _, err := fmt.Fprintln(w, renderStyle(styleYellow, header, useColors)); err != nil {
			return err
		}
		for _, warning := range result.Warnings {
			if _, err := fmt.Fprintf(w, "  %s\n", warning); err != nil {
				return err
			}
		}
		return nil
	}

	_, err := fmt.Fprintln(w, renderStyle(styleGreen, "✓ No warnings", useColors))
	return err
}

// jsonReport is the machine-readable build summary.
type jsonReport struct {
	Version  string        `json:"version"`
	Stats    jsonStats     `json:"stats"`
	Warnings []string      `json:"warnings"`
	Styles   []jsonClasses `json:"styles"`
}

type jsonStats struct {
	Files       int `json:"files"`
	Styles      int `json:"styles"`
	Recipes     int `json:"recipes"`
	Globals     int `json:"globals"`
	Rules       int `json:"rules"`
	Bytes       int `json:"bytes"`
	ClassesUsed int `json:"classes_used"`
}

type jsonClasses struct {
	Name    string `json:"name"`
	Classes string `json:"classes"`
}

func writeJSONReport(w io.Writer, result *BuildResult) error {
	report := jsonReport{
		Version: ManifestVersion,
		Stats: jsonStats{
			Files:       result.FilesScanned,
			Styles:      result.Styles,
			Recipes:     result.Recipes,
			Globals:     result.Globals,
			Rules:       result.Rules,
			Bytes:       result.Bytes,
			ClassesUsed: result.ClassesUsed,
		},
		Warnings: result.Warnings,
		Styles:   make([]jsonClasses, 0, len(result.Classes.Styles)),
	}
	if report.Warnings == nil {
		report.Warnings = []string{}
	}
	for _, name := range result.StyleNames() {
		report.Styles = append(report.Styles, jsonClasses{Name: name, Classes: result.Classes.Styles[name]})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func formatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f KB", float64(n)/1024)
}
