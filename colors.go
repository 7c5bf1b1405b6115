package silk

import "github.com/yacobolo/silk/internal/color"

// Color helpers. All of them build CSS strings and never fail.

type (
	// MixOptions selects the interpolation space of ColorMix.
	MixOptions = color.MixOptions
	// OKLCHColor is a parsed oklch() value.
	OKLCHColor = color.OKLCHColor
	// Shade is one named step of a palette, such as 500.
	Shade = color.Shade
	// PaletteOptions configures GeneratePalette.
	PaletteOptions = color.PaletteOptions
)

// OKLCH formats oklch(l c h) with an optional alpha: OKLCH(0.7, 0.2, 250, 0.8)
// gives "oklch(0.7 0.2 250 / 0.8)".
func OKLCH(l, c, h float64, alpha ...float64) string { return color.OKLCH(l, c, h, alpha...) }

// LCH formats lch(l c h) with an optional alpha.
func LCH(l, c, h float64, alpha ...float64) string { return color.LCH(l, c, h, alpha...) }

// LAB formats lab(l a b) with an optional alpha.
func LAB(l, a, b float64, alpha ...float64) string { return color.LAB(l, a, b, alpha...) }

// HWB formats hwb(h w b) with an optional alpha.
func HWB(h, w, b float64, alpha ...float64) string { return color.HWB(h, w, b, alpha...) }

// ColorMix formats color-mix() with pct percent of c1. The space defaults to
// oklch.
func ColorMix(c1, c2 string, pct float64, opts ...MixOptions) string {
	return color.ColorMix(c1, c2, pct, opts...)
}

// Lighten mixes c toward white by amount percent.
func Lighten(c string, amount float64) string { return color.Lighten(c, amount) }

// Darken mixes c toward black by amount percent.
func Darken(c string, amount float64) string { return color.Darken(c, amount) }

// Alpha mixes c toward transparent by amount percent.
func Alpha(c string, amount float64) string { return color.Alpha(c, amount) }

// GeneratePalette builds shades 50..950 that share one hue and chroma and
// step down in lightness.
func GeneratePalette(opts PaletteOptions) []Shade { return color.GeneratePalette(opts) }

// CreateColorScale builds shades 50..950 around base, which becomes 500.
func CreateColorScale(base string) []Shade { return color.CreateColorScale(base) }

// HexToOKLCH is approximate; see HexToOKLCHExact for a real conversion.
func HexToOKLCH(hex string) string { return color.HexToOKLCH(hex) }

// HexToOKLCHExact converts a hex color through OkLab.
func HexToOKLCHExact(hex string) string { return color.HexToOKLCHExact(hex) }

// ParseOKLCH parses an oklch() string.
func ParseOKLCH(s string) (OKLCHColor, bool) { return color.ParseOKLCH(s) }
