// Package color builds modern CSS color expressions. Every function is pure
// string building; numeric arguments are neither validated nor clamped.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MixOptions controls color-mix() output.
type MixOptions struct {
	ColorSpace       string // defaults to "oklch"
	HueInterpolation string // "shorter", "longer", "increasing", "decreasing"
}

// OKLCHColor is a parsed oklch() value.
type OKLCHColor struct {
	L, C, H  float64
	Alpha    float64
	HasAlpha bool
}

// Shade is one step of a palette or scale.
type Shade struct {
	Key   string // "500"
	Value string
}

// PaletteOptions configures GeneratePalette.
type PaletteOptions struct {
	Hue    float64
	Chroma float64 // defaults to 0.2
	Shades int     // defaults to 11
}

// OKLCH formats oklch(l c h[ / alpha]).
func OKLCH(l, c, h float64, alpha ...float64) string {
	return colorFunc("oklch", []string{num(l), num(c), num(h)}, alpha)
}

// LCH formats lch(l c h[ / alpha]).
func LCH(l, c, h float64, alpha ...float64) string {
	return colorFunc("lch", []string{num(l), num(c), num(h)}, alpha)
}

// LAB formats lab(l a b[ / alpha]).
func LAB(l, a, b float64, alpha ...float64) string {
	return colorFunc("lab", []string{num(l), num(a), num(b)}, alpha)
}

// HWB formats hwb(h w% b%[ / alpha]).
func HWB(h, w, b float64, alpha ...float64) string {
	return colorFunc("hwb", []string{num(h), num(w) + "%", num(b) + "%"}, alpha)
}

func colorFunc(name string, channels []string, alpha []float64) string {
	body := strings.Join(channels, " ")
	if len(alpha) > 0 {
		body += " / " + num(alpha[0])
	}
	return name + "(" + body + ")"
}

// ColorMix formats color-mix(in <space>[ <hue> hue], <c1> <pct>%, <c2>).
func ColorMix(c1, c2 string, pct float64, opts ...MixOptions) string {
	var o MixOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	space := o.ColorSpace
	if space == "" {
		space = "oklch"
	}
	if o.HueInterpolation != "" {
		space += " " + o.HueInterpolation + " hue"
	}
	return fmt.Sprintf("color-mix(in %s, %s %s%%, %s)", space, c1, num(pct), c2)
}

// Lighten mixes white into c: Lighten(c, p) == ColorMix("white", c, 100-p).
func Lighten(c string, amount float64) string {
	return ColorMix("white", c, 100-amount)
}

// Darken mixes black into c: Darken(c, p) == ColorMix("black", c, 100-p).
func Darken(c string, amount float64) string {
	return ColorMix("black", c, 100-amount)
}

// Alpha mixes transparent into c: Alpha(c, p) == ColorMix("transparent", c, 100-p).
func Alpha(c string, amount float64) string {
	return ColorMix("transparent", c, 100-amount)
}

var paletteKeys = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

func shadeKey(i int) string {
	if i < len(paletteKeys) {
		return paletteKeys[i]
	}
	return strconv.Itoa(i * 100)
}

// GeneratePalette produces a lightness ramp at fixed hue and chroma.
func GeneratePalette(opts PaletteOptions) []Shade {
	chroma := opts.Chroma
	if chroma == 0 {
		chroma = 0.2
	}
	shades := opts.Shades
	if shades <= 0 {
		shades = 11
	}

	step := 0.0
	if shades > 1 {
		step = 0.8 / float64(shades-1)
	}

	out := make([]Shade, 0, shades)
	for i := 0; i < shades; i++ {
		l := round(0.9-float64(i)*step, 4)
		out = append(out, Shade{Key: shadeKey(i), Value: OKLCH(l, chroma, opts.Hue)})
	}
	return out
}

// scale weights: share of the base color in each mix
var (
	lighterWeights = map[string]float64{"50": 10, "100": 20, "200": 40, "300": 60, "400": 80}
	darkerWeights  = map[string]float64{"600": 80, "700": 60, "800": 40, "900": 20, "950": 10}
)

// CreateColorScale derives a 50..950 scale from one base color: 500 is the
// base, lighter steps mix with white and darker steps with black.
func CreateColorScale(base string) []Shade {
	out := make([]Shade, 0, len(paletteKeys))
	for _, key := range paletteKeys {
		var v string
		switch {
		case key == "500":
			v = base
		case lighterWeights[key] > 0:
			v = ColorMix(base, "white", lighterWeights[key])
		default:
			v = ColorMix(base, "black", darkerWeights[key])
		}
		out = append(out, Shade{Key: key, Value: v})
	}
	return out
}

// HexToOKLCH is a rough conversion for previews only: lightness is sRGB luma,
// chroma comes from the channel spread and hue from the HSL hue angle. It is
// not colorimetrically accurate. Unparseable input yields oklch(0 0 0).
func HexToOKLCH(hex string) string {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return OKLCH(0, 0, 0)
	}

	r, g, b := c.R, c.G, c.B
	l := 0.2126*r + 0.7152*g + 0.0722*b
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	h := 0.0
	if delta > 0 {
		switch maxC {
		case r:
			h = math.Mod((g-b)/delta, 6)
		case g:
			h = (b-r)/delta + 2
		default:
			h = (r-g)/delta + 4
		}
		h *= 60
		if h < 0 {
			h += 360
		}
	}

	return OKLCH(round(l, 3), round(delta*0.4, 3), round(h, 1))
}

// HexToOKLCHExact converts through the OkLab color space.
func HexToOKLCHExact(hex string) string {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return OKLCH(0, 0, 0)
	}
	l, ch, h := c.OkLch()
	return OKLCH(round(l, 3), round(ch, 3), round(h, 1))
}

// normalizeHex expands #rgb to #rrggbb, which is all colorful.Hex accepts
// besides the long form.
func normalizeHex(hex string) string {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) == 4 {
		return "#" + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2) + strings.Repeat(hex[3:4], 2)
	}
	return hex
}

var oklchPattern = regexp.MustCompile(`^oklch\(\s*([-\d.]+%?)\s+([-\d.]+)\s+([-\d.]+)(?:deg)?\s*(?:/\s*([-\d.]+%?)\s*)?\)$`)

// ParseOKLCH parses oklch(l c h[ / a]); percentages map to 0..1.
func ParseOKLCH(s string) (OKLCHColor, bool) {
	m := oklchPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return OKLCHColor{}, false
	}

	var out OKLCHColor
	var ok bool
	if out.L, ok = parseUnit(m[1]); !ok {
		return OKLCHColor{}, false
	}
	if out.C, ok = parseUnit(m[2]); !ok {
		return OKLCHColor{}, false
	}
	if out.H, ok = parseUnit(m[3]); !ok {
		return OKLCHColor{}, false
	}
	if m[4] != "" {
		if out.Alpha, ok = parseUnit(m[4]); !ok {
			return OKLCHColor{}, false
		}
		out.HasAlpha = true
	}
	return out, true
}

// String formats the color back to oklch().
func (c OKLCHColor) String() string {
	if c.HasAlpha {
		return OKLCH(c.L, c.C, c.H, c.Alpha)
	}
	return OKLCH(c.L, c.C, c.H)
}

func parseUnit(s string) (float64, bool) {
	pct := strings.HasSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0, false
	}
	if pct {
		f /= 100
	}
	return f, true
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func round(f float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(f*p) / p
}
