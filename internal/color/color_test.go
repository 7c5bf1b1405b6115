package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorFunctions(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "oklch", got: OKLCH(0.7, 0.2, 250), want: "oklch(0.7 0.2 250)"},
		{name: "oklch with alpha", got: OKLCH(0.7, 0.2, 250, 0.8), want: "oklch(0.7 0.2 250 / 0.8)"},
		{name: "lch", got: LCH(70, 40, 250), want: "lch(70 40 250)"},
		{name: "lab", got: LAB(70, -20, 30, 0.5), want: "lab(70 -20 30 / 0.5)"},
		{name: "hwb", got: HWB(250, 10, 20), want: "hwb(250 10% 20%)"},
		{name: "color-mix", got: ColorMix("blue", "white", 50), want: "color-mix(in oklch, blue 50%, white)"},
		{
			name: "color-mix with space and hue",
			got:  ColorMix("red", "blue", 30, MixOptions{ColorSpace: "oklab", HueInterpolation: "longer"}),
			want: "color-mix(in oklab longer hue, red 30%, blue)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestMixHelpers(t *testing.T) {
	assert.Equal(t, ColorMix("white", "blue", 80), Lighten("blue", 20))
	assert.Equal(t, ColorMix("black", "blue", 70), Darken("blue", 30))
	assert.Equal(t, ColorMix("transparent", "blue", 50), Alpha("blue", 50))
}

func TestGeneratePalette(t *testing.T) {
	palette := GeneratePalette(PaletteOptions{Hue: 250})
	require.Len(t, palette, 11)

	assert.Equal(t, Shade{Key: "50", Value: "oklch(0.9 0.2 250)"}, palette[0])
	assert.Equal(t, Shade{Key: "500", Value: "oklch(0.5 0.2 250)"}, palette[5])
	assert.Equal(t, Shade{Key: "950", Value: "oklch(0.1 0.2 250)"}, palette[10])

	for _, shade := range palette {
		parsed, ok := ParseOKLCH(shade.Value)
		require.True(t, ok, shade.Value)
		assert.InDelta(t, 0.2, parsed.C, 1e-9)
		assert.InDelta(t, 250, parsed.H, 1e-9)
	}

	custom := GeneratePalette(PaletteOptions{Hue: 10, Chroma: 0.1, Shades: 3})
	require.Len(t, custom, 3)
	assert.Equal(t, "oklch(0.9 0.1 10)", custom[0].Value)
	assert.Equal(t, "oklch(0.5 0.1 10)", custom[1].Value)
	assert.Equal(t, "oklch(0.1 0.1 10)", custom[2].Value)
}

func TestCreateColorScale(t *testing.T) {
	scale := CreateColorScale("#3b82f6")
	require.Len(t, scale, 11)
	assert.Equal(t, "#3b82f6", scale[5].Value)
	assert.Equal(t, "color-mix(in oklch, #3b82f6 10%, white)", scale[0].Value)
	assert.Equal(t, "color-mix(in oklch, #3b82f6 80%, black)", scale[6].Value)
	assert.Equal(t, "950", scale[10].Key)
}

func TestHexToOKLCH(t *testing.T) {
	assert.Equal(t, "oklch(0.213 0.4 0)", HexToOKLCH("#ff0000"))
	assert.Equal(t, "oklch(0.072 0.4 240)", HexToOKLCH("#0000ff"))
	assert.Equal(t, "oklch(1 0 0)", HexToOKLCH("#fff"))
	assert.Equal(t, "oklch(0 0 0)", HexToOKLCH("not-a-color"))
}

func TestHexToOKLCHExact(t *testing.T) {
	parsed, ok := ParseOKLCH(HexToOKLCHExact("#ffffff"))
	require.True(t, ok)
	assert.InDelta(t, 1.0, parsed.L, 0.01)
	assert.InDelta(t, 0.0, parsed.C, 0.01)

	red, ok := ParseOKLCH(HexToOKLCHExact("#f00"))
	require.True(t, ok)
	assert.InDelta(t, 0.628, red.L, 0.005)
	assert.InDelta(t, 0.258, red.C, 0.005)
	assert.InDelta(t, 29.2, red.H, 0.5)

	assert.Equal(t, "oklch(0 0 0)", HexToOKLCHExact("not a color"))
}

func TestParseOKLCH(t *testing.T) {
	c, ok := ParseOKLCH("oklch(0.7 0.2 250 / 0.8)")
	require.True(t, ok)
	assert.Equal(t, OKLCHColor{L: 0.7, C: 0.2, H: 250, Alpha: 0.8, HasAlpha: true}, c)
	assert.Equal(t, "oklch(0.7 0.2 250 / 0.8)", c.String())

	c, ok = ParseOKLCH("oklch(70% 0.1 120deg)")
	require.True(t, ok)
	assert.InDelta(t, 0.7, c.L, 1e-9)
	assert.False(t, c.HasAlpha)

	_, ok = ParseOKLCH("rgb(0 0 0)")
	assert.False(t, ok)
}
