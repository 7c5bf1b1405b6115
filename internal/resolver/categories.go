package resolver

import (
	"strings"

	"github.com/yacobolo/silk/internal/tokens"
)

// propertyCategories maps canonical CSS properties to the token category their
// values are looked up in.
var propertyCategories = map[string]string{
	// Colors
	"color":                 tokens.Colors,
	"background":            tokens.Colors,
	"background-color":      tokens.Colors,
	"border-color":          tokens.Colors,
	"border-top-color":      tokens.Colors,
	"border-right-color":    tokens.Colors,
	"border-bottom-color":   tokens.Colors,
	"border-left-color":     tokens.Colors,
	"border-inline-color":   tokens.Colors,
	"border-block-color":    tokens.Colors,
	"outline-color":         tokens.Colors,
	"text-decoration-color": tokens.Colors,
	"caret-color":           tokens.Colors,
	"accent-color":          tokens.Colors,
	"column-rule-color":     tokens.Colors,
	"fill":                  tokens.Colors,
	"stroke":                tokens.Colors,

	// Spacing
	"gap":        tokens.Spacing,
	"row-gap":    tokens.Spacing,
	"column-gap": tokens.Spacing,
	"inset":      tokens.Spacing,
	"top":        tokens.Spacing,
	"right":      tokens.Spacing,
	"bottom":     tokens.Spacing,
	"left":       tokens.Spacing,

	// Sizes
	"width":           tokens.Sizes,
	"height":          tokens.Sizes,
	"inline-size":     tokens.Sizes,
	"block-size":      tokens.Sizes,
	"min-width":       tokens.Sizes,
	"min-height":      tokens.Sizes,
	"min-inline-size": tokens.Sizes,
	"min-block-size":  tokens.Sizes,
	"max-width":       tokens.Sizes,
	"max-height":      tokens.Sizes,
	"max-inline-size": tokens.Sizes,
	"max-block-size":  tokens.Sizes,
	"flex-basis":      tokens.Sizes,

	// Typography
	"font-family":    tokens.Fonts,
	"font-size":      tokens.FontSizes,
	"font-weight":    tokens.FontWeights,
	"line-height":    tokens.LineHeights,
	"letter-spacing": tokens.LetterSpacings,

	// Effects
	"border-radius": tokens.Radii,
	"box-shadow":    tokens.Shadows,
	"text-shadow":   tokens.Shadows,
	"z-index":       tokens.ZIndices,
}

// CategoryOf returns the token category for a canonical property, or "" when
// the property never takes token values.
func CategoryOf(property string) string {
	if cat, ok := propertyCategories[property]; ok {
		return cat
	}

	switch {
	case strings.HasPrefix(property, "padding"), strings.HasPrefix(property, "margin"),
		strings.HasPrefix(property, "inset-"), strings.HasPrefix(property, "scroll-margin"),
		strings.HasPrefix(property, "scroll-padding"):
		return tokens.Spacing
	case strings.HasPrefix(property, "border-") && strings.HasSuffix(property, "-radius"):
		return tokens.Radii
	case strings.HasPrefix(property, "border-") && strings.HasSuffix(property, "-color"):
		return tokens.Colors
	}
	return ""
}

// isSpacing reports whether bare numbers on property use the spacing scale.
func isSpacing(property string) bool {
	switch property {
	case "gap", "row-gap", "column-gap":
		return true
	}
	return strings.HasPrefix(property, "margin") || strings.HasPrefix(property, "padding")
}

// isUnitless reports whether bare numbers on property are emitted as-is.
func isUnitless(property string) bool {
	switch property {
	case "opacity", "z-index", "font-weight", "line-height",
		"flex", "flex-grow", "flex-shrink", "order", "scale":
		return true
	}
	return false
}
