// Package resolver turns style declarations into canonical CSS property/value
// pairs: shorthand expansion, design-token substitution and unit handling.
package resolver

import (
	"strconv"
	"strings"

	"github.com/yacobolo/silk/internal/color"
	"github.com/yacobolo/silk/internal/csstext"
	"github.com/yacobolo/silk/internal/style"
	"github.com/yacobolo/silk/internal/tokens"
)

// spacingUnit is the rem size of one step on the numeric spacing scale.
const spacingUnit = 0.25

// Options tweaks value resolution.
type Options struct {
	// CSSVariables emits var(--category-path) for resolved tokens instead of
	// their literal values.
	CSSVariables bool
}

// Resolver resolves declarations against one token config.
type Resolver struct {
	cfg  *tokens.Config
	opts Options
}

// New creates a Resolver. cfg may be nil, in which case no tokens resolve.
func New(cfg *tokens.Config, opts Options) *Resolver {
	return &Resolver{cfg: cfg, opts: opts}
}

// Resolve is a convenience for New(cfg, Options{}).Resolve.
func Resolve(property string, value style.Value, cfg *tokens.Config) (string, string) {
	return New(cfg, Options{}).Resolve(property, value)
}

// Resolve maps a shorthand or camelCase property to its CSS name and
// normalizes the value. It never fails: unknown tokens pass through.
func (r *Resolver) Resolve(property string, value style.Value) (string, string) {
	prop := Property(property)
	return prop, r.Value(prop, value)
}

// Value normalizes a value for an already canonical property.
func (r *Resolver) Value(prop string, value style.Value) string {
	raw := value.String()

	if v, ok := r.token(prop, raw); ok {
		return v
	}

	if value.Kind != style.KindNumber {
		return raw
	}

	switch {
	case strings.HasPrefix(prop, "--"), isUnitless(prop):
		return raw
	case isSpacing(prop):
		return style.FormatNumber(value.Num*spacingUnit) + "rem"
	default:
		return raw + "px"
	}
}

// token looks raw up in the property's category, then as a fully-qualified
// "category.path". Colors accept an opacity modifier: "brand.500/50".
func (r *Resolver) token(prop, raw string) (string, bool) {
	if r.cfg == nil || raw == "" || strings.ContainsAny(raw, " (") {
		return "", false
	}

	path, opacity := raw, ""
	if i := strings.LastIndexByte(raw, '/'); i > 0 {
		if _, err := strconv.ParseFloat(raw[i+1:], 64); err == nil {
			path, opacity = raw[:i], raw[i+1:]
		}
	}

	category := CategoryOf(prop)
	v, ok := r.lookup(category, path)
	if !ok {
		cat, rest, found := strings.Cut(path, ".")
		if !found || !r.cfg.Has(cat) {
			return "", false
		}
		if v, ok = r.lookup(cat, rest); !ok {
			return "", false
		}
		category = cat
	}

	if opacity != "" {
		if category != tokens.Colors {
			return "", false
		}
		pct, _ := strconv.ParseFloat(opacity, 64)
		return color.ColorMix(v, "transparent", pct), true
	}
	return v, true
}

func (r *Resolver) lookup(category, path string) (string, bool) {
	if category == "" {
		return "", false
	}
	v, ok := r.cfg.Lookup(category, path)
	if !ok {
		return "", false
	}
	if r.opts.CSSVariables {
		return "var(" + tokens.VarName(category, path) + ")", true
	}
	return v, true
}

// Property expands a shorthand to its canonical property. Custom properties
// are returned untouched; anything else is converted from camelCase.
func Property(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	switch name {
	case "m":
		return "margin"
	case "mt":
		return "margin-top"
	case "mr":
		return "margin-right"
	case "mb":
		return "margin-bottom"
	case "ml":
		return "margin-left"
	case "mx":
		return "margin-inline"
	case "my":
		return "margin-block"
	case "ms":
		return "margin-inline-start"
	case "me":
		return "margin-inline-end"
	case "p":
		return "padding"
	case "pt":
		return "padding-top"
	case "pr":
		return "padding-right"
	case "pb":
		return "padding-bottom"
	case "pl":
		return "padding-left"
	case "px":
		return "padding-inline"
	case "py":
		return "padding-block"
	case "ps":
		return "padding-inline-start"
	case "pe":
		return "padding-inline-end"
	case "w":
		return "width"
	case "h":
		return "height"
	case "minW":
		return "min-width"
	case "maxW":
		return "max-width"
	case "minH":
		return "min-height"
	case "maxH":
		return "max-height"
	case "bg", "bgColor":
		return "background-color"
	case "bgImage", "bgImg":
		return "background-image"
	case "bgSize":
		return "background-size"
	case "bgPos":
		return "background-position"
	case "rounded":
		return "border-radius"
	case "roundedTL":
		return "border-top-left-radius"
	case "roundedTR":
		return "border-top-right-radius"
	case "roundedBL":
		return "border-bottom-left-radius"
	case "roundedBR":
		return "border-bottom-right-radius"
	case "shadow":
		return "box-shadow"
	case "z":
		return "z-index"
	case "pos":
		return "position"
	case "d":
		return "display"
	case "fs":
		return "font-size"
	case "fw":
		return "font-weight"
	case "ff":
		return "font-family"
	case "lh":
		return "line-height"
	case "ls":
		return "letter-spacing"
	case "ta":
		return "text-align"
	case "op":
		return "opacity"
	}
	return csstext.Kebab(name)
}

// Abbreviate is the reverse of Property for the common shorthands. It is used
// to keep development class names short; other properties come back as-is.
func Abbreviate(property string) string {
	switch property {
	case "margin":
		return "m"
	case "margin-top":
		return "mt"
	case "margin-right":
		return "mr"
	case "margin-bottom":
		return "mb"
	case "margin-left":
		return "ml"
	case "margin-inline":
		return "mx"
	case "margin-block":
		return "my"
	case "padding":
		return "p"
	case "padding-top":
		return "pt"
	case "padding-right":
		return "pr"
	case "padding-bottom":
		return "pb"
	case "padding-left":
		return "pl"
	case "padding-inline":
		return "px"
	case "padding-block":
		return "py"
	case "width":
		return "w"
	case "height":
		return "h"
	case "background-color":
		return "bg"
	case "border-radius":
		return "rounded"
	case "box-shadow":
		return "shadow"
	case "z-index":
		return "z"
	case "display":
		return "d"
	case "font-size":
		return "fs"
	case "font-weight":
		return "fw"
	case "line-height":
		return "lh"
	}
	return property
}
