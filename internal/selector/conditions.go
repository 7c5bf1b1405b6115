package selector

import (
	"strings"

	"github.com/yacobolo/silk/internal/csstext"
)

// DefaultBreakpoints are used for @sm..@2xl when the token config has none.
var DefaultBreakpoints = map[string]string{
	"sm":  "640px",
	"md":  "768px",
	"lg":  "1024px",
	"xl":  "1280px",
	"2xl": "1536px",
}

// Pseudo maps a "_"-prefixed style key to a selector suffix:
// _hover -> :hover, _before -> ::before. Keys starting with ':', '[' or '&'
// after the underscore are used literally; unknown names become kebab-cased
// pseudo-classes.
func Pseudo(key string) string {
	name := strings.TrimPrefix(key, "_")
	switch name {
	case "hover", "focus", "active", "disabled", "visited", "checked",
		"invalid", "valid", "required", "empty", "target", "enabled":
		return ":" + name
	case "focusVisible":
		return ":focus-visible"
	case "focusWithin":
		return ":focus-within"
	case "first":
		return ":first-child"
	case "last":
		return ":last-child"
	case "only":
		return ":only-child"
	case "odd":
		return ":nth-child(odd)"
	case "even":
		return ":nth-child(even)"
	case "placeholder", "before", "after", "selection", "marker", "backdrop":
		return "::" + name
	case "firstLetter":
		return "::first-letter"
	case "firstLine":
		return "::first-line"
	}
	if name != "" {
		switch name[0] {
		case ':', '[':
			return name
		case '&':
			return name[1:]
		}
	}
	return ":" + csstext.Kebab(name)
}

// Condition maps an "@"-prefixed style key to an at-rule prelude. Breakpoint
// keys are looked up in breakpoints first, then DefaultBreakpoints. Literal
// @media, @container and @supports keys pass through. ok is false when the key
// is not recognised; the returned prelude is then the key itself.
func Condition(key string, breakpoints map[string]string) (prelude string, ok bool) {
	name := strings.TrimPrefix(key, "@")
	for _, rule := range []string{"media", "container", "supports", "layer"} {
		if name == rule || strings.HasPrefix(name, rule+" ") || strings.HasPrefix(name, rule+"(") {
			return "@" + name, true
		}
	}

	switch name {
	case "dark":
		return "@media (prefers-color-scheme: dark)", true
	case "light":
		return "@media (prefers-color-scheme: light)", true
	case "print":
		return "@media print", true
	case "motionReduce":
		return "@media (prefers-reduced-motion: reduce)", true
	case "motionSafe":
		return "@media (prefers-reduced-motion: no-preference)", true
	case "landscape":
		return "@media (orientation: landscape)", true
	case "portrait":
		return "@media (orientation: portrait)", true
	}

	if width, found := breakpoints[name]; found {
		return "@media (min-width: " + width + ")", true
	}
	if width, found := DefaultBreakpoints[name]; found {
		return "@media (min-width: " + width + ")", true
	}
	return "@" + name, false
}
