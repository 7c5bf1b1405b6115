// Package selector builds and inspects the selectors generated for atomic
// classes: :where() wrapping, specificity, simplification and the mapping of
// pseudo and condition keys to CSS.
package selector

import (
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/silk/internal/csstext"
)

// Options controls selector generation.
type Options struct {
	UseWhere bool
}

// DefaultOptions wraps class selectors in :where().
func DefaultOptions() Options {
	return Options{UseWhere: true}
}

// Generate returns the selector for className with an optional pseudo suffix.
// With UseWhere the class part is wrapped in :where() so utilities carry no
// specificity of their own.
func Generate(className string, opts Options, pseudo string) string {
	sel := "." + className
	if opts.UseWhere {
		sel = WrapWhere(sel)
	}
	return sel + pseudo
}

// WrapWhere wraps sel in :where(). Pseudo selectors, at-rules, nesting
// selectors and selectors that are already wrapped are returned unchanged.
func WrapWhere(sel string) string {
	sel = strings.TrimSpace(sel)
	if sel == "" || IsWrapped(sel) {
		return sel
	}
	switch sel[0] {
	case ':', '@', '&':
		return sel
	}
	return ":where(" + sel + ")"
}

// IsWrapped reports whether the whole selector is a single :where() group.
func IsWrapped(sel string) bool {
	if !strings.HasPrefix(sel, ":where(") || !strings.HasSuffix(sel, ")") {
		return false
	}
	return closingParen(sel, len(":where(")-1) == len(sel)-1
}

// closingParen returns the index of the ')' matching the '(' at open, or -1.
func closingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

var (
	chainedStar = regexp.MustCompile(`\*([.#\[])`)
	classAttr   = regexp.MustCompile(`\[class~=["']?(-?[A-Za-z_][\w-]*)["']?\]`)
)

// Optimize simplifies sel and optionally wraps it. Simplification runs first
// so the wrapper always sees the clean form.
func Optimize(sel string, opts Options) string {
	sel = strings.Join(strings.Fields(sel), " ")
	sel = chainedStar.ReplaceAllString(sel, "$1")
	sel = classAttr.ReplaceAllString(sel, ".$1")
	if opts.UseWhere {
		sel = WrapWhere(sel)
	}
	return sel
}

// ExtractClassNames returns the class names referenced by sel, in order of
// first appearance.
func ExtractClassNames(sel string) []string {
	toks := csstext.Tokenize(sel)
	seen := make(map[string]bool)
	var out []string
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].Data != "." || toks[i+1].Type != css.IdentToken {
			continue
		}
		name := toks[i+1].Data
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
