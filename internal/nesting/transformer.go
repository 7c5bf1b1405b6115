// Package nesting folds flat rules that share a base selector into one CSS
// nesting block, and expands such blocks back for targets without nesting
// support.
package nesting

import (
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/silk/internal/csstext"
)

// Config selects the output form.
type Config struct {
	// Enabled turns on nested output. When false rules are emitted expanded.
	Enabled bool
	// LegacyFallback forces expanded output even when Enabled is set.
	LegacyFallback bool
}

// DefaultConfig emits nested CSS.
func DefaultConfig() Config {
	return Config{Enabled: true}
}

// NestedRule is one "&<suffix> { ... }" entry of a group.
type NestedRule struct {
	Selector string // always starts with '&'
	Decls    []csstext.Decl
}

// Group collects the rules of one base selector.
type Group struct {
	Selector string
	Base     []csstext.Decl
	Nested   []NestedRule
}

// Transformer converts between flat and nested CSS.
type Transformer struct {
	cfg Config
	log *zap.Logger
}

// New creates a Transformer. A nil logger discards output.
func New(cfg Config, log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transformer{cfg: cfg, log: log.Named("nesting")}
}

// GroupRulesBySelector parses flat "selector { decls }" rules and groups them
// by base selector, in order of first appearance. Base declarations merge
// with later values winning; rules with a pseudo or attribute suffix become
// nested entries. Rules that do not parse are skipped.
func (t *Transformer) GroupRulesBySelector(rules []string) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, rule := range rules {
		sel, decls, ok := csstext.ParseRule(rule)
		if !ok {
			t.log.Debug("skipping malformed rule", zap.String("rule", rule))
			continue
		}

		base, suffix := SplitSelector(sel)
		i, exists := index[base]
		if !exists {
			i = len(groups)
			index[base] = i
			groups = append(groups, Group{Selector: base})
		}
		g := &groups[i]

		if suffix == "" {
			g.Base = mergeDecls(g.Base, decls)
			continue
		}
		key := suffix
		if !strings.HasPrefix(key, "&") {
			key = "&" + key
		}
		g.Nested = addNested(g.Nested, key, decls)
	}
	return groups
}

func addNested(nested []NestedRule, key string, decls []csstext.Decl) []NestedRule {
	for i := range nested {
		if nested[i].Selector == key {
			nested[i].Decls = mergeDecls(nested[i].Decls, decls)
			return nested
		}
	}
	return append(nested, NestedRule{Selector: key, Decls: mergeDecls(nil, decls)})
}

// mergeDecls applies src over dst; a property keeps its first position and
// takes its last value.
func mergeDecls(dst, src []csstext.Decl) []csstext.Decl {
	for _, d := range src {
		replaced := false
		for i := range dst {
			if dst[i].Property == d.Property {
				dst[i].Value = d.Value
				replaced = true
				break
			}
		}
		if !replaced {
			dst = append(dst, d)
		}
	}
	return dst
}

// SplitSelector separates a selector into its base and the pseudo or
// attribute suffix: ".a:hover" -> (".a", ":hover"). A leading :where(...)
// belongs to the base. Selector lists are never split.
func SplitSelector(sel string) (base, suffix string) {
	start := 0
	if strings.HasPrefix(sel, ":where(") {
		start = closing(sel, len(":where(")-1) + 1
		if start <= 0 {
			return sel, ""
		}
	}

	depth := 0
	for i := 0; i < len(sel); i++ {
		switch sel[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				return sel, ""
			}
		}
	}

	depth = 0
	for i := start; i < len(sel); i++ {
		switch sel[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ':', '[':
			if depth == 0 && i > 0 {
				return sel[:i], sel[i:]
			}
		}
	}
	return sel, ""
}

func closing(s string, open int) int {
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

// GenerateNestedCSS renders one group. Without nested entries the result is
// a flat rule; in legacy mode every entry is expanded to a full selector. A
// lone nested entry under an empty base is also expanded, since wrapping it
// only adds bytes. Atomic classes always land here.
func (t *Transformer) GenerateNestedCSS(base string, decls []csstext.Decl, nested []NestedRule) string {
	if !t.cfg.Enabled || t.cfg.LegacyFallback {
		return expand(base, decls, nested)
	}
	if len(nested) == 0 {
		return csstext.FormatRule(base, decls)
	}
	if len(decls) == 0 && len(nested) == 1 {
		return expand(base, decls, nested)
	}

	var b strings.Builder
	b.WriteString(base + " {\n")
	for _, d := range decls {
		b.WriteString("  " + d.Property + ": " + d.Value + ";\n")
	}
	for _, n := range nested {
		b.WriteString("  " + csstext.FormatRule(n.Selector, n.Decls) + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func expand(base string, decls []csstext.Decl, nested []NestedRule) string {
	var rules []string
	if len(decls) > 0 {
		rules = append(rules, csstext.FormatRule(base, decls))
	}
	for _, n := range nested {
		rules = append(rules, csstext.FormatRule(resolveNested(base, n.Selector), n.Decls))
	}
	return strings.Join(rules, "\n")
}

// resolveNested replaces the nesting selector with the parent.
func resolveNested(parent, sel string) string {
	if strings.Contains(sel, "&") {
		return strings.ReplaceAll(sel, "&", parent)
	}
	return parent + " " + sel
}

// ConvertToNestedCSS regroups a flat stylesheet. Statements come first, then
// the grouped rules, then at-rule blocks and already nested blocks unchanged.
func (t *Transformer) ConvertToNestedCSS(css string) string {
	var statements, flat, passthrough []string

	for _, it := range csstext.Split(css) {
		switch {
		case it.Kind == csstext.ItemStatement:
			statements = append(statements, it.Prelude+";")
		case it.Kind != csstext.ItemBlock:
			t.log.Debug("skipping stray declaration", zap.String("property", it.Property))
		case it.IsAtRule() || len(it.Blocks()) > 0:
			passthrough = append(passthrough, csstext.Render([]csstext.Item{it}))
		default:
			flat = append(flat, it.Prelude+" { "+it.Raw+" }")
		}
	}

	out := statements
	for _, g := range t.GroupRulesBySelector(flat) {
		out = append(out, t.GenerateNestedCSS(g.Selector, g.Base, g.Nested))
	}
	out = append(out, passthrough...)
	return strings.Join(out, "\n")
}

// ExpandNestedCSS flattens nested blocks into one rule per selector.
// At-rule blocks are returned whole.
func (t *Transformer) ExpandNestedCSS(css string) []string {
	var out []string
	for _, it := range csstext.Split(css) {
		if it.Kind != csstext.ItemBlock {
			continue
		}
		if it.IsAtRule() {
			out = append(out, csstext.Render([]csstext.Item{it}))
			continue
		}
		if decls := it.Decls(); len(decls) > 0 {
			out = append(out, csstext.FormatRule(it.Prelude, decls))
		}
		for _, child := range it.Blocks() {
			out = append(out, csstext.FormatRule(resolveNested(it.Prelude, child.Prelude), child.Decls()))
		}
	}
	return out
}
