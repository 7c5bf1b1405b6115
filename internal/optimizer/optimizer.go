// Package optimizer post-processes generated CSS for production: duplicate
// removal, tree shaking, critical CSS extraction and minification.
package optimizer

import (
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	"go.uber.org/zap"

	"github.com/yacobolo/silk/internal/csstext"
	"github.com/yacobolo/silk/internal/selector"
)

// Minifier is an external CSS minifier.
type Minifier interface {
	Minify(css string) (string, error)
}

// MinifierFunc adapts a function to Minifier.
type MinifierFunc func(css string) (string, error)

// Minify calls f.
func (f MinifierFunc) Minify(css string) (string, error) { return f(css) }

// NewTdewolffMinifier returns a Minifier backed by tdewolff/minify.
func NewTdewolffMinifier() Minifier {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	return MinifierFunc(func(css string) (string, error) {
		return m.String("text/css", css)
	})
}

// Options selects the passes Optimize runs.
type Options struct {
	DedupeRules      bool
	DedupeProperties bool
	Minify           bool
	// UsedClasses enables tree shaking when non-nil.
	UsedClasses []string
}

// DefaultOptions runs every pass except tree shaking.
func DefaultOptions() Options {
	return Options{DedupeRules: true, DedupeProperties: true, Minify: true}
}

// Optimizer runs the optimization passes.
type Optimizer struct {
	log      *zap.Logger
	external Minifier
}

// New creates an Optimizer. external may be nil, in which case the internal
// minifier is used.
func New(log *zap.Logger, external Minifier) *Optimizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Optimizer{log: log.Named("optimizer"), external: external}
}

// Optimize runs the selected passes in order: tree shaking, rule dedupe,
// property dedupe, minification.
func (o *Optimizer) Optimize(css string, opts Options) string {
	if opts.UsedClasses != nil {
		css = TreeShake(css, opts.UsedClasses)
	}
	if opts.DedupeRules {
		css = DedupeRules(css)
	}
	if opts.DedupeProperties {
		css = DedupeProperties(css)
	}
	if opts.Minify {
		css = o.Minify(css)
	}
	return css
}

// Minify minifies with the external minifier and falls back to
// MinifyInternal when it fails or panics. It never fails.
func (o *Optimizer) Minify(css string) string {
	if o.external == nil {
		return MinifyInternal(css)
	}
	out, err := o.runExternal(css)
	if err != nil {
		o.log.Warn("external minifier failed, using internal minifier", zap.Error(err))
		return MinifyInternal(css)
	}
	return out
}

func (o *Optimizer) runExternal(css string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("minifier panicked: %v", r)
		}
	}()
	return o.external.Minify(css)
}

// MinifyInternal drops comments and whitespace and the last semicolon of
// each block.
func MinifyInternal(css string) string {
	var b strings.Builder
	writeMinified(&b, csstext.Split(css))
	return b.String()
}

func writeMinified(b *strings.Builder, items []csstext.Item) {
	for i, it := range items {
		switch it.Kind {
		case csstext.ItemDecl:
			if i > 0 && items[i-1].Kind == csstext.ItemDecl {
				b.WriteByte(';')
			}
			b.WriteString(it.Property + ":" + compactValue(it.Value))
		case csstext.ItemStatement:
			b.WriteString(compactPrelude(it.Prelude) + ";")
		case csstext.ItemBlock:
			if len(it.Body) == 0 {
				continue
			}
			if i > 0 && items[i-1].Kind == csstext.ItemDecl {
				b.WriteByte(';')
			}
			b.WriteString(compactPrelude(it.Prelude) + "{")
			writeMinified(b, it.Body)
			b.WriteByte('}')
		}
	}
}

func compactPrelude(p string) string {
	if strings.ContainsAny(p, `"'`) {
		return p
	}
	r := strings.NewReplacer(", ", ",", " > ", ">", " + ", "+", " ~ ", "~")
	p = r.Replace(p)
	if strings.HasPrefix(p, "@") {
		p = strings.ReplaceAll(p, ": ", ":")
	}
	return p
}

func compactValue(v string) string {
	if strings.ContainsAny(v, `"'`) {
		return v
	}
	return strings.ReplaceAll(v, ", ", ",")
}

// DedupeRules removes repeated blocks with identical selector and body,
// keeping the first. At-rule blocks are deduplicated recursively.
func DedupeRules(css string) string {
	return csstext.Render(dedupeRules(csstext.Split(css)))
}

func dedupeRules(items []csstext.Item) []csstext.Item {
	seen := make(map[string]bool)
	out := make([]csstext.Item, 0, len(items))
	for _, it := range items {
		if it.Kind == csstext.ItemBlock && it.IsAtRule() {
			it.Body = dedupeRules(it.Body)
		}
		if it.Kind != csstext.ItemDecl {
			key := csstext.Render([]csstext.Item{it})
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, it)
	}
	return out
}

// DedupeProperties keeps only the last declaration of each property inside
// every block.
func DedupeProperties(css string) string {
	return csstext.Render(dedupeProperties(csstext.Split(css)))
}

func dedupeProperties(items []csstext.Item) []csstext.Item {
	last := make(map[string]int)
	for i, it := range items {
		if it.Kind == csstext.ItemDecl {
			last[it.Property] = i
		}
	}
	out := make([]csstext.Item, 0, len(items))
	for i, it := range items {
		switch it.Kind {
		case csstext.ItemDecl:
			if last[it.Property] != i {
				continue
			}
		case csstext.ItemBlock:
			it.Body = dedupeProperties(it.Body)
		}
		out = append(out, it)
	}
	return out
}

// TreeShake drops rules whose selectors only reference classes outside used.
// Rules without class selectors are kept.
func TreeShake(css string, used []string) string {
	keep := make(map[string]bool, len(used))
	for _, c := range used {
		keep[c] = true
	}
	return csstext.Render(shake(csstext.Split(css), keep))
}

func shake(items []csstext.Item, keep map[string]bool) []csstext.Item {
	out := make([]csstext.Item, 0, len(items))
	for _, it := range items {
		if it.Kind == csstext.ItemBlock {
			if it.IsAtRule() {
				it.Body = shake(it.Body, keep)
				if len(it.Body) == 0 {
					continue
				}
			} else if !referenced(it.Prelude, keep) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// referenced reports whether sel has no class selectors or any of them is kept.
func referenced(sel string, keep map[string]bool) bool {
	classes := selector.ExtractClassNames(sel)
	if len(classes) == 0 {
		return true
	}
	for _, c := range classes {
		if keep[c] {
			return true
		}
	}
	return false
}

// SplitCritical separates the rules needed by the critical classes (plus
// rules without class selectors) from the rest. Statements such as layer
// order declarations are copied to both halves.
func SplitCritical(css string, critical []string) (criticalCSS, rest string) {
	keep := make(map[string]bool, len(critical))
	for _, c := range critical {
		keep[c] = true
	}
	crit, other := split(csstext.Split(css), keep)
	return csstext.Render(crit), csstext.Render(other)
}

func split(items []csstext.Item, keep map[string]bool) (crit, other []csstext.Item) {
	for _, it := range items {
		switch {
		case it.Kind != csstext.ItemBlock:
			crit = append(crit, it)
			other = append(other, it)
		case it.IsAtRule():
			c, o := split(it.Body, keep)
			if len(c) > 0 {
				cb := it
				cb.Body = c
				crit = append(crit, cb)
			}
			if len(o) > 0 {
				ob := it
				ob.Body = o
				other = append(other, ob)
			}
		case referenced(it.Prelude, keep):
			crit = append(crit, it)
		default:
			other = append(other, it)
		}
	}
	return crit, other
}
