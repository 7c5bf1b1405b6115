package silk

import (
	"iter"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/yacobolo/silk/internal/classname"
	"github.com/yacobolo/silk/internal/csstext"
	"github.com/yacobolo/silk/internal/layer"
	"github.com/yacobolo/silk/internal/nesting"
	"github.com/yacobolo/silk/internal/optimizer"
	"github.com/yacobolo/silk/internal/resolver"
	"github.com/yacobolo/silk/internal/selector"
	"github.com/yacobolo/silk/internal/style"
	"github.com/yacobolo/silk/internal/tokens"
)

// Options configures a StyleSystem.
type Options struct {
	// Production switches to hashed class names.
	Production bool
	// ShortClassNames uses counter names (z0, z1, ...) in production. They are
	// only stable within one StyleSystem.
	ShortClassNames bool
	// Minify minifies GetCSSRules output.
	Minify bool
	// OptimizeCSS always runs the optimizer in GetCSSRules.
	OptimizeCSS bool
	// ClassPrefix prefixes every class name.
	ClassPrefix string

	// DisableWhere emits plain class selectors instead of :where() wrapped ones.
	DisableWhere bool
	// DisableLayers emits rules without @layer blocks.
	DisableLayers bool
	// LayerOrder overrides the default layer order.
	LayerOrder []Layer

	// Nesting folds rules sharing a base selector into nested CSS.
	Nesting bool
	// LegacyFallback expands nested output for targets without nesting.
	LegacyFallback bool

	// TokenVariables emits every token as a custom property on :root.
	TokenVariables bool
	// CSSVariables resolves tokens to var(--token) references.
	CSSVariables bool

	Logger *zap.Logger
	// Minifier is used instead of the internal minifier when set.
	Minifier Minifier
}

// RulesOptions controls GetCSSRules.
type RulesOptions struct {
	// Optimize runs the optimizer's rule and property dedupe. Minification is
	// a separate switch: it follows Options.Minify or Options.Production, so
	// an optimized development build stays readable.
	Optimize bool
	// UsedClasses tree-shakes rules of other classes when non-nil.
	UsedClasses []string
}

// StyleSystem turns styles into atomic classes and collects their rules.
// It is safe for concurrent use.
type StyleSystem struct {
	cfg         *DesignConfig
	opts        Options
	log         *zap.Logger
	resolver    *resolver.Resolver
	names       *classname.Generator
	selOpts     selector.Options
	nester      *nesting.Transformer
	optimizer   *optimizer.Optimizer
	breakpoints map[string]string

	mu      sync.Mutex
	entries map[string]string // registry key -> rule text
	order   []string
	layers  *layer.Manager
}

// CreateStyleSystem creates a StyleSystem for cfg, which may be nil.
func CreateStyleSystem(cfg *DesignConfig, opts Options) *StyleSystem {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	mode := classname.Development
	if opts.Production {
		mode = classname.Hashed
		if opts.ShortClassNames {
			mode = classname.Short
		}
	}

	s := &StyleSystem{
		cfg:  cfg,
		opts: opts,
		log:  log.Named("engine"),
		resolver: resolver.New(cfg, resolver.Options{
			CSSVariables: opts.CSSVariables,
		}),
		names: classname.New(classname.Options{
			Mode:   mode,
			Prefix: opts.ClassPrefix,
			Logger: log,
		}),
		selOpts: selector.Options{UseWhere: !opts.DisableWhere},
		nester: nesting.New(nesting.Config{
			Enabled:        opts.Nesting,
			LegacyFallback: opts.LegacyFallback,
		}, log),
		optimizer:   optimizer.New(log, opts.Minifier),
		breakpoints: cfg.Category(tokens.Breakpoints),
		entries:     make(map[string]string),
		layers: layer.NewManager(layer.Config{
			Enabled: !opts.DisableLayers,
			Order:   opts.LayerOrder,
		}),
	}
	s.seed()
	return s
}

// seed adds rules that exist independently of CSS calls.
func (s *StyleSystem) seed() {
	if !s.opts.TokenVariables || s.cfg == nil {
		return
	}
	var decls []csstext.Decl
	for _, t := range s.cfg.Flatten() {
		decls = append(decls, csstext.Decl{Property: t.VarName(), Value: t.Value})
	}
	if len(decls) > 0 {
		s.layers.Add(csstext.FormatRule(":root", decls), layer.Tokens)
	}
}

// CSS registers the style and returns its class names separated by spaces:
// top-level declarations first, then nested ones, each in declaration order.
func (s *StyleSystem) CSS(st Style) string {
	return s.css(st, "")
}

// Layered is CSS with every rule placed in layer l.
func (s *StyleSystem) Layered(l Layer, st Style) string {
	return s.css(st, l)
}

func (s *StyleSystem) css(st Style, l Layer) string {
	st = MergeStyles(st)

	s.mu.Lock()
	defer s.mu.Unlock()

	var top, nested []string
	for _, d := range st {
		switch style.KindOf(d.Key) {
		case style.KeyProperty:
			if d.Value.IsNested() {
				s.log.Debug("ignoring nested value under a property key", zap.String("key", d.Key))
				continue
			}
			top = append(top, s.atomic(d.Key, d.Value, "", "", l))

		case style.KeyPseudo:
			nested = append(nested, s.nested(d, selector.Pseudo(d.Key), "", l)...)

		case style.KeyCondition:
			prelude, ok := selector.Condition(d.Key, s.breakpoints)
			if !ok {
				s.log.Debug("unknown condition, using it as an at-rule", zap.String("key", d.Key))
			}
			nested = append(nested, s.nested(d, "", prelude, l)...)
		}
	}

	return joinUnique(append(top, nested...))
}

func (s *StyleSystem) nested(d Decl, pseudo, prelude string, l Layer) []string {
	if !d.Value.IsNested() {
		s.log.Debug("ignoring scalar value under a nested key", zap.String("key", d.Key))
		return nil
	}

	var out []string
	for _, inner := range d.Value.Nested {
		if style.KindOf(inner.Key) != style.KeyProperty || inner.Value.IsNested() {
			s.log.Debug("nesting deeper than one level is not supported",
				zap.String("key", d.Key),
				zap.String("inner", inner.Key))
			continue
		}
		out = append(out, s.atomic(inner.Key, inner.Value, pseudo, prelude, l))
	}
	return out
}

// atomic registers one declaration. Callers hold s.mu.
func (s *StyleSystem) atomic(key string, v Value, pseudo, prelude string, l Layer) string {
	prop, val := s.resolver.Resolve(key, v)

	context := pseudo + prelude
	target := l
	switch {
	case l != "" && l != layer.Utilities:
		context = string(l) + "|" + context
	case strings.HasPrefix(prop, "--"):
		target = layer.Tokens
	default:
		target = layer.Utilities
	}

	class := s.names.Atomic(prop, val, context)
	if _, ok := s.entries[class]; ok {
		return class
	}

	text := csstext.FormatRule(
		selector.Generate(class, s.selOpts, pseudo),
		[]csstext.Decl{{Property: prop, Value: val}},
	)
	if prelude != "" {
		text = prelude + " { " + text + " }"
	}
	s.register(class, text, target)
	return class
}

func (s *StyleSystem) register(key, text string, l Layer) {
	s.entries[key] = text
	s.order = append(s.order, key)
	s.layers.Add(text, l)
}

// Global registers a style for a literal selector in the base layer. Plain
// declarations share one rule; pseudo and condition keys get their own.
func (s *StyleSystem) Global(sel string, st Style) {
	st = MergeStyles(st)

	s.mu.Lock()
	defer s.mu.Unlock()

	var base []csstext.Decl
	for _, d := range st {
		switch style.KindOf(d.Key) {
		case style.KeyProperty:
			if d.Value.IsNested() {
				continue
			}
			prop, val := s.resolver.Resolve(d.Key, d.Value)
			base = append(base, csstext.Decl{Property: prop, Value: val})

		case style.KeyPseudo, style.KeyCondition:
			if !d.Value.IsNested() {
				continue
			}
			var decls []csstext.Decl
			for _, inner := range d.Value.Nested {
				if style.KindOf(inner.Key) != style.KeyProperty || inner.Value.IsNested() {
					s.log.Debug("nesting deeper than one level is not supported",
						zap.String("selector", sel),
						zap.String("key", d.Key))
					continue
				}
				prop, val := s.resolver.Resolve(inner.Key, inner.Value)
				decls = append(decls, csstext.Decl{Property: prop, Value: val})
			}
			if len(decls) == 0 {
				continue
			}

			var text string
			if style.KindOf(d.Key) == style.KeyPseudo {
				text = csstext.FormatRule(sel+selector.Pseudo(d.Key), decls)
			} else {
				prelude, _ := selector.Condition(d.Key, s.breakpoints)
				text = prelude + " { " + csstext.FormatRule(sel, decls) + " }"
			}
			s.registerGlobal(text)
		}
	}

	if len(base) > 0 {
		s.registerGlobal(csstext.FormatRule(sel, base))
	}
}

func (s *StyleSystem) registerGlobal(text string) {
	if _, ok := s.entries[text]; ok {
		return
	}
	s.register(text, text, layer.Base)
}

// Recipe resolves a variant selection against r and registers the result in
// the recipes layer.
func (s *StyleSystem) Recipe(r RecipeConfig, selection map[string]string) string {
	return s.Layered(layer.Recipes, CreateCompoundVariant(r)(selection))
}

// GetCSSRules renders every registered rule.
func (s *StyleSystem) GetCSSRules(opts RulesOptions) string {
	s.mu.Lock()
	css := s.render()
	s.mu.Unlock()

	return s.finish(css, opts)
}

// Flush renders every registered rule and clears the registry in one step,
// so rules registered concurrently land either in this output or the next.
// Class names stay memoized.
func (s *StyleSystem) Flush(opts RulesOptions) string {
	s.mu.Lock()
	css := s.render()
	s.clear()
	s.mu.Unlock()

	return s.finish(css, opts)
}

// CriticalCSS splits the rendered CSS into the rules needed by classes and
// the rest.
func (s *StyleSystem) CriticalCSS(classes []string) (critical, rest string) {
	return optimizer.SplitCritical(s.GetCSSRules(RulesOptions{}), classes)
}

// Reset clears the registry and the class name generator.
func (s *StyleSystem) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clear()
	s.names.Reset()
}

func (s *StyleSystem) clear() {
	s.entries = make(map[string]string)
	s.order = nil
	s.layers.Clear()
	s.seed()
}

// Len returns the number of registered rules.
func (s *StyleSystem) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Rules iterates over (class name, rule text) pairs in registration order.
// Global rules are keyed by their own text. The iteration works on a
// snapshot.
func (s *StyleSystem) Rules() iter.Seq2[string, string] {
	s.mu.Lock()
	keys := append([]string(nil), s.order...)
	texts := make([]string, len(keys))
	for i, k := range keys {
		texts[i] = s.entries[k]
	}
	s.mu.Unlock()

	return func(yield func(string, string) bool) {
		for i, k := range keys {
			if !yield(k, texts[i]) {
				return
			}
		}
	}
}

// ClassNames returns the generator registry: class name to content key.
func (s *StyleSystem) ClassNames() map[string]string {
	return s.names.GetAll()
}

// render lays out the layers; within a layer plain rules come before
// conditional ones so breakpoints win over base values. Callers hold s.mu.
func (s *StyleSystem) render() string {
	return s.layers.Render(func(_ layer.Layer, rules []string) string {
		var plain, conditional []string
		for _, r := range rules {
			if strings.HasPrefix(r, "@") {
				conditional = append(conditional, r)
			} else {
				plain = append(plain, r)
			}
		}
		css := strings.Join(append(plain, conditional...), "\n")
		if s.opts.Nesting {
			css = s.nester.ConvertToNestedCSS(css)
		}
		return css
	})
}

func (s *StyleSystem) finish(css string, opts RulesOptions) string {
	if opts.Optimize || s.opts.OptimizeCSS || opts.UsedClasses != nil {
		return s.optimizer.Optimize(css, optimizer.Options{
			DedupeRules:      opts.Optimize || s.opts.OptimizeCSS,
			DedupeProperties: opts.Optimize || s.opts.OptimizeCSS,
			Minify:           s.opts.Minify || s.opts.Production,
			UsedClasses:      opts.UsedClasses,
		})
	}
	if s.opts.Minify {
		return s.optimizer.Minify(css)
	}
	return css
}

func joinUnique(classes []string) string {
	seen := make(map[string]bool, len(classes))
	out := classes[:0]
	for _, c := range classes {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}
