// Package layer buckets rules into CSS cascade layers and renders them in a
// fixed order.
package layer

import (
	"fmt"
	"slices"
	"strings"
)

// Layer is a cascade layer name.
type Layer string

// The fixed set of layers, lowest priority first.
const (
	Reset     Layer = "reset"
	Base      Layer = "base"
	Tokens    Layer = "tokens"
	Recipes   Layer = "recipes"
	Utilities Layer = "utilities"
	Overrides Layer = "overrides"
)

// All lists every layer in default order.
var All = []Layer{Reset, Base, Tokens, Recipes, Utilities, Overrides}

// Parse converts a layer name.
func Parse(s string) (Layer, error) {
	l := Layer(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown layer %q (want one of %s)", s, joinLayers(All, ", "))
	}
	return l, nil
}

// Valid reports whether l is one of the fixed layers.
func (l Layer) Valid() bool {
	for _, known := range All {
		if l == known {
			return true
		}
	}
	return false
}

// Config controls layer output.
type Config struct {
	Enabled bool
	Order   []Layer // defaults to All
	Default Layer   // defaults to Utilities
}

// DefaultConfig enables layers in the default order.
func DefaultConfig() Config {
	return Config{Enabled: true, Order: All, Default: Utilities}
}

// Manager stores rules per layer. Within a layer rules are deduplicated by
// text and keep insertion order. A Manager is not safe for concurrent use.
type Manager struct {
	cfg   Config
	rules map[Layer][]string
	seen  map[Layer]map[string]struct{}
	size  int
}

// NewManager creates a Manager. Missing config fields take their defaults.
func NewManager(cfg Config) *Manager {
	if len(cfg.Order) == 0 {
		cfg.Order = All
	}
	if cfg.Default == "" {
		cfg.Default = Utilities
	}
	return &Manager{
		cfg:   cfg,
		rules: make(map[Layer][]string),
		seen:  make(map[Layer]map[string]struct{}),
	}
}

// Config returns the effective configuration.
func (m *Manager) Config() Config { return m.cfg }

// Add stores a rule in layer l, or in the default layer when l is empty.
// It reports whether the rule was new.
func (m *Manager) Add(css string, l Layer) bool {
	css = strings.TrimSpace(css)
	if css == "" {
		return false
	}
	if l == "" {
		l = m.cfg.Default
	}
	set, ok := m.seen[l]
	if !ok {
		set = make(map[string]struct{})
		m.seen[l] = set
	}
	if _, dup := set[css]; dup {
		return false
	}
	set[css] = struct{}{}
	m.rules[l] = append(m.rules[l], css)
	m.size++
	return true
}

// AddBatch stores several rules in one layer.
func (m *Manager) AddBatch(rules []string, l Layer) {
	for _, r := range rules {
		m.Add(r, l)
	}
}

// Layer returns a copy of the rules stored in l.
func (m *Manager) Layer(l Layer) []string {
	return append([]string(nil), m.rules[l]...)
}

// Size returns the total number of stored rules.
func (m *Manager) Size() int { return m.size }

// Clear drops every rule.
func (m *Manager) Clear() {
	m.rules = make(map[Layer][]string)
	m.seen = make(map[Layer]map[string]struct{})
	m.size = 0
}

// GenerateCSS renders all layers.
func (m *Manager) GenerateCSS() string {
	return m.Render(nil)
}

// Render renders all layers, letting body turn each layer's rules into CSS
// text. A nil body joins rules with newlines. Layers whose body is empty are
// omitted.
func (m *Manager) Render(body func(l Layer, rules []string) string) string {
	if body == nil {
		body = func(_ Layer, rules []string) string { return strings.Join(rules, "\n") }
	}

	order := m.order()
	var blocks []string
	for _, l := range order {
		rules := m.rules[l]
		if len(rules) == 0 {
			continue
		}
		text := strings.TrimSpace(body(l, rules))
		if text == "" {
			continue
		}
		if m.cfg.Enabled {
			text = "@layer " + string(l) + " {\n" + indent(text) + "\n}"
		}
		blocks = append(blocks, text)
	}

	if len(blocks) == 0 {
		return ""
	}
	if !m.cfg.Enabled {
		return strings.Join(blocks, "\n")
	}
	return GenerateLayerDefinition(order) + "\n\n" + strings.Join(blocks, "\n\n")
}

// order is the configured order plus every non-empty layer it leaves out.
// A missing layer goes right after the nearest layer that precedes it in All,
// so it keeps its default priority, and the @layer statement always declares
// every block that is emitted.
func (m *Manager) order() []Layer {
	out := append([]Layer(nil), m.cfg.Order...)
	for i, l := range All {
		if contains(out, l) || len(m.rules[l]) == 0 {
			continue
		}
		pos := 0
		for j := i - 1; j >= 0; j-- {
			if k := slices.Index(out, All[j]); k >= 0 {
				pos = k + 1
				break
			}
		}
		out = slices.Insert(out, pos, l)
	}
	return out
}

// GenerateLayerDefinition renders the layer order statement:
// "@layer base, utilities;".
func GenerateLayerDefinition(order []Layer) string {
	if len(order) == 0 {
		return ""
	}
	return "@layer " + joinLayers(order, ", ") + ";"
}

// OrganizeByLayers renders a prepared layer-to-rules mapping.
func OrganizeByLayers(rules map[Layer][]string, cfg Config) string {
	m := NewManager(cfg)
	for _, l := range All {
		m.AddBatch(rules[l], l)
	}
	return m.GenerateCSS()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = "  " + line
		}
	}
	return strings.Join(lines, "\n")
}

func contains(ls []Layer, l Layer) bool {
	for _, x := range ls {
		if x == l {
			return true
		}
	}
	return false
}

func joinLayers(ls []Layer, sep string) string {
	names := make([]string, len(ls))
	for i, l := range ls {
		names[i] = string(l)
	}
	return strings.Join(names, sep)
}
