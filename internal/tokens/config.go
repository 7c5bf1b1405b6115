// Package tokens holds the design-token configuration shared by every style system.
package tokens

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/silk/internal/csstext"
)

// Well-known token categories.
const (
	Colors         = "colors"
	Spacing        = "spacing"
	Sizes          = "sizes"
	FontSizes      = "fontSizes"
	FontWeights    = "fontWeights"
	LineHeights    = "lineHeights"
	LetterSpacings = "letterSpacings"
	Fonts          = "fonts"
	Radii          = "radii"
	Shadows        = "shadows"
	ZIndices       = "zIndices"
	Breakpoints    = "breakpoints"
)

// Config is an immutable tree of token categories. Leaves are CSS values.
type Config struct {
	categories map[string]map[string]any
}

// Token is a single flattened leaf of the config.
type Token struct {
	Category string // "colors"
	Path     string // "brand.500"
	Value    string // "#3b82f6"
}

// VarName returns the CSS custom property name for the token: --colors-brand-500
func (t Token) VarName() string {
	return VarName(t.Category, t.Path)
}

// VarName builds the custom property name for a category and dotted path.
func VarName(category, path string) string {
	return "--" + csstext.Kebab(category) + "-" + strings.ReplaceAll(path, ".", "-")
}

// Define copies raw into an immutable Config. Keys are stringified and scalar
// leaves are rendered as strings; anything else is dropped.
func Define(raw map[string]any) *Config {
	cfg, _ := define(raw)
	return cfg
}

// Parse reads a YAML token document and validates it.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse tokens: %w", err)
	}
	cfg, err := define(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid tokens: %w", err)
	}
	return cfg, nil
}

func define(raw map[string]any) (*Config, error) {
	cfg := &Config{categories: make(map[string]map[string]any, len(raw))}
	var errs error

	for name, v := range raw {
		m, ok := asMap(v)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("category %q: expected a mapping, got %T", name, v))
			continue
		}
		tree, err := normalize(name, m)
		errs = multierr.Append(errs, err)
		cfg.categories[name] = tree
	}

	return cfg, errs
}

func normalize(path string, m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	var errs error

	for key, v := range m {
		if sub, ok := asMap(v); ok {
			tree, err := normalize(path+"."+key, sub)
			errs = multierr.Append(errs, err)
			out[key] = tree
			continue
		}
		s, ok := scalar(v)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("token %s.%s: unsupported value of type %T", path, key, v))
			continue
		}
		out[key] = s
	}

	return out, errs
}

// asMap accepts both map flavours produced by YAML decoders and stringifies keys.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}
	return nil, false
}

func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

// Lookup resolves a dotted path inside a category. Only leaves resolve.
func (c *Config) Lookup(category, path string) (string, bool) {
	if c == nil || path == "" {
		return "", false
	}
	node, ok := c.categories[category]
	if !ok {
		return "", false
	}

	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, exists := node[part]
		if !exists {
			return "", false
		}
		if i == len(parts)-1 {
			s, isLeaf := v.(string)
			return s, isLeaf
		}
		sub, isMap := v.(map[string]any)
		if !isMap {
			return "", false
		}
		node = sub
	}
	return "", false
}

// Has reports whether the category exists.
func (c *Config) Has(category string) bool {
	if c == nil {
		return false
	}
	_, ok := c.categories[category]
	return ok
}

// Categories returns category names in natural order.
func (c *Config) Categories() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.categories))
	for name := range c.categories {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Category returns the flattened leaves of one category keyed by path.
func (c *Config) Category(category string) map[string]string {
	out := make(map[string]string)
	if c == nil {
		return out
	}
	if node, ok := c.categories[category]; ok {
		flattenInto(out, "", node)
	}
	return out
}

// Flatten lists every token, ordered by category and then path (natural order,
// so 50 < 100 < 950).
func (c *Config) Flatten() []Token {
	var out []Token
	for _, cat := range c.Categories() {
		leaves := c.Category(cat)
		paths := make([]string, 0, len(leaves))
		for p := range leaves {
			paths = append(paths, p)
		}
		sort.Sort(natural.StringSlice(paths))
		for _, p := range paths {
			out = append(out, Token{Category: cat, Path: p, Value: leaves[p]})
		}
	}
	return out
}

func flattenInto(out map[string]string, prefix string, node map[string]any) {
	for key, v := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch x := v.(type) {
		case string:
			out[path] = x
		case map[string]any:
			flattenInto(out, path, x)
		}
	}
}
