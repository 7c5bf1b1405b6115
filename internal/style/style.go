// Package style defines the style-object data model: an ordered list of
// declarations whose values are either scalars or one level of nested styles.
package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind tags a Value.
type ValueKind uint8

const (
	KindString ValueKind = iota
	KindNumber
	KindNested
)

// KeyKind classifies a declaration key by its reserved prefix.
type KeyKind uint8

const (
	// KeyProperty is a plain CSS property or shorthand.
	KeyProperty KeyKind = iota
	// KeyPseudo is a "_"-prefixed pseudo selector key (_hover).
	KeyPseudo
	// KeyCondition is an "@"-prefixed at-rule or breakpoint key (@md).
	KeyCondition
)

// KindOf decides how a key is treated. Custom properties ("--x") are plain.
func KindOf(key string) KeyKind {
	switch {
	case strings.HasPrefix(key, "_"):
		return KeyPseudo
	case strings.HasPrefix(key, "@"):
		return KeyCondition
	default:
		return KeyProperty
	}
}

// Value is a scalar string, a scalar number or a nested Style.
type Value struct {
	Kind   ValueKind
	Str    string
	Num    float64
	Nested Style
}

// Str builds a string value.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Num builds a numeric value.
func Num(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Nest builds a nested value.
func Nest(s Style) Value { return Value{Kind: KindNested, Nested: s} }

// IsNested reports whether v holds a nested style.
func (v Value) IsNested() bool { return v.Kind == KindNested }

// String renders scalars the way they would appear in CSS source.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindNumber:
		return FormatNumber(v.Num)
	default:
		return fmt.Sprintf("{%d declarations}", len(v.Nested))
	}
}

// Decl is one key/value pair of a style.
type Decl struct {
	Key   string
	Value Value
}

// Style is an ordered list of declarations. Order is significant: it is the
// order class names are returned in.
type Style []Decl

// Get returns the last value stored under key.
func (s Style) Get(key string) (Value, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Key == key {
			return s[i].Value, true
		}
	}
	return Value{}, false
}

// Index returns the position of key, or -1.
func (s Style) Index(key string) int {
	for i, d := range s {
		if d.Key == key {
			return i
		}
	}
	return -1
}

// Clone deep-copies the style.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	out := make(Style, len(s))
	for i, d := range s {
		out[i] = d
		if d.Value.Kind == KindNested {
			out[i].Value.Nested = d.Value.Nested.Clone()
		}
	}
	return out
}

// FormatNumber renders a float without exponent or trailing zeros.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FromMap converts a generic map. Go maps carry no order, so keys are sorted.
// Values may be strings, numbers or nested maps.
func FromMap(m map[string]any) (Style, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Style, 0, len(m))
	for _, k := range keys {
		v, err := fromAny(k, m[k])
		if err != nil {
			return nil, err
		}
		out = append(out, Decl{Key: k, Value: v})
	}
	return out, nil
}

func fromAny(key string, v any) (Value, error) {
	switch x := v.(type) {
	case string:
		return Str(x), nil
	case int:
		return Num(float64(x)), nil
	case int64:
		return Num(float64(x)), nil
	case float64:
		return Num(x), nil
	case float32:
		return Num(float64(x)), nil
	case map[string]any:
		nested, err := FromMap(x)
		if err != nil {
			return Value{}, err
		}
		return Nest(nested), nil
	case Style:
		return Nest(x), nil
	}
	return Value{}, fmt.Errorf("key %q: unsupported value of type %T", key, v)
}

// FromYAML converts a YAML mapping node, keeping document order.
func FromYAML(node *yaml.Node) (Style, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: style must be a mapping", node.Line)
	}

	out := make(Style, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		valNode := node.Content[i+1]

		switch valNode.Kind {
		case yaml.MappingNode:
			nested, err := FromYAML(valNode)
			if err != nil {
				return nil, err
			}
			out = append(out, Decl{Key: key, Value: Nest(nested)})
		case yaml.ScalarNode:
			out = append(out, Decl{Key: key, Value: scalarFromYAML(valNode)})
		default:
			return nil, fmt.Errorf("line %d: key %q: expected scalar or mapping", valNode.Line, key)
		}
	}
	return out, nil
}

func scalarFromYAML(n *yaml.Node) Value {
	if tag := n.ShortTag(); tag == "!!int" || tag == "!!float" {
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return Num(f)
		}
	}
	return Str(n.Value)
}
