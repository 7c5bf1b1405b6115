package silk

import (
	"fmt"
	"os"

	"github.com/yacobolo/silk/internal/layer"
	"github.com/yacobolo/silk/internal/optimizer"
	"github.com/yacobolo/silk/internal/style"
	"github.com/yacobolo/silk/internal/tokens"
)

// DesignConfig is the immutable design-token configuration.
type DesignConfig = tokens.Config

// Token is one flattened design token.
type Token = tokens.Token

// Style is an ordered list of declarations.
type Style = style.Style

// Decl is one declaration of a Style.
type Decl = style.Decl

// Value is a string, number or nested Style.
type Value = style.Value

// Layer is a cascade layer name.
type Layer = layer.Layer

// Cascade layers, lowest priority first.
const (
	LayerReset     = layer.Reset
	LayerBase      = layer.Base
	LayerTokens    = layer.Tokens
	LayerRecipes   = layer.Recipes
	LayerUtilities = layer.Utilities
	LayerOverrides = layer.Overrides
)

// Minifier is an external CSS minifier used in production.
type Minifier = optimizer.Minifier

// MinifierFunc adapts a function to Minifier.
type MinifierFunc = optimizer.MinifierFunc

// NewTdewolffMinifier returns a Minifier backed by tdewolff/minify.
func NewTdewolffMinifier() Minifier { return optimizer.NewTdewolffMinifier() }

// Str builds a string value.
func Str(s string) Value { return style.Str(s) }

// Num builds a numeric value.
func Num(n float64) Value { return style.Num(n) }

// Nest builds a nested value for a pseudo or condition key.
func Nest(s Style) Value { return style.Nest(s) }

// FromMap converts a generic map to a Style with keys in sorted order.
func FromMap(m map[string]any) (Style, error) { return style.FromMap(m) }

// DefineConfig copies raw into an immutable DesignConfig.
func DefineConfig(raw map[string]any) *DesignConfig {
	return tokens.Define(raw)
}

// ParseConfig reads a YAML token document.
func ParseConfig(data []byte) (*DesignConfig, error) {
	return tokens.Parse(data)
}

// LoadConfigFile reads a YAML token file.
func LoadConfigFile(path string) (*DesignConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tokens: %w", err)
	}
	cfg, err := tokens.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseLayer converts a layer name.
func ParseLayer(s string) (Layer, error) {
	return layer.Parse(s)
}
