package silk

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/silk/internal/style"
)

// StyleSheet is a parsed *.silk.yaml file:
//
//	globals:
//	  body: { m: 0, fontFamily: sans }
//	styles:
//	  card: { p: 4, rounded: md, _hover: { shadow: lg } }
//	recipes:
//	  button:
//	    base: { display: inline-flex }
//	    variants:
//	      size: { sm: { fontSize: 12 }, lg: { fontSize: 18 } }
//	    compoundVariants:
//	      - when: { size: lg }
//	        style: { fontWeight: 700 }
//	    defaultVariants: { size: sm }
//
// Entries keep document order.
type StyleSheet struct {
	Globals []NamedStyle
	Styles  []NamedStyle
	Recipes []NamedRecipe
}

// NamedStyle is a style under a name or, for globals, a selector.
type NamedStyle struct {
	Name  string
	Style Style
}

// NamedRecipe is a recipe under a name.
type NamedRecipe struct {
	Name   string
	Recipe RecipeConfig
}

// Len returns the number of entries.
func (s *StyleSheet) Len() int {
	return len(s.Globals) + len(s.Styles) + len(s.Recipes)
}

// ParseStyleSheet reads a style sheet. Every invalid entry is reported.
func ParseStyleSheet(data []byte) (*StyleSheet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse style sheet: %w", err)
	}

	sheet := &StyleSheet{}
	if len(doc.Content) == 0 {
		return sheet, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: style sheet must be a mapping", root.Line)
	}

	var errs error
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "globals":
			list, err := parseNamedStyles(val)
			sheet.Globals = list
			errs = multierr.Append(errs, err)
		case "styles":
			list, err := parseNamedStyles(val)
			sheet.Styles = list
			errs = multierr.Append(errs, err)
		case "recipes":
			list, err := parseRecipes(val)
			sheet.Recipes = list
			errs = multierr.Append(errs, err)
		default:
			errs = multierr.Append(errs, fmt.Errorf("line %d: unknown section %q", key.Line, key.Value))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return sheet, nil
}

func parseNamedStyles(node *yaml.Node) ([]NamedStyle, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of styles", node.Line)
	}

	var out []NamedStyle
	var errs error
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		st, err := style.FromYAML(node.Content[i+1])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		out = append(out, NamedStyle{Name: name, Style: st})
	}
	return out, errs
}

func parseRecipes(node *yaml.Node) ([]NamedRecipe, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of recipes", node.Line)
	}

	var out []NamedRecipe
	var errs error
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		r, err := parseRecipe(node.Content[i+1])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("recipe %s: %w", name, err))
			continue
		}
		out = append(out, NamedRecipe{Name: name, Recipe: r})
	}
	return out, errs
}

func parseRecipe(node *yaml.Node) (RecipeConfig, error) {
	var r RecipeConfig
	if node.Kind != yaml.MappingNode {
		return r, fmt.Errorf("line %d: expected a mapping", node.Line)
	}

	var errs error
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		var err error
		switch key.Value {
		case "base":
			r.Base, err = style.FromYAML(val)
		case "variants":
			r.Variants, err = parseVariants(val)
		case "compoundVariants":
			r.CompoundVariants, err = parseCompounds(val)
		case "defaultVariants":
			err = val.Decode(&r.DefaultVariants)
		default:
			err = fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
		errs = multierr.Append(errs, err)
	}
	return r, errs
}

func parseVariants(node *yaml.Node) (map[string]map[string]Style, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: variants must be a mapping", node.Line)
	}

	out := make(map[string]map[string]Style)
	for i := 0; i+1 < len(node.Content); i += 2 {
		dim, opts := node.Content[i].Value, node.Content[i+1]
		if opts.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: variant %q must map options to styles", opts.Line, dim)
		}
		out[dim] = make(map[string]Style)
		for j := 0; j+1 < len(opts.Content); j += 2 {
			st, err := style.FromYAML(opts.Content[j+1])
			if err != nil {
				return nil, fmt.Errorf("variant %s.%s: %w", dim, opts.Content[j].Value, err)
			}
			out[dim][opts.Content[j].Value] = st
		}
	}
	return out, nil
}

func parseCompounds(node *yaml.Node) ([]CompoundVariant, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: compoundVariants must be a list", node.Line)
	}

	var out []CompoundVariant
	for _, item := range node.Content {
		var raw struct {
			When  map[string]string `yaml:"when"`
			Style yaml.Node         `yaml:"style"`
		}
		if err := item.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", item.Line, err)
		}
		st, err := style.FromYAML(&raw.Style)
		if err != nil {
			return nil, fmt.Errorf("line %d: compound style: %w", item.Line, err)
		}
		out = append(out, CompoundVariant{When: raw.When, Style: st})
	}
	return out, nil
}

// SheetClasses is what a style sheet produced: class names per style and per
// recipe dimension.
type SheetClasses struct {
	Styles  map[string]string
	Recipes map[string]RecipeClasses
}

// RecipeClasses lists the classes of a recipe split by part, so a runtime can
// assemble a selection by concatenation: Base, then Variants[dim][option],
// then every matching compound.
type RecipeClasses struct {
	Base            string                       `json:"base"`
	Variants        map[string]map[string]string `json:"variants"`
	Compounds       []CompoundClasses            `json:"compoundVariants,omitempty"`
	DefaultVariants map[string]string            `json:"defaultVariants,omitempty"`
}

// CompoundClasses is the class list of one compound variant.
type CompoundClasses struct {
	When    map[string]string `json:"when"`
	Classes string            `json:"classes"`
}

// Apply registers every entry of the sheet.
func (s *StyleSystem) Apply(sheet *StyleSheet) SheetClasses {
	out := SheetClasses{
		Styles:  make(map[string]string, len(sheet.Styles)),
		Recipes: make(map[string]RecipeClasses, len(sheet.Recipes)),
	}

	for _, g := range sheet.Globals {
		s.Global(g.Name, g.Style)
	}
	for _, st := range sheet.Styles {
		out.Styles[st.Name] = s.CSS(st.Style)
	}
	for _, r := range sheet.Recipes {
		out.Recipes[r.Name] = s.recipeClasses(r.Recipe)
	}
	return out
}

func (s *StyleSystem) recipeClasses(r RecipeConfig) RecipeClasses {
	rc := RecipeClasses{
		Base:            s.Layered(LayerRecipes, r.Base),
		Variants:        make(map[string]map[string]string, len(r.Variants)),
		DefaultVariants: r.DefaultVariants,
	}
	for _, dim := range r.Dimensions() {
		rc.Variants[dim] = make(map[string]string, len(r.Variants[dim]))
		for _, opt := range sortedKeys(r.Variants[dim]) {
			rc.Variants[dim][opt] = s.Layered(LayerRecipes, r.Variants[dim][opt])
		}
	}
	for _, cv := range r.CompoundVariants {
		rc.Compounds = append(rc.Compounds, CompoundClasses{
			When:    cv.When,
			Classes: s.Layered(LayerRecipes, cv.Style),
		})
	}
	return rc
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Sort(natural.StringSlice(keys))
	return keys
}
