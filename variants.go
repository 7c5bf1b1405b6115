package silk

import "github.com/yacobolo/silk/internal/style"

// MergeStyles merges styles left to right. A later value for a key replaces
// the earlier one in place, so keys keep the position of their first
// appearance. Nested pseudo and condition values are merged key by key.
func MergeStyles(styles ...Style) Style {
	var out Style
	for _, st := range styles {
		for _, d := range st {
			i := out.Index(d.Key)
			if i < 0 {
				if d.Value.IsNested() {
					d.Value = Nest(MergeStyles(d.Value.Nested))
				}
				out = append(out, d)
				continue
			}

			prev := out[i].Value
			if prev.IsNested() && d.Value.IsNested() && style.KindOf(d.Key) != style.KeyProperty {
				out[i].Value = Nest(MergeStyles(prev.Nested, d.Value.Nested))
				continue
			}
			if d.Value.IsNested() {
				d.Value = Nest(MergeStyles(d.Value.Nested))
			}
			out[i].Value = d.Value
		}
	}
	return out
}

// CreateVariant returns a function picking one of the named styles. Unknown
// names give an empty style.
func CreateVariant(variants map[string]Style) func(name string) Style {
	return func(name string) Style {
		return variants[name].Clone()
	}
}

// RecipeConfig describes a multi-dimensional variant: a base style, named
// options per dimension, styles for combinations of options, and the options
// used when a dimension is not selected.
type RecipeConfig struct {
	Base             Style
	Variants         map[string]map[string]Style
	CompoundVariants []CompoundVariant
	DefaultVariants  map[string]string
}

// CompoundVariant applies Style when every dimension in When has the given
// option.
type CompoundVariant struct {
	When  map[string]string
	Style Style
}

// Dimensions lists the variant dimensions in natural order.
func (r RecipeConfig) Dimensions() []string {
	return sortedKeys(r.Variants)
}

// Resolve overlays selection on the default variants.
func (r RecipeConfig) Resolve(selection map[string]string) map[string]string {
	out := make(map[string]string, len(r.DefaultVariants)+len(selection))
	for k, v := range r.DefaultVariants {
		out[k] = v
	}
	for k, v := range selection {
		out[k] = v
	}
	return out
}

// CreateCompoundVariant returns a function building the style for a variant
// selection: the base, then each selected option by dimension, then every
// matching compound variant in declaration order.
func CreateCompoundVariant(r RecipeConfig) func(selection map[string]string) Style {
	dims := r.Dimensions()
	return func(selection map[string]string) Style {
		active := r.Resolve(selection)

		parts := []Style{r.Base}
		for _, dim := range dims {
			if opt, ok := active[dim]; ok {
				parts = append(parts, r.Variants[dim][opt])
			}
		}
		for _, cv := range r.CompoundVariants {
			if cv.matches(active) {
				parts = append(parts, cv.Style)
			}
		}
		return MergeStyles(parts...)
	}
}

func (cv CompoundVariant) matches(active map[string]string) bool {
	for dim, opt := range cv.When {
		if active[dim] != opt {
			return false
		}
	}
	return true
}
