package silk

import (
	"io"
	"strings"

	"github.com/goccy/go-json"
)

// ManifestVersion is bumped when the manifest schema changes.
const ManifestVersion = "1.0"

// Manifest maps style and recipe names to the classes a build produced. It is
// written next to the CSS so application code can look classes up by name.
type Manifest struct {
	Version string                   `json:"version"`
	Styles  map[string]string        `json:"styles"`
	Recipes map[string]RecipeClasses `json:"recipes,omitempty"`
	Stats   ManifestStats            `json:"stats"`
}

// ManifestStats summarizes the build.
type ManifestStats struct {
	Files       int `json:"files"`
	Rules       int `json:"rules"`
	Bytes       int `json:"bytes"`
	ClassesUsed int `json:"classes_used,omitempty"`
}

// NewManifest builds the manifest of a build result. It carries no
// timestamp, so identical builds produce identical files.
func NewManifest(result *BuildResult) Manifest {
	m := Manifest{
		Version: ManifestVersion,
		Styles:  result.Classes.Styles,
		Stats: ManifestStats{
			Files:       result.FilesScanned,
			Rules:       result.Rules,
			Bytes:       result.Bytes,
			ClassesUsed: result.ClassesUsed,
		},
	}
	if len(result.Classes.Recipes) > 0 {
		m.Recipes = result.Classes.Recipes
	}
	if m.Styles == nil {
		m.Styles = map[string]string{}
	}
	return m
}

// MarshalManifest encodes the manifest of result as indented JSON.
func MarshalManifest(result *BuildResult) ([]byte, error) {
	data, err := json.MarshalIndent(NewManifest(result), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// ReadManifest decodes a manifest.
func ReadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Select assembles the classes of a recipe selection from the manifest:
// base, the chosen option of each dimension, then every matching compound.
func (rc RecipeClasses) Select(selection map[string]string) string {
	active := make(map[string]string, len(rc.DefaultVariants)+len(selection))
	for k, v := range rc.DefaultVariants {
		active[k] = v
	}
	for k, v := range selection {
		active[k] = v
	}

	parts := []string{rc.Base}
	for _, dim := range sortedKeys(rc.Variants) {
		if opt, ok := active[dim]; ok {
			parts = append(parts, rc.Variants[dim][opt])
		}
	}
	for _, c := range rc.Compounds {
		if (CompoundVariant{When: c.When}).matches(active) {
			parts = append(parts, c.Classes)
		}
	}
	return joinUnique(splitClasses(parts))
}

func splitClasses(parts []string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, strings.Fields(p)...)
	}
	return out
}
