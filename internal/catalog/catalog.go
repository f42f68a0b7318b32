// Package catalog supplies the metrics available for each source element
// type. A Collector produces the catalog from an analysis output file;
// FileCollector reads a YAML property catalog:
//
//	method:
//	  - {name: LLOC, type: int}
//	  - {name: McCC, type: float}
//	class:
//	  - {name: NOA, type: int}
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

// ErrDataNotFound means the analysis data file does not exist.
var ErrDataNotFound = errors.New("analysis data not found")

// Properties maps each element type to its metrics in file order.
type Properties map[model.SourceType][]model.Property

// Collector extracts the available metrics from an analysis data file.
type Collector interface {
	Properties(path string) (Properties, error)
}

// Lookup returns the named property of an element type.
func (p Properties) Lookup(source model.SourceType, name string) (model.Property, bool) {
	for _, prop := range p[source] {
		if prop.Name == name {
			return prop, true
		}
	}

	return model.Property{}, false
}

// Names returns the property names of an element type in order.
func (p Properties) Names(source model.SourceType) []string {
	names := make([]string, 0, len(p[source]))
	for _, prop := range p[source] {
		names = append(names, prop.Name)
	}

	return names
}

// Static is a Collector over a fixed catalog, whatever path is asked for.
type Static Properties

// Properties implements Collector.
func (s Static) Properties(string) (Properties, error) {
	return normalize(Properties(s))
}

// FileCollector reads YAML property catalogs from disk.
type FileCollector struct{}

var validate = validator.New()

type entries struct {
	Elements map[string][]model.Property `validate:"dive,keys,required,endkeys,dive"`
}

// Properties implements Collector. A missing file matches ErrDataNotFound.
func (FileCollector) Properties(path string) (Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}

		return nil, fmt.Errorf("failed to read property catalog %s: %w", path, err)
	}

	props, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return props, nil
}

// Parse parses a YAML property catalog.
func Parse(data []byte) (Properties, error) {
	var e entries
	if err := yaml.Unmarshal(data, &e.Elements); err != nil {
		return nil, fmt.Errorf("failed to parse property catalog YAML: %w", err)
	}

	if err := validate.Struct(&e); err != nil {
		return nil, fmt.Errorf("invalid property catalog: %w", err)
	}

	raw := make(Properties, len(e.Elements))

	for key, props := range e.Elements {
		source, err := model.ParseSourceType(key)
		if err != nil {
			return nil, err
		}

		if source == model.SourceResource {
			return nil, fmt.Errorf("element type %q is reserved for resources", key)
		}

		raw[source] = append(raw[source], props...)
	}

	return normalize(raw)
}

// normalize canonicalizes type names and drops repeated property names
// within an element type; the first occurrence wins.
func normalize(in Properties) (Properties, error) {
	out := make(Properties, len(in))

	for source, props := range in {
		seen := make(map[string]struct{}, len(props))
		clean := make([]model.Property, 0, len(props))

		for _, p := range props {
			if p.Name == "" {
				return nil, fmt.Errorf("%s: property without a name", source)
			}

			if _, dup := seen[p.Name]; dup {
				continue
			}

			seen[p.Name] = struct{}{}
			clean = append(clean, model.Property{Name: p.Name, Type: compat.ParsePropertyType(string(p.Type))})
		}

		out[source] = slices.Clip(clean)
	}

	return out, nil
}
