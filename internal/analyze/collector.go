package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"io/fs"
	"os"
	"strings"

	"metric-mapper/internal/catalog"
	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

// Collector is a catalog.Collector over Go metric record types. The path
// passed to Properties is a package directory or pattern.
type Collector struct {
	Analyzer Analyzer
}

var _ catalog.Collector = Collector{}

// Properties implements catalog.Collector. A missing directory matches
// catalog.ErrDataNotFound.
func (c Collector) Properties(path string) (catalog.Properties, error) {
	if !strings.Contains(path, "...") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrDataNotFound, path)
		}
	}

	records, err := c.Analyzer.LoadPackages(path)
	if err != nil {
		return nil, err
	}

	return catalogOf(records)
}

// catalogOf maps records named after an element type onto its metrics.
// Records for the same element type in several packages are merged.
func catalogOf(records []Record) (catalog.Properties, error) {
	static := catalog.Static{}

	for _, r := range records {
		source, err := model.ParseSourceType(r.ID.Name)
		if err != nil || source == model.SourceResource {
			continue
		}

		for _, f := range r.Fields {
			name := f.MetricName()
			if name == "-" {
				continue
			}

			kind, ok := propertyType(f.Type)
			if !ok {
				continue
			}

			static[source] = append(static[source], model.Property{Name: name, Type: kind})
		}
	}

	return static.Properties("")
}

// propertyType maps a Go field type onto a metric kind.
func propertyType(t types.Type) (compat.PropertyType, bool) {
	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return "", false
	}

	info := basic.Info()

	switch {
	case info&types.IsInteger != 0:
		return compat.PropInt, true
	case info&types.IsFloat != 0:
		return compat.PropFloat, true
	case info&types.IsString != 0:
		return compat.PropString, true
	default:
		return "", false
	}
}
