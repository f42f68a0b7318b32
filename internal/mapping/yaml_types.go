package mapping

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

const yamlVersion = "1"

// yamlFile is the YAML shape of a Document.
type yamlFile struct {
	Version   string        `yaml:"version,omitempty"`
	Linkings  []yamlLinking `yaml:"linkings,omitempty" validate:"dive"`
	Resources []string      `yaml:"resources,omitempty" validate:"dive,required"`
}

type yamlLinking struct {
	Target   string        `yaml:"target" validate:"required"`
	Bindings []yamlBinding `yaml:"bindings" validate:"dive"`
}

// yamlBinding carries either source+from+conversion or resource.
type yamlBinding struct {
	To         string `yaml:"to" validate:"required"`
	Source     string `yaml:"source,omitempty" validate:"required_without=Resource,excluded_with=Resource"`
	From       string `yaml:"from,omitempty" validate:"required_with=Source"`
	Conversion string `yaml:"conversion,omitempty"`
	Resource   string `yaml:"resource,omitempty"`
}

func marshalYAML(d *Document) ([]byte, error) {
	f := yamlFile{Version: yamlVersion, Resources: d.Resources}

	for _, l := range d.Linkings {
		yl := yamlLinking{Target: string(l.Category)}

		for _, b := range l.Bindings {
			if b.IsResource() {
				yl.Bindings = append(yl.Bindings, yamlBinding{To: b.Attribute, Resource: b.Property})
				continue
			}

			yl.Bindings = append(yl.Bindings, yamlBinding{
				To:         b.Attribute,
				Source:     string(b.Source),
				From:       b.Property,
				Conversion: b.Strategy.String(),
			})
		}

		f.Linkings = append(f.Linkings, yl)
	}

	return yaml.Marshal(&f)
}

func parseYAML(data []byte) (*Document, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	if f.Version != "" && f.Version != yamlVersion {
		return nil, fmt.Errorf("unsupported mapping version %q", f.Version)
	}

	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}

	d := &Document{Resources: f.Resources}

	for _, yl := range f.Linkings {
		c, err := model.ParseCategory(yl.Target)
		if err != nil {
			return nil, err
		}

		l := d.linking(c)

		for _, yb := range yl.Bindings {
			b, err := yb.binding()
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", c, yb.To, err)
			}

			l.Bindings = append(l.Bindings, b)
		}
	}

	return d, nil
}

func (yb yamlBinding) binding() (Binding, error) {
	if yb.Resource != "" {
		return Binding{
			Attribute: yb.To,
			Source:    model.SourceResource,
			Property:  yb.Resource,
			Strategy:  compat.NoConversion,
		}, nil
	}

	source, err := model.ParseSourceType(yb.Source)
	if err != nil {
		return Binding{}, err
	}

	if source == model.SourceResource {
		return Binding{}, errors.New("use the resource key for resource bindings")
	}

	strategy := compat.NoConversion
	if yb.Conversion != "" {
		if strategy, err = compat.ParseStrategy(yb.Conversion); err != nil {
			return Binding{}, err
		}
	}

	return Binding{Attribute: yb.To, Source: source, Property: yb.From, Strategy: strategy}, nil
}
