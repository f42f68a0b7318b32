package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"metric-mapper/internal/compat"
	"metric-mapper/internal/model"
)

// file is the on-disk shape of a settings document.
type file struct {
	Buildables map[string][]string `yaml:"buildables" validate:"required,dive,keys,required,endkeys,dive,required"`
	Types      map[string]string   `yaml:"types,omitempty" validate:"dive,keys,required,endkeys,required"`
}

var validate = validator.New()

// Load reads and checks the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Path: path, Kind: ErrConfigNotFound, Err: err}
		}

		return nil, badFormat(path, err)
	}

	s, err := parse(data)
	if err != nil {
		return nil, badFormat(path, err)
	}

	return s, nil
}

// Parse parses a settings document. Errors match ErrBadConfigFormat.
func Parse(data []byte) (*Settings, error) {
	s, err := parse(data)
	if err != nil {
		return nil, badFormat("<input>", err)
	}

	return s, nil
}

// LoadOrDefault is the fallback policy for settings: when the file at path
// is missing or malformed it returns Default together with the
// *ConfigError, so the caller can tell the user and keep going. The
// returned *Settings is never nil.
func LoadOrDefault(path string) (*Settings, error) {
	s, err := Load(path)
	if err != nil {
		return Default(), err
	}

	return s, nil
}

func parse(data []byte) (*Settings, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}

	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	types := BuiltinTypes()
	for name, t := range f.Types {
		types[name] = compat.ParseAttributeType(t)
	}

	s := &Settings{
		displayed: make(map[model.Category][]string, len(model.Categories())),
		types:     types,
	}

	for _, c := range model.Categories() {
		s.displayed[c] = []string{}
	}

	seen := make(map[model.Category]map[string]struct{}, len(f.Buildables))

	for key, attrs := range f.Buildables {
		c, err := model.ParseCategory(key)
		if err != nil {
			return nil, err
		}

		if seen[c] == nil {
			seen[c] = make(map[string]struct{}, len(attrs))
		}

		for _, attr := range attrs {
			if _, dup := seen[c][attr]; dup {
				return nil, fmt.Errorf("%s: attribute %q listed twice", c, attr)
			}

			seen[c][attr] = struct{}{}

			if _, ok := types[attr]; !ok {
				return nil, fmt.Errorf("%s: attribute %q has no declared type", c, attr)
			}
		}

		s.displayed[c] = append(s.displayed[c], attrs...)
	}

	return s, nil
}
