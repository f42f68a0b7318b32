package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Format is an on-disk mapping file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatXML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// FormatForPath picks the format from the file extension; anything that is
// not .xml is YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		return FormatXML
	}

	return FormatYAML
}

var validate = validator.New()

// Marshal serializes d in the given format.
func Marshal(d *Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return marshalYAML(d)
	case FormatXML:
		return marshalXML(d)
	default:
		return nil, fmt.Errorf("unsupported mapping format %s", format)
	}
}

// Parse parses mapping file data in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	case FormatXML:
		return parseXML(data)
	default:
		return nil, fmt.Errorf("unsupported mapping format %s", format)
	}
}

// Load reads the mapping file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	d, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load mapping file %s: %w", path, err)
	}

	return d, nil
}

// Save writes d to path in the format implied by its extension. The file
// is replaced atomically; on error the previous content (if any) is left
// untouched and the error is an *IOError unless d itself could not be
// serialized.
func Save(d *Document, path string) error {
	data, err := Marshal(d, FormatForPath(path))
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	tmpName := tmp.Name()
	committed := false

	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &IOError{Op: "sync", Path: path, Err: err}
	}

	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Path: path, Err: err}
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &IOError{Op: "chmod", Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	committed = true

	return nil
}
