package seed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/datatree/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a seed document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from the file extension. Unknown extensions are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode converts a generic document into a Seed.
// Unknown action and widget fields are kept (ActionRecord.Extra, WidgetRecord.Properties).
func Decode(raw map[string]any) (domain.Seed, error) {
	var s domain.Seed
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return domain.Seed{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Seed{}, fmt.Errorf("failed to decode seed: %w", err)
	}
	return s, nil
}

// Load reads a seed document from r.
// JSON numbers are kept as json.Number so large integers survive untouched.
func Load(r io.Reader, format Format) (domain.Seed, error) {
	var raw map[string]any
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return domain.Seed{}, fmt.Errorf("failed to parse yaml seed: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil && err != io.EOF {
			return domain.Seed{}, fmt.Errorf("failed to parse json seed: %w", err)
		}
	default:
		return domain.Seed{}, fmt.Errorf("unsupported seed format: %s", format)
	}
	return Decode(raw)
}

// LoadFile reads a seed from path, choosing the format by extension.
func LoadFile(path string) (domain.Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Seed{}, fmt.Errorf("failed to open seed: %w", err)
	}
	defer f.Close()
	return Load(f, FormatFromPath(path))
}
