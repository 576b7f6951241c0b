// Package configfile reads clock face documents from JSON, YAML or TOML and
// hands the decoded tree to config.Load.
package configfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clockface/face/component"
	"clockface/face/config"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

//go:embed default.json
var defaultJSON []byte

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("configfile: unsupported extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
}

// Decode parses data into the raw nested map accepted by config.Load.
func Decode(data []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("configfile: decode json: %w", err)
		}
	case FormatYAML:
		if err := decodeYAML(data, &raw); err != nil {
			return nil, fmt.Errorf("configfile: decode yaml: %w", err)
		}
	case FormatTOML:
		if err := decodeTOML(data, &raw); err != nil {
			return nil, fmt.Errorf("configfile: decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("configfile: unknown format %q", format)
	}
	return raw, nil
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format) (*component.ClockConfig, error) {
	raw, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return config.Load(raw)
}

// ReadFile loads and validates the face at path.
func ReadFile(path string) (*component.ClockConfig, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("configfile: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultDocument returns a copy of the embedded default face as JSON.
func DefaultDocument() []byte {
	return bytes.Clone(defaultJSON)
}

// Default returns the embedded default face.
func Default() (*component.ClockConfig, error) {
	return Parse(defaultJSON, FormatJSON)
}
