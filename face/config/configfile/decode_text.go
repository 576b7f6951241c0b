//go:build !tinygo

package configfile

import (
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte, raw *map[string]any) error {
	return yaml.Unmarshal(data, raw)
}

func decodeTOML(data []byte, raw *map[string]any) error {
	_, err := toml.Decode(string(data), raw)
	return err
}
