//go:build tinygo

package configfile

import "clockface/hal"

// The firmware only ships the embedded JSON face.

func decodeYAML([]byte, *map[string]any) error { return hal.ErrNotImplemented }

func decodeTOML([]byte, *map[string]any) error { return hal.ErrNotImplemented }
