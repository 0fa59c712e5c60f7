package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

//go:embed embedded/Info.plist
var starterTemplate []byte

// DefaultsContent returns the built-in defaults as TOML
func DefaultsContent() string {
	return string(defaultConfig)
}

// StarterTemplate returns the Info.plist template written by init
func StarterTemplate() string {
	return string(starterTemplate)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
