package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultContent returns the embedded defaults as a commented TOML document
func DefaultContent() string {
	return string(defaultConfig)
}

// bytesProvider feeds an in-memory document to koanf through a parser
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("bytesProvider needs a parser")
}
