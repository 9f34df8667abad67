package network

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed data/cdmx.yaml
var cdmxYAML []byte

// Loader supplies the static network tables
type Loader interface {
	LoadNetwork() (*Network, error)
}

// Default returns a fresh copy of the embedded CDMX network
func Default() (*Network, error) {
	return Parse(cdmxYAML)
}

// EmbeddedLoader serves the network compiled into the binary
type EmbeddedLoader struct{}

// LoadNetwork implements Loader
func (EmbeddedLoader) LoadNetwork() (*Network, error) {
	return Default()
}

// FileLoader reads a YAML network description from disk
type FileLoader struct {
	Path string
}

// LoadNetwork implements Loader
func (l FileLoader) LoadNetwork() (*Network, error) {
	return LoadFile(l.Path)
}

// LoadFile reads and validates a YAML network description
func LoadFile(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read network file %s: %w", path, err)
	}
	return Parse(data)
}
