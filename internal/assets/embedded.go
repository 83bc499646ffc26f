package assets

import (
	"embed"
	"fmt"
)

//go:embed parts/*
var parts embed.FS

// EmbeddedLoader loads skeleton parts compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadPart loads a part template from embedded assets by name.
func (e *EmbeddedLoader) LoadPart(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := parts.ReadFile("parts/" + name + ".xml")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPartNotFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
