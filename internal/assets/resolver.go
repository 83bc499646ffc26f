package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders. With a custom loader
// configured, each part is looked up there first and falls back to the
// embedded copy when missing.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadPart loads a part template, trying the custom loader first if available.
func (r *AssetResolver) LoadPart(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadPart(name)
	}

	content, err := r.custom.LoadPart(name)
	if err == nil {
		return content, nil
	}

	// Validation and I/O errors are not masked by the embedded copy.
	if !errors.Is(err, ErrPartNotFound) {
		return "", err
	}

	return r.embedded.LoadPart(name)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
