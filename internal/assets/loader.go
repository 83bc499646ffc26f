package assets

// AssetLoader defines the contract for loading skeleton part templates.
type AssetLoader interface {
	// LoadPart loads a part template by name (without .xml extension).
	// Returns ErrPartNotFound if the part doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPart(name string) (string, error)
}
