package assets

// AssetLoader loads banner templates by name.
type AssetLoader interface {
	// LoadTemplate loads a template by name (without .html extension).
	// Returns ErrTemplateNotFound if it doesn't exist and
	// ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (*Template, error)

	// Names lists the available template names, sorted.
	Names() []string
}
