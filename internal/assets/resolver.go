package assets

import (
	"errors"
	"sort"

	"github.com/alnah/go-docxsign/internal/fileutil"
)

// AssetResolver combines a custom directory with the embedded templates.
// Custom templates shadow embedded ones of the same name.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom directory configured
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// An empty customBasePath uses embedded templates only.
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

// Resolve loads a template by name or, when ref looks like a file path,
// straight from that file.
func (r *AssetResolver) Resolve(ref string) (*Template, error) {
	if fileutil.IsFilePath(ref) {
		return LoadTemplateFile(ref)
	}
	return r.LoadTemplate(ref)
}

// LoadTemplate loads a named template, custom directory first.
// Only not-found errors fall back to the embedded templates.
func (r *AssetResolver) LoadTemplate(name string) (*Template, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	tmpl, err := r.custom.LoadTemplate(name)
	if err == nil {
		return tmpl, nil
	}
	if !errors.Is(err, ErrTemplateNotFound) {
		return nil, err
	}

	return r.embedded.LoadTemplate(name)
}

// Names lists custom and embedded template names without duplicates.
func (r *AssetResolver) Names() []string {
	seen := make(map[string]bool)
	var names []string
	loaders := []AssetLoader{r.embedded}
	if r.custom != nil {
		loaders = append(loaders, r.custom)
	}
	for _, l := range loaders {
		for _, n := range l.Names() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
