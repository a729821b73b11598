package assets

// Template is a loaded banner template.
type Template struct {
	Name    string // name or file path it was loaded by
	Content string // HTML source
	Dir     string // directory for relative asset paths; empty when embedded
}

// DefaultTemplateName is the name of the built-in banner template.
const DefaultTemplateName = "default"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// Names lists the embedded template names.
func Names() []string {
	return defaultLoader.Names()
}
