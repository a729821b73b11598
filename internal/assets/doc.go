// Package assets provides the HTML templates rendered into signature banners.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates compiled into the binary
//	    ├── FilesystemLoader  - templates from a custom directory
//	    └── AssetResolver     - custom first, embedded fallback, or a direct file path
//
// A template is referenced either by name ("default", "compact") or by a
// path to an .html file. Named templates live at templates/{name}.html both
// in the binary and under a custom directory.
//
// Every loaded Template records the directory it came from so relative
// image paths inside it can be resolved after it is copied to a temp file.
// Embedded templates have no directory.
//
// # Security
//
// Template names are validated against path traversal. FilesystemLoader
// resolves symlinks and checks paths stay within its base directory.
package assets
