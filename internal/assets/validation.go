package assets

import (
	"fmt"
	"strings"
	"unicode"
)

// MaxAssetNameLength bounds template names.
const MaxAssetNameLength = 64

// ValidateAssetName checks that a template name is safe to use as a file name.
// Separators and dots are rejected (traversal, extension games), as are
// whitespace and control characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, MaxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.") || strings.IndexFunc(name, invalidNameRune) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

func invalidNameRune(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}
