package docx

import "errors"

// Sentinel errors for package operations.
var (
	ErrNotZip          = errors.New("not a zip archive")
	ErrMissingPart     = errors.New("missing required part")
	ErrMalformedPart   = errors.New("malformed XML part")
	ErrNoSections      = errors.New("document has no sections")
	ErrUnknownRelation = errors.New("relationship not found")
)
