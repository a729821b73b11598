package docxsign

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrEmptyDocument   = errors.New("document cannot be empty")
	ErrInvalidDocument = errors.New("invalid .docx document")
	ErrInvalidLink     = errors.New("invalid validation link")
	ErrEmptyUUID       = errors.New("UUID cannot be empty")
	ErrInvalidDate     = errors.New("invalid banner date")

	// Page profile errors.
	ErrInvalidProfile = errors.New("invalid page profile")
	ErrUnknownProfile = errors.New("unknown page profile")

	// Banner rendering errors.
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrBannerRender     = errors.New("banner rendering failed")
	ErrTemplateParse    = errors.New("banner template parsing failed")
	ErrTemplateNotFound = errors.New("banner template not found")
	ErrInvalidAssetPath = errors.New("invalid template directory")

	// Signer option errors.
	ErrInvalidScale = errors.New("invalid banner scale")
	ErrInvalidDPI   = errors.New("invalid banner DPI")
)
