package main

import (
	"errors"
	"os"

	docxsign "github.com/alnah/go-docxsign"
	"github.com/alnah/go-docxsign/internal/config"
)

// Exit codes for the docxsign CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Document signed (even if it could not be opened)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docxsign.ErrBrowserConnect) ||
		errors.Is(err, docxsign.ErrPageCreate) ||
		errors.Is(err, docxsign.ErrPageLoad) ||
		errors.Is(err, docxsign.ErrBannerRender) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadDocument) ||
		errors.Is(err, ErrWriteDocument) ||
		errors.Is(err, ErrWriteBanner) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, docxsign.ErrEmptyDocument) ||
		errors.Is(err, docxsign.ErrInvalidDocument) ||
		errors.Is(err, docxsign.ErrInvalidLink) ||
		errors.Is(err, docxsign.ErrEmptyUUID) ||
		errors.Is(err, docxsign.ErrInvalidDate) ||
		errors.Is(err, docxsign.ErrInvalidProfile) ||
		errors.Is(err, docxsign.ErrUnknownProfile) ||
		errors.Is(err, docxsign.ErrTemplateParse) ||
		errors.Is(err, docxsign.ErrTemplateNotFound) ||
		errors.Is(err, docxsign.ErrInvalidAssetPath) ||
		errors.Is(err, docxsign.ErrInvalidScale) ||
		errors.Is(err, docxsign.ErrInvalidDPI) {
		return ExitUsage
	}

	return ExitGeneral
}
