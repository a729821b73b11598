package main

// Notes:
// - exitCodeFor: we test every sentinel family, wrapped as the CLI wraps them.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	docxsign "github.com/alnah/go-docxsign"
	"github.com/alnah/go-docxsign/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},

		{"browser connect", docxsign.ErrBrowserConnect, ExitBrowser},
		{"page create", docxsign.ErrPageCreate, ExitBrowser},
		{"page load wrapped", fmt.Errorf("signing a.docx: %w", docxsign.ErrPageLoad), ExitBrowser},
		{"banner render", docxsign.ErrBannerRender, ExitBrowser},

		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", fmt.Errorf("x: %w", os.ErrPermission), ExitIO},
		{"read document", fmt.Errorf("%w: gone", ErrReadDocument), ExitIO},
		{"write document", ErrWriteDocument, ExitIO},
		{"write banner", ErrWriteBanner, ExitIO},

		{"config not found", &config.NotFoundError{Tried: []string{"a.yaml"}}, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config value", fmt.Errorf("%w: dpi", config.ErrInvalidValue), ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},
		{"usage", ErrUsage, ExitUsage},
		{"empty document", docxsign.ErrEmptyDocument, ExitUsage},
		{"invalid document", docxsign.ErrInvalidDocument, ExitUsage},
		{"invalid link", docxsign.ErrInvalidLink, ExitUsage},
		{"empty uuid", docxsign.ErrEmptyUUID, ExitUsage},
		{"invalid date", docxsign.ErrInvalidDate, ExitUsage},
		{"invalid profile", docxsign.ErrInvalidProfile, ExitUsage},
		{"unknown profile", docxsign.ErrUnknownProfile, ExitUsage},
		{"template parse", docxsign.ErrTemplateParse, ExitUsage},
		{"template not found", docxsign.ErrTemplateNotFound, ExitUsage},
		{"asset path", docxsign.ErrInvalidAssetPath, ExitUsage},
		{"scale", docxsign.ErrInvalidScale, ExitUsage},
		{"dpi", docxsign.ErrInvalidDPI, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
