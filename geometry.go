package docxsign

import (
	"math"

	"github.com/alnah/go-docxsign/internal/docx"
)

// Banner sizing defaults.
const (
	DefaultDPI     = 96
	DefaultPadding = 15
	mmPerInch      = 25.4
)

// BannerWidth returns the banner width in pixels for a usable page width:
// floor(usableMM * dpi / 25.4) + padding. A4 with defaults gives 616.
func BannerWidth(usableMM float64, dpi, padding int) int {
	if usableMM <= 0 || dpi <= 0 {
		return padding
	}
	// The epsilon keeps exact inch multiples from flooring one pixel short.
	return int(math.Floor(usableMM*float64(dpi)/mmPerInch+1e-9)) + padding
}

// applyProfile overwrites the page size and margins of every section.
func applyProfile(doc *docx.Document, p PageProfile) {
	g := p.geometry()
	for _, s := range doc.Sections() {
		s.SetGeometry(g)
	}
}
