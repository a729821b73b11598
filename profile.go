package docxsign

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-docxsign/internal/docx"
)

// PageProfile is a page layout in millimetres applied to every section.
type PageProfile struct {
	Name           string
	PageHeight     float64
	PageWidth      float64
	TopMargin      float64
	BottomMargin   float64
	LeftMargin     float64
	RightMargin    float64
	HeaderDistance float64
	FooterDistance float64
}

// Named profiles. Treat them as read-only; copy before changing a field.
var (
	A4     = PageProfile{Name: "a4", PageHeight: 297, PageWidth: 210, TopMargin: 25.4, BottomMargin: 25.4, LeftMargin: 25.4, RightMargin: 25.4, HeaderDistance: 12.7, FooterDistance: 12.7}
	Letter = PageProfile{Name: "letter", PageHeight: 279.4, PageWidth: 215.9, TopMargin: 25.4, BottomMargin: 25.4, LeftMargin: 25.4, RightMargin: 25.4, HeaderDistance: 12.7, FooterDistance: 12.7}
	Legal  = PageProfile{Name: "legal", PageHeight: 355.6, PageWidth: 215.9, TopMargin: 25.4, BottomMargin: 25.4, LeftMargin: 25.4, RightMargin: 25.4, HeaderDistance: 12.7, FooterDistance: 12.7}
)

var profiles = map[string]PageProfile{
	A4.Name:     A4,
	Letter.Name: Letter,
	Legal.Name:  Legal,
}

// ProfileNames lists the named profiles, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileByName returns a copy of a named profile (case-insensitive).
func ProfileByName(name string) (PageProfile, error) {
	p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return PageProfile{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProfile, name, strings.Join(ProfileNames(), ", "))
	}
	return p, nil
}

// UsableWidth returns the page width between the side margins, in millimetres.
func (p PageProfile) UsableWidth() float64 {
	return p.PageWidth - p.LeftMargin - p.RightMargin
}

// Validate checks the page has a size, margins are not negative and some
// room is left between the margins.
func (p PageProfile) Validate() error {
	if p.PageHeight <= 0 || p.PageWidth <= 0 {
		return fmt.Errorf("%w: page size %.1fx%.1fmm", ErrInvalidProfile, p.PageWidth, p.PageHeight)
	}
	for name, v := range map[string]float64{
		"top margin": p.TopMargin, "bottom margin": p.BottomMargin,
		"left margin": p.LeftMargin, "right margin": p.RightMargin,
		"header distance": p.HeaderDistance, "footer distance": p.FooterDistance,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%.1fmm)", ErrInvalidProfile, name, v)
		}
	}
	if p.UsableWidth() <= 0 {
		return fmt.Errorf("%w: side margins leave no usable width", ErrInvalidProfile)
	}
	if p.TopMargin+p.BottomMargin >= p.PageHeight {
		return fmt.Errorf("%w: vertical margins leave no usable height", ErrInvalidProfile)
	}
	return nil
}

// geometry converts the profile to section geometry.
func (p PageProfile) geometry() docx.Geometry {
	return docx.Geometry{
		PageHeight:     docx.Mm(p.PageHeight),
		PageWidth:      docx.Mm(p.PageWidth),
		TopMargin:      docx.Mm(p.TopMargin),
		BottomMargin:   docx.Mm(p.BottomMargin),
		LeftMargin:     docx.Mm(p.LeftMargin),
		RightMargin:    docx.Mm(p.RightMargin),
		HeaderDistance: docx.Mm(p.HeaderDistance),
		FooterDistance: docx.Mm(p.FooterDistance),
	}
}
