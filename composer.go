package docxsign

import (
	"fmt"

	"github.com/alnah/go-docxsign/internal/docx"
)

// bannerPictureName is the drawing name shown in Word's selection pane.
const bannerPictureName = "Validation banner"

// footerTarget is a footer part with the width its banner must take.
type footerTarget struct {
	footer *docx.Footer
	width  docx.Length
}

// composeFooters replaces the content of every footer shown by a section with
// the banner, hyperlinked to link. Footers shared between sections are
// stamped once. Media left unreferenced by the cleared footers, such as the
// banner of a previous signing, is dropped. Returns the number of footer
// parts stamped.
func composeFooters(doc *docx.Document, banner []byte, link string) (int, error) {
	pxW, pxH, err := pngSize(banner)
	if err != nil {
		return 0, err
	}

	targets, err := collectFooters(doc)
	if err != nil {
		return 0, err
	}

	for _, t := range targets {
		t.footer.Clear()
	}
	doc.RemoveUnusedMedia()

	media := doc.AddImagePart(banner)
	for _, t := range targets {
		stampFooter(t, media, link, pxW, pxH)
	}
	return len(targets), nil
}

// collectFooters resolves the distinct footers of all sections in document
// order: each section's default footer, inherited when absent, plus its first
// and even page footers when it references them.
func collectFooters(doc *docx.Document) ([]footerTarget, error) {
	seen := make(map[string]bool)
	var targets []footerTarget

	add := func(f *docx.Footer, s *docx.Section) {
		if f == nil || seen[f.PartName()] {
			return
		}
		seen[f.PartName()] = true
		targets = append(targets, footerTarget{footer: f, width: s.UsableWidth()})
	}

	for _, s := range doc.Sections() {
		f, err := doc.DefaultFooter(s)
		if err != nil {
			return nil, fmt.Errorf("%w: section %d: %v", ErrInvalidDocument, s.Index()+1, err)
		}
		add(f, s)

		for _, kind := range []docx.FooterKind{docx.FooterFirst, docx.FooterEven} {
			f, err := doc.Footer(s, kind)
			if err != nil {
				return nil, fmt.Errorf("%w: section %d %s footer: %v", ErrInvalidDocument, s.Index()+1, kind, err)
			}
			add(f, s)
		}
	}
	return targets, nil
}

// stampFooter appends the linked banner to the first paragraph of a cleared
// footer, at the full usable width.
func stampFooter(t footerTarget, media, link string, pxW, pxH int) {
	f := t.footer

	height := docx.Length(int64(t.width) * int64(pxH) / int64(pxW))
	f.AddPicture(f.Paragraphs()[0], docx.Picture{
		Name:       bannerPictureName,
		ImageRelID: f.RelateImage(media),
		LinkRelID:  f.AddHyperlink(link),
		Width:      t.width,
		Height:     height,
	})
}
