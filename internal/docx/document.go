package docx

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Document is a word processing package opened for editing.
type Document struct {
	pkg      *Package
	mainPart string
	tree     *etree.Document
	rels     *Relationships
	types    *contentTypes
	sections []*Section
	footers  map[string]*Footer

	nextDrawingID int
}

// Open reads a .docx file from disk.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-provided document path
	if err != nil {
		return nil, err
	}
	return Read(data)
}

// Read parses a .docx package from bytes.
func Read(data []byte) (*Document, error) {
	pkg, err := ReadPackage(data)
	if err != nil {
		return nil, err
	}

	d := &Document{
		pkg:     pkg,
		footers: make(map[string]*Footer),
	}

	if d.mainPart, err = findMainPart(pkg); err != nil {
		return nil, err
	}
	if d.tree, err = pkg.XML(d.mainPart); err != nil {
		return nil, err
	}
	if d.rels, err = relationshipsFor(pkg, d.mainPart); err != nil {
		return nil, err
	}
	if d.types, err = loadContentTypes(pkg); err != nil {
		return nil, err
	}

	body := d.tree.Root().SelectElement("w:body")
	if body == nil {
		return nil, fmt.Errorf("%w: %s has no w:body", ErrMalformedPart, d.mainPart)
	}
	d.sections = collectSections(body)

	// A body without a trailing w:sectPr still has one implicit section.
	if len(d.sections) == 0 || d.sections[len(d.sections)-1].el.Parent() != body {
		el := body.CreateElement("w:sectPr")
		d.sections = append(d.sections, &Section{index: len(d.sections), el: el})
	}

	return d, nil
}

// findMainPart locates the main document part through the package relationships.
func findMainPart(pkg *Package) (string, error) {
	if pkg.Has(packageRelsPart) {
		rels, err := relationshipsFor(pkg, "")
		if err != nil {
			return "", err
		}
		for _, rel := range rels.ByType(RelOfficeDocument) {
			part := strings.TrimPrefix(rel.Target, "/")
			if pkg.Has(part) {
				return part, nil
			}
		}
	}
	if pkg.Has(defaultMainPart) {
		return defaultMainPart, nil
	}
	return "", fmt.Errorf("%w: %s", ErrMissingPart, defaultMainPart)
}

// collectSections returns the section properties of the body in document order:
// one per paragraph carrying w:pPr/w:sectPr, then the body's trailing w:sectPr.
// Paragraphs wrapped in block-level content controls or custom XML count too.
func collectSections(body *etree.Element) []*Section {
	var sections []*Section
	var walk func(parent *etree.Element)
	walk = func(parent *etree.Element) {
		for _, el := range parent.ChildElements() {
			if el.Space != "w" {
				continue
			}
			switch el.Tag {
			case "p":
				if pPr := el.SelectElement("w:pPr"); pPr != nil {
					if sectPr := pPr.SelectElement("w:sectPr"); sectPr != nil {
						sections = append(sections, &Section{index: len(sections), el: sectPr})
					}
				}
			case "sdt":
				if content := el.SelectElement("w:sdtContent"); content != nil {
					walk(content)
				}
			case "customXml":
				walk(el)
			}
		}
	}
	walk(body)

	if sectPr := body.SelectElement("w:sectPr"); sectPr != nil {
		sections = append(sections, &Section{index: len(sections), el: sectPr})
	}
	return sections
}

// Package returns the underlying OPC package.
func (d *Document) Package() *Package { return d.pkg }

// MainPart returns the name of the main document part.
func (d *Document) MainPart() string { return d.mainPart }

// Sections returns the document's sections in order.
func (d *Document) Sections() []*Section { return d.sections }

// Footer returns the footer part referenced by a section for the given kind,
// or nil when the section has no such reference.
func (d *Document) Footer(s *Section, kind FooterKind) (*Footer, error) {
	relID, ok := s.FooterRef(kind)
	if !ok {
		return nil, nil
	}
	part, err := d.rels.Part(relID)
	if err != nil {
		return nil, err
	}
	return d.loadFooter(part)
}

// DefaultFooter returns the footer displayed on the section's regular pages.
// A section without its own default footer shows the previous section's; when
// no earlier section defines one, a new empty footer is created and referenced
// from the first section.
func (d *Document) DefaultFooter(s *Section) (*Footer, error) {
	for i := s.index; i >= 0; i-- {
		f, err := d.Footer(d.sections[i], FooterDefault)
		if err != nil {
			return nil, err
		}
		if f != nil {
			return f, nil
		}
	}
	return d.addFooter(d.sections[0], FooterDefault)
}

// loadFooter parses a footer part, caching it by part name.
func (d *Document) loadFooter(part string) (*Footer, error) {
	if f, ok := d.footers[part]; ok {
		return f, nil
	}
	tree, err := d.pkg.XML(part)
	if err != nil {
		return nil, err
	}
	rels, err := relationshipsFor(d.pkg, part)
	if err != nil {
		return nil, err
	}
	f := &Footer{part: part, tree: tree, rels: rels, doc: d}
	d.footers[part] = f
	return f, nil
}

// addFooter creates an empty footer part and references it from a section.
func (d *Document) addFooter(s *Section, kind FooterKind) (*Footer, error) {
	part := d.pkg.UnusedName("word/footer", ".xml")

	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := tree.CreateElement("w:ftr")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:wp", nsWP)
	root.CreateElement("w:p")
	d.pkg.SetXML(part, tree)

	d.types.setOverride(part, ctFooter)
	relID := d.rels.AddInternal(RelFooter, part)
	ensureNamespace(d.tree.Root(), "r", nsR)
	s.setFooterRef(kind, relID)

	return d.loadFooter(part)
}

// AddImagePart stores PNG bytes as a new word/media part and returns its name.
func (d *Document) AddImagePart(png []byte) string {
	part := d.pkg.UnusedName("word/media/banner", ".png")
	d.pkg.SetPart(part, png)
	d.types.ensureDefault("png", ctPNG)
	return part
}

// RemoveUnusedMedia deletes the word/media parts no relationship in the
// package points to and returns their names. Nothing is deleted when a
// relationships part cannot be parsed.
func (d *Document) RemoveUnusedMedia() []string {
	used := make(map[string]bool)
	for _, name := range d.pkg.PartNames() {
		if !strings.HasSuffix(name, ".rels") {
			continue
		}
		tree, err := d.pkg.XML(name)
		if err != nil {
			return nil
		}
		rels := &Relationships{source: sourceForRels(name), tree: tree}
		for _, rel := range rels.All() {
			if !rel.External {
				used[resolveTarget(rels.source, rel.Target)] = true
			}
		}
	}

	var removed []string
	for _, name := range d.pkg.PartNames() {
		if strings.HasPrefix(name, "word/media/") && !used[name] {
			d.pkg.DeletePart(name)
			removed = append(removed, name)
		}
	}
	return removed
}

// nextDrawingObjectID returns a wp:docPr id not used anywhere in the
// document's stories.
func (d *Document) nextDrawingObjectID() int {
	if d.nextDrawingID == 0 {
		highest := 0
		for _, name := range d.pkg.PartNames() {
			if !d.isStory(name) {
				continue
			}
			tree, err := d.pkg.XML(name)
			if err != nil {
				continue
			}
			for _, el := range tree.FindElements("//wp:docPr") {
				if n, err := strconv.Atoi(el.SelectAttrValue("id", "")); err == nil && n > highest {
					highest = n
				}
			}
		}
		d.nextDrawingID = highest + 1
	}
	id := d.nextDrawingID
	d.nextDrawingID++
	return id
}

// isStory reports whether a part holds document content that may contain drawings.
func (d *Document) isStory(part string) bool {
	if part == d.mainPart {
		return true
	}
	switch d.types.override(part) {
	case ctFooter, ctHeader:
		return true
	}
	return false
}

// Bytes serializes the document to .docx bytes.
func (d *Document) Bytes() ([]byte, error) {
	return d.pkg.Bytes()
}

// ensureNamespace declares xmlns:prefix on el when it is missing.
func ensureNamespace(el *etree.Element, prefix, uri string) {
	if el.SelectAttr("xmlns:"+prefix) == nil {
		el.CreateAttr("xmlns:"+prefix, uri)
	}
}
