package docx

import (
	"github.com/beevik/etree"
)

// Footer is a footer part (w:ftr) with its relationships.
type Footer struct {
	part string
	tree *etree.Document
	rels *Relationships
	doc  *Document
}

// PartName returns the package part name of the footer.
func (f *Footer) PartName() string { return f.part }

// Relationships returns the footer's relationship set.
func (f *Footer) Relationships() *Relationships { return f.rels }

// Paragraphs returns the paragraphs directly under the footer root.
func (f *Footer) Paragraphs() []*Paragraph {
	var ps []*Paragraph
	for _, el := range f.tree.Root().SelectElements("w:p") {
		ps = append(ps, &Paragraph{el: el})
	}
	return ps
}

// Clear empties the footer down to one paragraph without runs, keeping the
// first paragraph's properties. Tables and content controls go with the rest
// of the content. Image and hyperlink relationships the footer no longer uses
// are removed.
func (f *Footer) Clear() {
	root := f.tree.Root()

	keep := root.SelectElement("w:p")
	if keep == nil {
		keep = etree.NewElement("w:p")
		if pPr := root.FindElement(".//w:p/w:pPr"); pPr != nil {
			keep.AddChild(pPr.Copy())
		}
	}
	for _, child := range append([]etree.Token(nil), root.Child...) {
		root.RemoveChild(child)
	}
	root.AddChild(keep)
	(&Paragraph{el: keep}).Clear()

	f.pruneRelationships()
}

// pruneRelationships removes image and hyperlink relationships that no
// r: attribute in the footer refers to.
func (f *Footer) pruneRelationships() {
	used := make(map[string]bool)
	for _, el := range f.tree.Root().FindElements(".//*") {
		for _, a := range el.Attr {
			if a.Space == "r" || a.NamespaceURI() == nsR {
				used[a.Value] = true
			}
		}
	}
	for _, rel := range f.rels.All() {
		if (rel.Type == RelImage || rel.Type == RelHyperlink) && !used[rel.ID] {
			f.rels.Remove(rel.ID)
		}
	}
}

// AddImage stores PNG bytes as a media part and relates it to the footer.
// Returns the relationship ID to use in a:blip/@r:embed.
func (f *Footer) AddImage(png []byte) string {
	return f.RelateImage(f.doc.AddImagePart(png))
}

// RelateImage relates an existing media part to the footer and returns the
// relationship ID. Several footers may share one media part.
func (f *Footer) RelateImage(part string) string {
	f.doc.types.ensureDefault("rels", ctRels)
	return f.rels.AddInternal(RelImage, part)
}

// AddHyperlink relates an external URL to the footer.
// Returns the relationship ID to use in a:hlinkClick/@r:id.
func (f *Footer) AddHyperlink(url string) string {
	return f.rels.AddExternal(RelHyperlink, url)
}

// AddPicture appends an inline picture run to p.
// The picture gets a fresh drawing object ID unless pic.ID is set.
func (f *Footer) AddPicture(p *Paragraph, pic Picture) {
	if pic.ID == 0 {
		pic.ID = f.doc.nextDrawingObjectID()
	}
	root := f.tree.Root()
	ensureNamespace(root, "r", nsR)
	ensureNamespace(root, "wp", nsWP)
	p.el.AddChild(newPictureRun(pic))
}

// Pictures returns the inline pictures in the footer, in document order.
func (f *Footer) Pictures() []PictureInfo {
	var pics []PictureInfo
	for _, inline := range f.tree.Root().FindElements(".//w:drawing/wp:inline") {
		info := PictureInfo{}
		if ext := inline.SelectElement("wp:extent"); ext != nil {
			info.Width = attrEMU(ext, "cx")
			info.Height = attrEMU(ext, "cy")
		}
		if docPr := inline.SelectElement("wp:docPr"); docPr != nil {
			info.Name = docPr.SelectAttrValue("name", "")
			if hl := docPr.SelectElement("a:hlinkClick"); hl != nil {
				info.LinkRelID = hl.SelectAttrValue("r:id", "")
			}
		}
		if blip := inline.FindElement(".//a:blip"); blip != nil {
			info.ImageRelID = blip.SelectAttrValue("r:embed", "")
		}
		if rel, ok := f.rels.Get(info.LinkRelID); ok && rel.External {
			info.LinkTarget = rel.Target
		}
		pics = append(pics, info)
	}
	return pics
}

// TextRuns returns the number of runs in the footer that carry text.
func (f *Footer) TextRuns() int {
	n := 0
	for _, r := range f.tree.Root().FindElements(".//w:r") {
		if r.SelectElement("w:t") != nil {
			n++
		}
	}
	return n
}

// Paragraph is a w:p element.
type Paragraph struct {
	el *etree.Element
}

// Clear removes all paragraph content except its properties (w:pPr).
func (p *Paragraph) Clear() {
	var drop []etree.Token
	for _, child := range p.el.Child {
		if el, ok := child.(*etree.Element); ok && el.Space == "w" && el.Tag == "pPr" {
			continue
		}
		drop = append(drop, child)
	}
	for _, t := range drop {
		p.el.RemoveChild(t)
	}
}

// Runs returns the number of runs directly in the paragraph.
func (p *Paragraph) Runs() int {
	return len(p.el.SelectElements("w:r"))
}

// Text returns the concatenated w:t text of the paragraph.
func (p *Paragraph) Text() string {
	var s string
	for _, t := range p.el.FindElements(".//w:t") {
		s += t.Text()
	}
	return s
}
