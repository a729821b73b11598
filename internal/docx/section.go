package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// FooterKind selects one of the three footer variants of a section.
type FooterKind string

// Footer variants, as used in w:footerReference/@w:type.
const (
	FooterDefault FooterKind = "default"
	FooterFirst   FooterKind = "first"
	FooterEven    FooterKind = "even"
)

// FooterKinds lists the footer variants in reference order.
var FooterKinds = []FooterKind{FooterDefault, FooterFirst, FooterEven}

// sectPrOrder is the child sequence of CT_SectPr. New children are inserted
// at their schema position so Word does not reject the part.
var sectPrOrder = []string{
	"headerReference", "footerReference", "footnotePr", "endnotePr", "type",
	"pgSz", "pgMar", "paperSrc", "pgBorders", "lnNumType", "pgNumType", "cols",
	"formProt", "vAlign", "noEndnote", "titlePg", "textDirection", "bidi",
	"rtlGutter", "docGrid", "printerSettings", "sectPrChange",
}

// Geometry is the page layout of a section.
type Geometry struct {
	PageHeight     Length
	PageWidth      Length
	TopMargin      Length
	BottomMargin   Length
	LeftMargin     Length
	RightMargin    Length
	HeaderDistance Length
	FooterDistance Length
}

// UsableWidth returns the page width between the left and right margins.
func (g Geometry) UsableWidth() Length {
	return g.PageWidth - g.LeftMargin - g.RightMargin
}

// Section is one w:sectPr of the main document.
type Section struct {
	index int
	el    *etree.Element
}

// Index returns the zero-based position of the section in the document.
func (s *Section) Index() int { return s.index }

// Geometry reads the section's page size and margins.
// Missing or unparseable values read as zero.
func (s *Section) Geometry() Geometry {
	var g Geometry
	if pgSz := s.el.SelectElement("w:pgSz"); pgSz != nil {
		g.PageWidth = attrLength(pgSz, "w:w")
		g.PageHeight = attrLength(pgSz, "w:h")
	}
	if pgMar := s.el.SelectElement("w:pgMar"); pgMar != nil {
		g.TopMargin = attrLength(pgMar, "w:top")
		g.BottomMargin = attrLength(pgMar, "w:bottom")
		g.LeftMargin = attrLength(pgMar, "w:left")
		g.RightMargin = attrLength(pgMar, "w:right")
		g.HeaderDistance = attrLength(pgMar, "w:header")
		g.FooterDistance = attrLength(pgMar, "w:footer")
	}
	return g
}

// SetGeometry overwrites the section's page size and margins.
// The orientation follows the new page size; the gutter is left untouched.
func (s *Section) SetGeometry(g Geometry) {
	pgSz := s.child("pgSz")
	pgSz.CreateAttr("w:w", strconv.Itoa(g.PageWidth.Twips()))
	pgSz.CreateAttr("w:h", strconv.Itoa(g.PageHeight.Twips()))
	if g.PageWidth > g.PageHeight {
		pgSz.CreateAttr("w:orient", "landscape")
	} else {
		pgSz.RemoveAttr("w:orient")
	}

	pgMar := s.child("pgMar")
	pgMar.CreateAttr("w:top", strconv.Itoa(g.TopMargin.Twips()))
	pgMar.CreateAttr("w:right", strconv.Itoa(g.RightMargin.Twips()))
	pgMar.CreateAttr("w:bottom", strconv.Itoa(g.BottomMargin.Twips()))
	pgMar.CreateAttr("w:left", strconv.Itoa(g.LeftMargin.Twips()))
	pgMar.CreateAttr("w:header", strconv.Itoa(g.HeaderDistance.Twips()))
	pgMar.CreateAttr("w:footer", strconv.Itoa(g.FooterDistance.Twips()))
	if pgMar.SelectAttr("w:gutter") == nil {
		pgMar.CreateAttr("w:gutter", "0")
	}
}

// UsableWidth returns the section's page width minus its side margins.
func (s *Section) UsableWidth() Length {
	return s.Geometry().UsableWidth()
}

// FooterRef returns the relationship ID of the section's footer of the given kind.
func (s *Section) FooterRef(kind FooterKind) (string, bool) {
	for _, ref := range s.el.SelectElements("w:footerReference") {
		if ref.SelectAttrValue("w:type", string(FooterDefault)) == string(kind) {
			id := ref.SelectAttrValue("r:id", "")
			return id, id != ""
		}
	}
	return "", false
}

// setFooterRef points the section's footer of the given kind at a relationship.
func (s *Section) setFooterRef(kind FooterKind, relID string) {
	for _, ref := range s.el.SelectElements("w:footerReference") {
		if ref.SelectAttrValue("w:type", string(FooterDefault)) == string(kind) {
			ref.CreateAttr("r:id", relID)
			return
		}
	}
	ref := etree.NewElement("w:footerReference")
	ref.CreateAttr("w:type", string(kind))
	ref.CreateAttr("r:id", relID)
	insertOrdered(s.el, ref, sectPrOrder)
}

// child returns the named w: child of the section, creating it in schema order.
func (s *Section) child(tag string) *etree.Element {
	if el := s.el.SelectElement("w:" + tag); el != nil {
		return el
	}
	el := etree.NewElement("w:" + tag)
	insertOrdered(s.el, el, sectPrOrder)
	return el
}

// attrLength parses a twips measure attribute, returning zero when absent or invalid.
func attrLength(el *etree.Element, key string) Length {
	v := el.SelectAttrValue(key, "")
	if v == "" {
		return 0
	}
	l, err := parseTwipsMeasure(v)
	if err != nil {
		return 0
	}
	return l
}

// insertOrdered inserts child into parent before the first existing element
// that comes later in order. Unknown tags sort last.
func insertOrdered(parent, child *etree.Element, order []string) {
	rank := func(tag string) int {
		for i, t := range order {
			if t == tag {
				return i
			}
		}
		return len(order)
	}

	want := rank(child.Tag)
	for _, el := range parent.ChildElements() {
		if rank(el.Tag) > want {
			parent.InsertChildAt(el.Index(), child)
			return
		}
	}
	parent.AddChild(child)
}
