package docx

import (
	"strconv"

	"github.com/beevik/etree"
)

// Picture describes an inline picture to insert.
type Picture struct {
	ID         int    // wp:docPr id; zero picks the next free one
	Name       string // wp:docPr name and pic:cNvPr name
	ImageRelID string // relationship to the image part
	LinkRelID  string // optional hyperlink relationship for click action
	Width      Length
	Height     Length
}

// PictureInfo describes an inline picture found in a part.
type PictureInfo struct {
	Name       string
	ImageRelID string
	LinkRelID  string
	LinkTarget string
	Width      Length
	Height     Length
}

// newPictureRun builds a w:r holding a w:drawing/wp:inline picture.
// DrawingML namespaces are declared locally, as Word does.
func newPictureRun(pic Picture) *etree.Element {
	cx := strconv.FormatInt(pic.Width.EMU(), 10)
	cy := strconv.FormatInt(pic.Height.EMU(), 10)
	id := strconv.Itoa(pic.ID)

	run := etree.NewElement("w:r")
	inline := run.CreateElement("w:drawing").CreateElement("wp:inline")
	for _, k := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(k, "0")
	}

	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", cx)
	extent.CreateAttr("cy", cy)

	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", id)
	docPr.CreateAttr("name", pic.Name)
	if pic.LinkRelID != "" {
		hl := docPr.CreateElement("a:hlinkClick")
		hl.CreateAttr("xmlns:a", nsA)
		hl.CreateAttr("r:id", pic.LinkRelID)
	}

	locks := inline.CreateElement("wp:cNvGraphicFramePr").CreateElement("a:graphicFrameLocks")
	locks.CreateAttr("xmlns:a", nsA)
	locks.CreateAttr("noChangeAspect", "1")

	graphic := inline.CreateElement("a:graphic")
	graphic.CreateAttr("xmlns:a", nsA)
	data := graphic.CreateElement("a:graphicData")
	data.CreateAttr("uri", nsPic)

	p := data.CreateElement("pic:pic")
	p.CreateAttr("xmlns:pic", nsPic)

	nvPicPr := p.CreateElement("pic:nvPicPr")
	cNvPr := nvPicPr.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", "0")
	cNvPr.CreateAttr("name", pic.Name)
	nvPicPr.CreateElement("pic:cNvPicPr")

	blipFill := p.CreateElement("pic:blipFill")
	blip := blipFill.CreateElement("a:blip")
	blip.CreateAttr("r:embed", pic.ImageRelID)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := p.CreateElement("pic:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", cx)
	ext.CreateAttr("cy", cy)
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")

	return run
}

// attrEMU parses an integer EMU attribute, returning zero when absent or invalid.
func attrEMU(el *etree.Element, key string) Length {
	n, err := strconv.ParseInt(el.SelectAttrValue(key, ""), 10, 64)
	if err != nil {
		return 0
	}
	return Length(n)
}
