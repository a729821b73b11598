package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships is the relationship set of a source part.
type Relationships struct {
	source string
	tree   *etree.Document
}

// relationshipsFor loads the relationships of a source part, creating an
// empty set in the package when the part has none.
func relationshipsFor(pkg *Package, source string) (*Relationships, error) {
	name := relsPartFor(source)
	if source == "" {
		name = packageRelsPart
	}

	if !pkg.Has(name) {
		tree := etree.NewDocument()
		tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		root := tree.CreateElement("Relationships")
		root.CreateAttr("xmlns", nsPR)
		pkg.SetXML(name, tree)
		return &Relationships{source: source, tree: tree}, nil
	}

	tree, err := pkg.XML(name)
	if err != nil {
		return nil, err
	}
	return &Relationships{source: source, tree: tree}, nil
}

// All returns every relationship in document order.
func (r *Relationships) All() []Relationship {
	var rels []Relationship
	for _, el := range r.tree.Root().SelectElements("Relationship") {
		rels = append(rels, Relationship{
			ID:       el.SelectAttrValue("Id", ""),
			Type:     el.SelectAttrValue("Type", ""),
			Target:   el.SelectAttrValue("Target", ""),
			External: strings.EqualFold(el.SelectAttrValue("TargetMode", ""), "External"),
		})
	}
	return rels
}

// Get returns the relationship with the given ID.
func (r *Relationships) Get(id string) (Relationship, bool) {
	for _, rel := range r.All() {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relationship{}, false
}

// ByType returns the relationships of the given type.
func (r *Relationships) ByType(typ string) []Relationship {
	var rels []Relationship
	for _, rel := range r.All() {
		if rel.Type == typ {
			rels = append(rels, rel)
		}
	}
	return rels
}

// Part returns the package part name a relationship points to.
// External relationships have no part and return an error.
func (r *Relationships) Part(id string) (string, error) {
	rel, ok := r.Get(id)
	if !ok {
		return "", fmt.Errorf("%w: %s in %s", ErrUnknownRelation, id, relsPartFor(r.source))
	}
	if rel.External {
		return "", fmt.Errorf("relationship %s is external", id)
	}
	return resolveTarget(r.source, rel.Target), nil
}

// AddInternal adds a relationship to another part of the package and returns its ID.
func (r *Relationships) AddInternal(typ, part string) string {
	return r.add(typ, relativeTarget(r.source, part), false)
}

// AddExternal adds a relationship to an external target (e.g. a URL) and returns its ID.
func (r *Relationships) AddExternal(typ, target string) string {
	return r.add(typ, target, true)
}

// Remove deletes the relationship with the given ID and reports whether it existed.
func (r *Relationships) Remove(id string) bool {
	root := r.tree.Root()
	for _, el := range root.SelectElements("Relationship") {
		if el.SelectAttrValue("Id", "") == id {
			root.RemoveChild(el)
			return true
		}
	}
	return false
}

func (r *Relationships) add(typ, target string, external bool) string {
	id := r.nextID()
	el := r.tree.Root().CreateElement("Relationship")
	el.CreateAttr("Id", id)
	el.CreateAttr("Type", typ)
	el.CreateAttr("Target", target)
	if external {
		el.CreateAttr("TargetMode", "External")
	}
	return id
}

// nextID returns "rId" followed by one more than the highest numeric rId in use.
func (r *Relationships) nextID() string {
	highest := 0
	for _, rel := range r.All() {
		num, ok := strings.CutPrefix(rel.ID, "rId")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(num); err == nil && n > highest {
			highest = n
		}
	}
	return "rId" + strconv.Itoa(highest+1)
}

// contentTypes wraps [Content_Types].xml.
type contentTypes struct {
	tree *etree.Document
}

func loadContentTypes(pkg *Package) (*contentTypes, error) {
	tree, err := pkg.XML(contentTypesPart)
	if err != nil {
		return nil, err
	}
	return &contentTypes{tree: tree}, nil
}

// ensureDefault registers a content type for a file extension if missing.
func (c *contentTypes) ensureDefault(ext, contentType string) {
	root := c.tree.Root()
	for _, el := range root.SelectElements("Default") {
		if strings.EqualFold(el.SelectAttrValue("Extension", ""), ext) {
			return
		}
	}
	el := etree.NewElement("Default")
	el.CreateAttr("Extension", ext)
	el.CreateAttr("ContentType", contentType)
	// Defaults precede overrides by convention.
	if first := root.SelectElement("Override"); first != nil {
		root.InsertChildAt(first.Index(), el)
		return
	}
	root.AddChild(el)
}

// setOverride registers a content type for a specific part.
func (c *contentTypes) setOverride(part, contentType string) {
	partName := "/" + part
	root := c.tree.Root()
	for _, el := range root.SelectElements("Override") {
		if el.SelectAttrValue("PartName", "") == partName {
			el.CreateAttr("ContentType", contentType)
			return
		}
	}
	el := root.CreateElement("Override")
	el.CreateAttr("PartName", partName)
	el.CreateAttr("ContentType", contentType)
}

// override returns the content type registered for a part, if any.
func (c *contentTypes) override(part string) string {
	partName := "/" + part
	for _, el := range c.tree.Root().SelectElements("Override") {
		if el.SelectAttrValue("PartName", "") == partName {
			return el.SelectAttrValue("ContentType", "")
		}
	}
	return ""
}
