package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/mattetti/filebuffer"
)

// Package is an OPC zip package held in memory.
// Raw part bytes are kept in their original order; parts parsed through XML
// are serialized again when the package is written.
type Package struct {
	parts map[string][]byte
	order []string
	trees map[string]*etree.Document
}

// ReadPackage reads an OPC package from zip bytes.
func ReadPackage(data []byte) (*Package, error) {
	buf := filebuffer.New(data)
	defer buf.Close()

	zr, err := zip.NewReader(buf, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotZip, err)
	}

	p := &Package{
		parts: make(map[string][]byte, len(zr.File)),
		order: make([]string, 0, len(zr.File)),
		trees: make(map[string]*etree.Document),
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		p.parts[f.Name] = content
		p.order = append(p.order, f.Name)
	}

	if _, ok := p.parts[contentTypesPart]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, contentTypesPart)
	}

	return p, nil
}

// readZipFile returns the decompressed content of a zip entry.
func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Has reports whether the package contains the named part.
func (p *Package) Has(name string) bool {
	if _, ok := p.trees[name]; ok {
		return true
	}
	_, ok := p.parts[name]
	return ok
}

// Part returns the raw bytes of a part.
// Parts that were parsed are serialized to reflect pending edits.
func (p *Package) Part(name string) ([]byte, bool) {
	if tree, ok := p.trees[name]; ok {
		out, err := tree.WriteToBytes()
		if err != nil {
			return nil, false
		}
		return out, true
	}
	data, ok := p.parts[name]
	return data, ok
}

// PartNames returns all part names in package order.
func (p *Package) PartNames() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// SetPart stores raw bytes for a part, replacing any previous content.
func (p *Package) SetPart(name string, data []byte) {
	delete(p.trees, name)
	p.track(name)
	p.parts[name] = data
}

// DeletePart removes a part from the package.
func (p *Package) DeletePart(name string) {
	delete(p.parts, name)
	delete(p.trees, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// XML returns the parsed tree of an XML part. The tree is cached so edits
// made through it are written out by Bytes.
func (p *Package) XML(name string) (*etree.Document, error) {
	if tree, ok := p.trees[name]; ok {
		return tree, nil
	}
	data, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}

	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, name, err)
	}
	if tree.Root() == nil {
		return nil, fmt.Errorf("%w: %s: no root element", ErrMalformedPart, name)
	}

	p.trees[name] = tree
	return tree, nil
}

// SetXML stores a parsed tree as the content of a part.
func (p *Package) SetXML(name string, tree *etree.Document) {
	p.track(name)
	delete(p.parts, name)
	p.trees[name] = tree
}

// track records a part name in package order the first time it is seen.
func (p *Package) track(name string) {
	if _, ok := p.parts[name]; ok {
		return
	}
	if _, ok := p.trees[name]; ok {
		return
	}
	p.order = append(p.order, name)
}

// UnusedName returns the first free part name of the form prefix+N+ext,
// starting at N=1 (e.g. "word/footer3.xml").
func (p *Package) UnusedName(prefix, ext string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf("%s%d%s", prefix, n, ext)
		if !p.Has(name) {
			return name
		}
	}
}

// Bytes serializes the package to zip bytes.
// [Content_Types].xml is written first, the remaining parts in package order.
func (p *Package) Bytes() ([]byte, error) {
	out := filebuffer.New(nil)
	zw := zip.NewWriter(out)

	names := p.PartNames()
	sort.SliceStable(names, func(i, j int) bool {
		return names[i] == contentTypesPart && names[j] != contentTypesPart
	})

	for _, name := range names {
		data, ok := p.Part(name)
		if !ok {
			return nil, fmt.Errorf("%w: serializing %s", ErrMalformedPart, name)
		}

		method := zip.Deflate
		if isStoredMedia(name) {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing zip: %w", err)
	}
	return out.Buff.Bytes(), nil
}

// isStoredMedia reports whether a part is already compressed media.
func isStoredMedia(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}

// relsPartFor returns the relationships part name for a source part.
// "word/document.xml" -> "word/_rels/document.xml.rels".
func relsPartFor(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// sourceForRels returns the source part of a relationships part.
// "word/_rels/document.xml.rels" -> "word/document.xml", "_rels/.rels" -> "".
func sourceForRels(name string) string {
	dir, file := path.Split(name)
	dir = strings.TrimSuffix(strings.TrimSuffix(dir, "/"), "_rels")
	return dir + strings.TrimSuffix(file, ".rels")
}

// resolveTarget resolves a relationship target against its source part.
func resolveTarget(sourcePart, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(sourcePart), target)
}

// relativeTarget returns target expressed relative to the source part's directory.
func relativeTarget(sourcePart, target string) string {
	dir := path.Dir(sourcePart) + "/"
	if rel, ok := strings.CutPrefix(target, dir); ok {
		return rel
	}
	return "/" + target
}
