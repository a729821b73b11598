// Package docxtest builds minimal .docx packages for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"sort"
	"strings"
	"testing"
)

// Letter page size and 1 inch margins, in twips.
const (
	LetterWidth  = 12240
	LetterHeight = 15840
	InchMargin   = 1440
)

// Section describes one section of the generated document.
type Section struct {
	PageWidth  int               // twips; zero omits w:pgSz
	PageHeight int               // twips
	Orient     string            // w:orient of w:pgSz; "" omits it
	Margin     int               // twips on all sides; zero omits w:pgMar
	FooterRefs map[string]string // footer kind ("default", "first", "even") -> footer part file name
}

// Footer describes one footer part.
type Footer struct {
	Name       string   // file name under word/, e.g. "footer1.xml"
	Paragraphs []string // text of each paragraph; "" is an empty paragraph
	Body       string   // raw WordprocessingML appended after Paragraphs
}

// Options describes the generated document.
type Options struct {
	Sections []Section
	Footers  []Footer
}

// LetterSection returns a US Letter section with 1 inch margins.
func LetterSection(footerRefs map[string]string) Section {
	return Section{
		PageWidth:  LetterWidth,
		PageHeight: LetterHeight,
		Margin:     InchMargin,
		FooterRefs: footerRefs,
	}
}

// Build returns the bytes of a .docx package described by opts.
func Build(tb testing.TB, opts Options) []byte {
	tb.Helper()

	footerRels := make(map[string]string, len(opts.Footers))
	for i, f := range opts.Footers {
		footerRels[f.Name] = fmt.Sprintf("rId%d", 100+i)
	}

	parts := map[string]string{
		"[Content_Types].xml":          contentTypes(opts.Footers),
		"_rels/.rels":                  packageRels,
		"word/document.xml":            document(tb, opts.Sections, footerRels),
		"word/_rels/document.xml.rels": documentRels(opts.Footers, footerRels),
	}
	for _, f := range opts.Footers {
		parts["word/"+f.Name] = footer(f)
	}

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			tb.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			tb.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const packageRels = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func contentTypes(footers []Footer) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	for _, f := range footers {
		fmt.Fprintf(&b, `<Override PartName="/word/%s" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>`, f.Name)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func documentRels(footers []Footer, ids map[string]string) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	for _, f := range footers {
		fmt.Fprintf(&b, `<Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="%s"/>`, ids[f.Name], f.Name)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func document(tb testing.TB, sections []Section, footerRels map[string]string) string {
	tb.Helper()

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>`)

	for i, s := range sections {
		sectPr := sectionProperties(tb, s, footerRels)
		text := fmt.Sprintf("<w:r><w:t>Section %d</w:t></w:r>", i+1)
		if i < len(sections)-1 {
			fmt.Fprintf(&b, "<w:p><w:pPr>%s</w:pPr>%s</w:p>", sectPr, text)
			continue
		}
		fmt.Fprintf(&b, "<w:p>%s</w:p>%s", text, sectPr)
	}
	if len(sections) == 0 {
		b.WriteString("<w:p><w:r><w:t>No section</w:t></w:r></w:p>")
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func sectionProperties(tb testing.TB, s Section, footerRels map[string]string) string {
	tb.Helper()

	var b strings.Builder
	b.WriteString("<w:sectPr>")

	kinds := make([]string, 0, len(s.FooterRefs))
	for kind := range s.FooterRefs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		id, ok := footerRels[s.FooterRefs[kind]]
		if !ok {
			tb.Fatalf("section references unknown footer %q", s.FooterRefs[kind])
		}
		fmt.Fprintf(&b, `<w:footerReference w:type="%s" r:id="%s"/>`, kind, id)
	}
	if s.PageWidth != 0 {
		orient := ""
		if s.Orient != "" {
			orient = fmt.Sprintf(` w:orient="%s"`, s.Orient)
		}
		fmt.Fprintf(&b, `<w:pgSz w:w="%d" w:h="%d"%s/>`, s.PageWidth, s.PageHeight, orient)
	}
	if s.Margin != 0 {
		fmt.Fprintf(&b, `<w:pgMar w:top="%[1]d" w:right="%[1]d" w:bottom="%[1]d" w:left="%[1]d" w:header="720" w:footer="720" w:gutter="0"/>`, s.Margin)
	}
	b.WriteString(`<w:cols w:space="720"/>`)
	b.WriteString("</w:sectPr>")
	return b.String()
}

func footer(f Footer) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:ftr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	for _, text := range f.Paragraphs {
		b.WriteString(`<w:p><w:pPr><w:jc w:val="center"/></w:pPr>`)
		if text != "" {
			fmt.Fprintf(&b, "<w:r><w:t>%s</w:t></w:r>", html.EscapeString(text))
		}
		b.WriteString(`</w:p>`)
	}
	b.WriteString(f.Body)
	b.WriteString(`</w:ftr>`)
	return b.String()
}
