// Package docx edits Office Open XML word processing packages in place.
//
// It covers what stamping a document footer needs and nothing more: the zip
// package and its content types, part relationships, section geometry
// (w:sectPr), and footer parts with their paragraphs and inline pictures.
//
// Parts are kept as raw bytes until they are touched. Touched XML parts are
// parsed with etree, which preserves namespace prefixes, and serialized again
// by Document.Bytes. Untouched parts are copied through verbatim.
//
// WordprocessingML parts are expected to use the conventional prefixes
// (w, r, wp, a, pic). Documents produced by Word, LibreOffice and python-docx
// all do.
package docx
