// Package pipeline turns a banner template into the HTML page that the
// browser screenshots.
//
// Stages:
//   - the optional Markdown note converted to an HTML fragment with goldmark
//   - template execution with html/template, data normalized to NFC
//   - relative asset paths (img, stylesheet link, a) rewritten to absolute
//     file:// URLs, since the page is loaded from a temp file
//
// Screenshotting and image handling live in the root docxsign package.
package pipeline
