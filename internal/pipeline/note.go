package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/unicode/norm"
)

// ErrNoteConversion indicates the banner note could not be converted.
var ErrNoteConversion = errors.New("note conversion failed")

// NoteRenderer converts a short Markdown note into an HTML fragment for the banner.
type NoteRenderer interface {
	ToHTML(ctx context.Context, content string) (template.HTML, error)
}

// GoldmarkNote converts Markdown notes using goldmark (pure Go).
type GoldmarkNote struct {
	md goldmark.Markdown
}

// NewGoldmarkNote creates a GoldmarkNote with strikethrough and autolinks.
// Raw HTML in the note is escaped, so the output is safe to embed.
func NewGoldmarkNote() *GoldmarkNote {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &GoldmarkNote{md: md}
}

// ToHTML converts content to an HTML fragment. A note made of one paragraph
// loses its <p> wrapper so it flows inside single-line templates.
// Goldmark has no context support, so conversion runs in a goroutine.
func (g *GoldmarkNote) ToHTML(ctx context.Context, content string) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content = strings.TrimSpace(norm.NFC.String(content))
	if content == "" {
		return "", nil
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := g.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrNoteConversion, err)}
			return
		}
		done <- result{html: unwrapParagraph(strings.TrimSpace(buf.String()))}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		// #nosec G203 -- goldmark escapes raw HTML without WithUnsafe
		return template.HTML(r.html), r.err
	}
}

// unwrapParagraph strips <p>...</p> around a fragment holding exactly one paragraph.
func unwrapParagraph(s string) string {
	if strings.Count(s, "<p>") != 1 || !strings.HasPrefix(s, "<p>") || !strings.HasSuffix(s, "</p>") {
		return s
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, "<p>"), "</p>")
}

// Compile-time interface check.
var _ NoteRenderer = (*GoldmarkNote)(nil)
