package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"golang.org/x/text/unicode/norm"
)

// Sentinel errors for banner templating.
var (
	ErrBannerParse   = errors.New("banner template parsing failed")
	ErrBannerExecute = errors.New("banner template rendering failed")
)

// BannerData is the data passed to a banner template.
type BannerData struct {
	Link          string        // validation page URL
	UUID          string        // document verification code
	ValidationURL string        // link pointing at this document, when derivable
	Date          string        // signing date, possibly empty
	Note          template.HTML // optional note, already converted from Markdown
}

// normalized returns a copy with every field in Unicode NFC, so a code typed
// with combining accents renders the same as its precomposed form.
func (d BannerData) normalized() BannerData {
	return BannerData{
		Link:          norm.NFC.String(d.Link),
		UUID:          norm.NFC.String(d.UUID),
		ValidationURL: norm.NFC.String(d.ValidationURL),
		Date:          norm.NFC.String(d.Date),
		Note:          d.Note,
	}
}

// BannerRenderer turns banner data into a standalone HTML page.
type BannerRenderer interface {
	Render(ctx context.Context, data BannerData) (string, error)
}

// BannerTemplate renders a banner HTML template.
type BannerTemplate struct {
	tmpl *template.Template
	dir  string
}

// NewBannerTemplate parses a banner template. Relative img, link and a paths
// in the output are resolved against dir; an empty dir leaves them untouched.
// Unknown fields are template errors rather than empty strings.
func NewBannerTemplate(content, dir string) (*BannerTemplate, error) {
	tmpl, err := template.New("banner").Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBannerParse, err)
	}
	return &BannerTemplate{tmpl: tmpl, dir: dir}, nil
}

// Render executes the template and rewrites relative asset paths.
func (b *BannerTemplate) Render(ctx context.Context, data BannerData) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, data.normalized()); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBannerExecute, err)
	}

	out, err := RewriteRelativePaths(buf.String(), b.dir)
	if err != nil {
		return "", fmt.Errorf("%w: rewriting asset paths: %v", ErrBannerExecute, err)
	}
	return out, nil
}

// Compile-time interface check.
var _ BannerRenderer = (*BannerTemplate)(nil)
