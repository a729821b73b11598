package docxsign

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-docxsign/internal/dateutil"
	"github.com/alnah/go-docxsign/internal/pipeline"
)

// UUIDAuto asks the signer to generate a random UUID.
const UUIDAuto = "auto"

// Params are the values printed in the banner.
type Params struct {
	Link string // validation page, absolute http(s) URL
	UUID string // verification code; UUIDAuto generates one
	Date string // optional: literal, "auto" or "auto:FORMAT"
	Note string // optional Markdown line shown in the banner
}

// Validate checks the link is an absolute http(s) URL and the UUID is set.
func (p Params) Validate() error {
	if p.Link == "" {
		return fmt.Errorf("%w: link is required", ErrInvalidLink)
	}
	u, err := url.Parse(p.Link)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidLink, p.Link)
	}
	if strings.TrimSpace(p.UUID) == "" {
		return ErrEmptyUUID
	}
	return nil
}

// ValidationURL points at the validation page of this document: the UUID
// is appended when the link ends with a slash, else the link is returned.
func (p Params) ValidationURL() string {
	if strings.HasSuffix(p.Link, "/") {
		return p.Link + url.PathEscape(p.UUID)
	}
	return p.Link
}

// resolve expands the UUID and Date placeholders.
func (p Params) resolve(now time.Time) (Params, error) {
	if strings.EqualFold(strings.TrimSpace(p.UUID), UUIDAuto) {
		p.UUID = strings.ToUpper(uuid.NewString())
	}
	p.UUID = strings.TrimSpace(p.UUID)

	date, err := dateutil.ResolveDate(p.Date, now)
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	p.Date = date
	return p, nil
}

// bannerData maps resolved params to template data.
func (p Params) bannerData() pipeline.BannerData {
	return pipeline.BannerData{
		Link:          p.Link,
		UUID:          p.UUID,
		ValidationURL: p.ValidationURL(),
		Date:          p.Date,
	}
}

// Input is one document to sign.
type Input struct {
	Document []byte       // .docx bytes
	Profile  *PageProfile // nil means A4
	Params   Params
}

// Validate checks the document is present and the profile and params are valid.
func (in Input) Validate() error {
	if len(in.Document) == 0 {
		return ErrEmptyDocument
	}
	if in.Profile != nil {
		if err := in.Profile.Validate(); err != nil {
			return err
		}
	}
	return in.Params.Validate()
}

// SignResult is the output of Sign.
type SignResult struct {
	Document []byte // signed .docx
	Banner   []byte // PNG embedded in the footers
	UUID     string // UUID printed in the banner, after "auto" expansion
	Width    int    // banner width in pixels
	Footers  int    // number of footer parts stamped
}
