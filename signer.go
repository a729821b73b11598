package docxsign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-docxsign/internal/assets"
	"github.com/alnah/go-docxsign/internal/docx"
	"github.com/alnah/go-docxsign/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.BannerRenderer = (*pipeline.BannerTemplate)(nil)
	_ pipeline.NoteRenderer   = (*pipeline.GoldmarkNote)(nil)
	_ pngRenderer             = (*rodRenderer)(nil)
)

// Signer stamps validation banners into document footers.
// Create with NewSigner, use Sign for each document, and Close when done.
// A Signer holds one browser and is not safe for concurrent use.
type Signer struct {
	cfg      signerConfig
	now      func() time.Time
	banner   pipeline.BannerRenderer
	note     pipeline.NoteRenderer
	renderer pngRenderer
}

// NewSigner creates a Signer with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithTemplate, WithScale).
// Returns error if an option is out of range or the template cannot be loaded.
func NewSigner(opts ...Option) (*Signer, error) {
	s := &Signer{
		cfg: signerConfig{
			timeout:  defaultTimeout,
			template: assets.DefaultTemplateName,
			dpi:      DefaultDPI,
			padding:  DefaultPadding,
			scale:    MinScale,
		},
		now:  time.Now,
		note: pipeline.NewGoldmarkNote(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.dpi <= 0 {
		return nil, fmt.Errorf("%w: %d (must be positive)", ErrInvalidDPI, s.cfg.dpi)
	}
	if s.cfg.scale < MinScale || s.cfg.scale > MaxScale {
		return nil, fmt.Errorf("%w: %.2f (must be between %.0f and %.0f)", ErrInvalidScale, s.cfg.scale, MinScale, MaxScale)
	}
	if s.cfg.padding < 0 {
		s.cfg.padding = 0
	}

	if err := s.loadTemplate(); err != nil {
		return nil, err
	}

	// Create PNG renderer if not injected (e.g., by tests)
	if s.renderer == nil {
		s.renderer = newRodRenderer(s.cfg.timeout)
	}

	return s, nil
}

// loadTemplate resolves and parses the configured banner template.
func (s *Signer) loadTemplate() error {
	resolver, err := assets.NewAssetResolver(s.cfg.assetPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	tmpl, err := resolver.Resolve(s.cfg.template)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return fmt.Errorf("%w: %v", ErrTemplateNotFound, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	s.banner, err = pipeline.NewBannerTemplate(tmpl.Content, tmpl.Dir)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrTemplateParse, tmpl.Name, err)
	}
	return nil
}

// Sign normalizes the page layout of the document, renders the banner for
// input.Params and puts it, hyperlinked, in every footer.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (s *Signer) Sign(ctx context.Context, input Input) (result *SignResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params, err := input.Params.resolve(s.now())
	if err != nil {
		return nil, err
	}

	doc, err := docx.Read(input.Document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	profile := A4
	if input.Profile != nil {
		profile = *input.Profile
	}
	applyProfile(doc, profile)

	data := params.bannerData()
	if data.Note, err = s.note.ToHTML(ctx, params.Note); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrBannerRender, err)
	}

	width := BannerWidth(profile.UsableWidth(), s.cfg.dpi, s.cfg.padding)
	banner, err := renderBanner(ctx, s.banner, s.renderer, data, bannerSpec{
		Width: width,
		Scale: s.cfg.scale,
	})
	if err != nil {
		return nil, err
	}

	footers, err := composeFooters(doc, banner, params.Link)
	if err != nil {
		return nil, err
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: writing package: %v", ErrInvalidDocument, err)
	}

	return &SignResult{
		Document: out,
		Banner:   banner,
		UUID:     params.UUID,
		Width:    width,
		Footers:  footers,
	}, nil
}

// Close releases the browser. The Signer must not be used afterwards.
func (s *Signer) Close() error {
	if s.renderer != nil {
		return s.renderer.Close()
	}
	return nil
}
