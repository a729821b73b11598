package main

import (
	"context"
	"errors"
	"strings"

	docxsign "github.com/alnah/go-docxsign"
	"github.com/alnah/go-docxsign/internal/assets"
	"github.com/alnah/go-docxsign/internal/config"
	"github.com/alnah/go-docxsign/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(err.Error(), context.DeadlineExceeded.Error()):
		return hints.ForTimeout()
	case errors.Is(err, docxsign.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, docxsign.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(assets.Names())
	case errors.Is(err, docxsign.ErrInvalidDocument),
		errors.Is(err, ErrInvalidExtension):
		return hints.ForInvalidDocument()
	case errors.Is(err, ErrWriteDocument),
		errors.Is(err, ErrWriteBanner):
		return hints.ForOutputDirectory()
	}
	return ""
}
