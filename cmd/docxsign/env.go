package main

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	docxsign "github.com/alnah/go-docxsign"
)

// Signer is the part of docxsign.Signer the CLI needs.
type Signer interface {
	Sign(ctx context.Context, input docxsign.Input) (*docxsign.SignResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Signer = (*docxsign.Signer)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the signer factory and the document opener.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	NewSigner  func(opts ...docxsign.Option) (Signer, error)
	Opener     Opener
	IsTerminal func() bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewSigner: func(opts ...docxsign.Option) (Signer, error) {
			return docxsign.NewSigner(opts...)
		},
		Opener: &commandOpener{},
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd())) // #nosec G115 -- file descriptors fit in int
		},
	}
}
