package main

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-docxsign/internal/config"
	"github.com/alnah/go-docxsign/internal/hints"
	"github.com/alnah/go-docxsign/internal/process"
)

// ErrOpen is returned when the viewer could not be started.
var ErrOpen = errors.New("failed to open document")

// Opener starts a viewer for a file.
type Opener interface {
	Open(path string, command []string) error
}

// commandOpener runs the platform open command, or a configured one,
// without waiting for it.
type commandOpener struct {
	goos string // empty means runtime.GOOS
}

// Compile-time interface implementation check.
var _ Opener = (*commandOpener)(nil)

// Open starts the viewer detached from the CLI's process group.
func (o *commandOpener) Open(path string, command []string) error {
	goos := o.goos
	if goos == "" {
		goos = runtime.GOOS
	}
	name, args := openCommand(goos, command, path)

	cmd := exec.Command(name, args...) // #nosec G204 -- opener comes from the user's config
	process.Detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrOpen, name, err)
	}
	return cmd.Process.Release()
}

// openCommand returns the command that opens path. A custom command gets the
// path appended as its last argument.
func openCommand(goos string, custom []string, path string) (string, []string) {
	if len(custom) > 0 {
		args := append([]string{}, custom[1:]...)
		return custom[0], append(args, path)
	}
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		// The empty argument is the window title taken by start.
		return "cmd", []string{"/c", "start", "", path}
	default:
		return "xdg-open", []string{path}
	}
}

// shouldOpen applies the open mode. Auto opens only on an interactive terminal.
func shouldOpen(mode string, isTerminal func() bool) bool {
	switch strings.ToLower(mode) {
	case config.OpenNever:
		return false
	case config.OpenAuto:
		return isTerminal != nil && isTerminal()
	default:
		return true
	}
}

// openResult opens the signed document. Failures are warnings: the document
// is already written.
func openResult(cfg config.OpenConfig, path string, quiet bool, env *Environment) {
	if env.Opener == nil || !shouldOpen(cfg.Mode, env.IsTerminal) {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := env.Opener.Open(path, cfg.Command); err != nil && !quiet {
		fmt.Fprintf(env.Stderr, "warning: %v%s\n", err, hints.ForOpenCommand())
	}
}
