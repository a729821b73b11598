// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docxsign/internal/fileutil"
)

// IsInContainer detects a Docker container through the /.dockerenv marker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser launch or connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'docxsign doctor' to check the setup")

	return formatHints(hints)
}

// ForTimeout returns a hint about raising the timeout.
func ForTimeout() string {
	return format("raise the limit with --timeout or DOCXSIGN_TIMEOUT")
}

// ForConfigNotFound suggests --config or the first user config location searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepath2slash(p), ".config/docxsign") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the output directory is writable and the file is not open in Word")
}

// ForTemplateNotFound lists the embedded banner templates.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + ", or a path to an .html file")
}

// ForInvalidDocument returns hints for inputs that are not .docx packages.
func ForInvalidDocument() string {
	return format("input must be a .docx file; convert legacy .doc files first")
}

// ForOpenCommand returns hints when the output could not be opened.
func ForOpenCommand() string {
	return format("set open.mode to never, or DOCXSIGN_OPEN=never, on headless hosts")
}

func filepath2slash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
