// Package process groups platform-specific process handling: killing the
// browser with its children, and detaching launched viewers from the CLI.
package process
