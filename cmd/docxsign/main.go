package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-docxsign/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands; anything else is an input for sign.
var commands = map[string]bool{
	"sign":    true,
	"doctor":  true,
	"config":  true,
	"version": true,
	"help":    true,
}

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command line and returns the process exit code.
// args[0] is the program name.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	cmd := "sign"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		switch {
		case isCommand(args[0]):
			cmd, args = args[0], args[1:]
		case !looksLikeDocument(args[0]):
			fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
			printUsage(env.Stderr)
			return ExitUsage
		}
	}

	switch cmd {
	case "doctor":
		return runDoctorCmd(args, env)
	case "config":
		return reportError(runConfigCmd(args, env), env)
	case "version":
		fmt.Fprintf(env.Stdout, "docxsign %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(args, env)
		return ExitSuccess
	}

	flags, positional, err := parseSignFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		printSignUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return reportError(runSign(ctx, positional, flags, env), env)
}

// reportError prints err with its hints and maps it to an exit code.
func reportError(err error, env *Environment) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// looksLikeDocument reports whether arg is a document path given without
// the sign command, as in "docxsign report.docx".
func looksLikeDocument(arg string) bool {
	return strings.HasSuffix(strings.ToLower(arg), ".docx") || fileutil.FileExists(arg)
}

// hasVerboseFlag scans raw arguments for -v or --verbose before parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
