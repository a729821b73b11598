package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docxsign [command] [flags] [document.docx]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  sign       Stamp the validation banner into a document (default)")
	fmt.Fprintln(w, "  doctor     Check Chrome and the environment")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docxsign help <command>' for details on a specific command.")
}

// printSignUsage prints usage for the sign command.
func printSignUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docxsign sign [document.docx] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Normalize the page layout of every section, then replace every footer")
	fmt.Fprintln(w, "with a banner image linking to the validation page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  document  Input .docx (default: input from config, assets/file_in.docx)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Signed document (default: build/file_out.docx)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>           Banner rendering timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --open <mode>           Open the result: always, never, auto")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Signature:")
	fmt.Fprintln(w, "  -l, --link <url>            Validation link (absolute http/https URL)")
	fmt.Fprintln(w, "  -u, --uuid <code>           Verification code, \"auto\" = random UUID")
	fmt.Fprintln(w, "      --date <s>              Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                              Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss")
	fmt.Fprintln(w, "                              Presets (case-insensitive): iso, european, us, long, stamp")
	fmt.Fprintln(w, "      --note <md>             Markdown note shown in the banner")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Banner:")
	fmt.Fprintln(w, "      --template <s>          Template name or .html path (default: default)")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory with custom templates/")
	fmt.Fprintln(w, "      --banner-output <path>  Banner PNG (default: build/banner.png)")
	fmt.Fprintln(w, "      --no-banner-file        Do not write the banner PNG")
	fmt.Fprintln(w, "      --dpi <n>               Pixels per inch of usable width (default: 96)")
	fmt.Fprintln(w, "      --padding <n>           Pixels added to the width (default: 15)")
	fmt.Fprintln(w, "      --scale <f>             Render scale for sharper text (1-4)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>         Page profile: a4, letter, legal (default: a4)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docxsign config [-c <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML: the config file (or")
	fmt.Fprintln(w, "defaults) with DOCXSIGN_* environment variables applied.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "sign":
		printSignUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: docxsign doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, the environment and the document opener.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docxsign version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docxsign help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
