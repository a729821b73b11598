package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// signatureFlags holds the banner values.
type signatureFlags struct {
	link string
	uuid string
	date string
	note string
}

// bannerFlags holds banner rendering flags.
type bannerFlags struct {
	template string
	assets   string
	output   string
	dpi      int
	padding  int
	scale    float64
	noBanner bool // do not write the banner PNG
}

// pageFlags holds page layout flags.
type pageFlags struct {
	profile string
}

// signFlags holds all flags for the sign command.
type signFlags struct {
	common    commonFlags
	output    string
	timeout   string
	open      string
	signature signatureFlags
	banner    bannerFlags
	page      pageFlags
}

// paddingUnset detects if --padding was explicitly set, since 0 is valid.
const paddingUnset = -1

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSignatureFlags adds banner value flags to a FlagSet.
func addSignatureFlags(fs *flag.FlagSet, f *signatureFlags) {
	fs.StringVarP(&f.link, "link", "l", "", "validation link (absolute http/https URL)")
	fs.StringVarP(&f.uuid, "uuid", "u", "", "verification code (\"auto\" = random UUID)")
	fs.StringVar(&f.date, "date", "", "banner date (\"auto\", \"auto:FORMAT\" or literal)")
	fs.StringVar(&f.note, "note", "", "Markdown note shown in the banner")
}

// addBannerFlags adds banner rendering flags to a FlagSet.
func addBannerFlags(fs *flag.FlagSet, f *bannerFlags) {
	fs.StringVar(&f.template, "template", "", "banner template name or .html path")
	fs.StringVar(&f.assets, "asset-path", "", "directory with custom templates/")
	fs.StringVar(&f.output, "banner-output", "", "where to write the banner PNG")
	fs.IntVar(&f.dpi, "dpi", 0, "pixels per inch of usable width (default 96)")
	fs.IntVar(&f.padding, "padding", paddingUnset, "pixels added to the banner width (default 15)")
	fs.Float64Var(&f.scale, "scale", 0, "render scale for sharper text (1-4)")
	fs.BoolVar(&f.noBanner, "no-banner-file", false, "do not write the banner PNG")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.profile, "page-size", "p", "", "page profile: a4, letter, legal")
}

// parseSignFlags parses sign command flags and returns positional args.
func parseSignFlags(args []string) (*signFlags, []string, error) {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	f := &signFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "signed document path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "banner rendering timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.open, "open", "", "open the result: always, never, auto")

	addCommonFlags(fs, &f.common)
	addSignatureFlags(fs, &f.signature)
	addBannerFlags(fs, &f.banner)
	addPageFlags(fs, &f.page)

	fs.Usage = func() { printSignUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
