package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// buildFlags holds the options of the build command.
type buildFlags struct {
	sitePath string
	develop  bool
	watch    bool
	verbose  bool
}

const usage = `sprokkel builds a static site from djot and CommonMark entries.

Usage:
  sprokkel build [flags] [site-path]

Flags:
%s`

// parseFlags interprets everything after the program name. The only command
// is build; the site path defaults to the current directory.
func parseFlags(args []string) (buildFlags, error) {
	fs := flag.NewFlagSet("sprokkel", flag.ContinueOnError)

	flags := buildFlags{sitePath: "./"}
	fs.BoolVarP(&flags.develop, "develop", "d", false, "use the develop base URL and include unreleased entries")
	fs.BoolVarP(&flags.watch, "watch", "w", false, "rebuild when site files change")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug details")
	fs.Usage = func() {
		fmt.Printf(usage, fs.FlagUsages())
	}

	if err := fs.Parse(args); err != nil {
		return buildFlags{}, err
	}

	rest := fs.Args()
	if len(rest) == 0 || rest[0] != "build" {
		fs.Usage()
		return buildFlags{}, fmt.Errorf("expected the build command")
	}
	switch len(rest) {
	case 1:
	case 2:
		flags.sitePath = rest[1]
	default:
		fs.Usage()
		return buildFlags{}, fmt.Errorf("unexpected argument: %s", rest[2])
	}
	return flags, nil
}
