// Command sprokkel renders a site directory of djot and CommonMark entries
// into a static site.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/tomcur/sprokkel"
)

// Exit codes, Unix convention: 0=success, 1=general, 2=usage.
const (
	exitSuccess = 0
	exitGeneral = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	level := slog.LevelInfo
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// maxprocs.Set only fails on an invalid GOMAXPROCS env value; the
	// runtime default applies and the build proceeds.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	builder := &sprokkel.Builder{
		SitePath: flags.sitePath,
		Develop:  flags.develop,
		Logger:   logger,
	}

	if err := builder.Build(); err != nil {
		logger.Error("build failed", "error", err)
		if !flags.watch {
			if errors.Is(err, sprokkel.ErrNoEntriesDir) || errors.Is(err, sprokkel.ErrConfig) {
				return exitUsage
			}
			return exitGeneral
		}
	}
	if !flags.watch {
		logger.Info("site built", "path", flags.sitePath)
		return exitSuccess
	}

	if err := watch(builder, logger); err != nil {
		logger.Error("watch failed", "error", err)
		return exitGeneral
	}
	return exitSuccess
}
