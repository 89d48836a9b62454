package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tomcur/sprokkel"
)

// debounce coalesces the burst of events an editor save produces into one
// rebuild.
const debounce = 250 * time.Millisecond

// watch rebuilds the site whenever a file under it changes, skipping the
// output directory. Build errors are logged and watching continues.
func watch(builder *sprokkel.Builder, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	outDir := filepath.Join(builder.SitePath, sprokkel.OutDirName)
	if err := watchTree(watcher, builder.SitePath, outDir); err != nil {
		return err
	}
	logger.Info("watching for changes", "path", builder.SitePath)

	var pending *time.Timer
	rebuild := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(event.Name, outDir+string(filepath.Separator)) || event.Name == outDir {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())

			// New directories need their own watch before files land in them.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name, outDir); err != nil {
						logger.Warn("could not watch directory", "path", event.Name, "error", err)
					}
				}
			}

			if pending == nil {
				pending = time.AfterFunc(debounce, func() { rebuild <- struct{}{} })
			} else {
				pending.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-rebuild:
			pending = nil
			start := time.Now()
			if err := builder.Build(); err != nil {
				logger.Error("build failed", "error", err)
				continue
			}
			logger.Info("site rebuilt", "elapsed", time.Since(start).Round(time.Millisecond))
		}
	}
}

// watchTree registers root and every directory below it, except the output
// directory.
func watchTree(watcher *fsnotify.Watcher, root, outDir string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path == outDir || strings.HasPrefix(entry.Name(), ".") && path != root {
			return fs.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}
