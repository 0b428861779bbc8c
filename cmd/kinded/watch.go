package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sublee/kinded/internal/logger"
)

// debounceDelay batches the bursts of events an editor makes on save.
const debounceDelay = 200 * time.Millisecond

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [flags] [packages]",
		Short: "Regenerate kind types whenever Go files change",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, args)
		},
	}
}

// watch generates once and then again after every change to the Go files
// under the working directory until ctx is done. Generation errors are printed
// and do not stop watching.
func (a *app) watch(ctx context.Context, patterns []string) error {
	log := logger.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(a.fs, a.wd, a.cfg.Exclude)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(filepath.Join(a.wd, filepath.FromSlash(dir))); err != nil {
			log.Warn("Failed to watch directory", "dir", dir, "error", err)
		}
	}
	log.Info("File watcher initialized", "dirs", len(dirs))

	regenerate := func() {
		if err := a.generate(ctx, patterns, false); err != nil {
			message := err.Error()
			if a.color {
				message = colorize(message)
			}
			fmt.Fprintln(a.stderr, message)
		}
	}

	d := newDebouncer(debounceDelay)
	defer d.Stop()
	d.Trigger(regenerate)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopped watching")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			for _, dir := range a.newDirs(event) {
				if err := watcher.Add(filepath.Join(a.wd, filepath.FromSlash(dir))); err != nil {
					log.Warn("Failed to watch directory", "dir", dir, "error", err)
					continue
				}
				log.Debug("Watching new directory", "dir", dir)
			}
			if !a.isSourceEvent(event) {
				continue
			}
			log.Debug("Detected change", "file", event.Name)
			d.Trigger(regenerate)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("Watcher error", "error", err)
		}
	}
}

// isSourceEvent reports whether the event changes a Go file other than
// generated output.
func (a *app) isSourceEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(event.Name)
	return strings.HasSuffix(name, ".go") && name != a.cfg.Output
}

// newDirs returns the directories to start watching when event creates a
// directory, the directory itself and those nested in it. Ignored and
// excluded directories are skipped.
func (a *app) newDirs(event fsnotify.Event) []string {
	if !event.Has(fsnotify.Create) {
		return nil
	}
	info, err := a.fs.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return nil
	}

	var dirs []string
	_ = afero.Walk(a.fs, event.Name, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(a.wd, path)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			return filepath.SkipDir
		}
		rel = filepath.ToSlash(rel)
		if ignoredDir(rel) || excludedDir(rel, a.cfg.Exclude) {
			return filepath.SkipDir
		}
		dirs = append(dirs, rel)
		return nil
	})
	return dirs
}

// watchDirs returns the slash-separated directories under wd containing Go
// files, relative to wd. Directories created later are added by [app.newDirs]. Directories ignored by the go command and those
// matching the exclude patterns are skipped.
func watchDirs(fs afero.Fs, wd string, exclude []string) ([]string, error) {
	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(fs, wd)), "**/*.go")
	if err != nil {
		return nil, fmt.Errorf("failed to find Go files: %w", err)
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, match := range matches {
		dir := path.Dir(match)
		if seen[dir] {
			continue
		}
		seen[dir] = true

		if ignoredDir(dir) || excludedDir(dir, exclude) {
			continue
		}
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return dirs, nil
}

// ignoredDir reports whether the go command ignores packages in dir.
func ignoredDir(dir string) bool {
	for elem := range strings.SplitSeq(dir, "/") {
		if elem == "testdata" || elem == "vendor" {
			return true
		}
		if elem != "." && (strings.HasPrefix(elem, ".") || strings.HasPrefix(elem, "_")) {
			return true
		}
	}
	return false
}

func excludedDir(dir string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, dir); ok {
			return true
		}
	}
	return false
}

// debouncer runs the last triggered function after the delay passes without
// another trigger. Runs never overlap.
type debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	run   sync.Mutex
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay}
}

func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.run.Lock()
		defer d.run.Unlock()
		fn()
	})
}

// Stop cancels the pending run if any.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
