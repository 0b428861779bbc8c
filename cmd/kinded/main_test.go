package main

import (
	"bytes"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sublee/kinded/internal/config"
	kindedinternal "github.com/sublee/kinded/internal/kinded"
	"github.com/sublee/kinded/internal/logger"
)

func TestColorize(t *testing.T) {
	message := "drink/drink.go:3:1: unsupported trait to derive: Serde\nno position"
	assert.Equal(t,
		"\033[2mdrink/drink.go:3:1: \033[0m\033[31munsupported trait to derive: Serde\033[0m\nno position",
		colorize(message),
	)
}

func TestResolveColor(t *testing.T) {
	assert.True(t, resolveColor("always"))
	assert.False(t, resolveColor("never"))
}

func TestFlagOverrides(t *testing.T) {
	flags := pflag.NewFlagSet("kinded", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.StringP("output", "o", "kinded_gen.go", "")
	flags.StringSlice("exclude", nil, "")
	flags.String("log-level", "info", "")
	flags.Bool("log-json", false, "")
	flags.Bool("dry-run", false, "")

	require.NoError(t, flags.Parse([]string{
		"--config", "x.yaml",
		"-o", "kinds_gen.go",
		"--exclude", "testdata/**,vendor/**",
		"--log-level", "debug",
		"--dry-run",
	}))

	assert.Equal(t, map[string]any{
		"output":    "kinds_gen.go",
		"exclude":   []string{"testdata/**", "vendor/**"},
		"log.level": "debug",
	}, flagOverrides(flags))
}

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	cfg := config.Default()
	return &app{
		fs:      afero.NewMemMapFs(),
		stdout:  &stdout,
		stderr:  &bytes.Buffer{},
		environ: func() []string { return []string{} },
		getwd:   func() (string, error) { return "/repo", nil },
		cfg:     cfg,
		wd:      "/repo",
	}, &stdout
}

func TestWrite(t *testing.T) {
	ctx := logger.ContextWithLogger(t.Context(), logger.NewLogger(logger.TestConfig()))
	outs := map[string][]byte{
		filepath.Join("drink", "kinded_gen.go"): []byte("package drink\n"),
		filepath.Join("shape", "kinded_gen.go"): []byte("package shape\n"),
	}

	t.Run("Should write generated files under the working directory", func(t *testing.T) {
		a, stdout := newTestApp(t)
		require.NoError(t, a.write(ctx, outs, false))

		code, err := afero.ReadFile(a.fs, filepath.Join("/repo", "drink", "kinded_gen.go"))
		require.NoError(t, err)
		assert.Equal(t, "package drink\n", string(code))

		code, err = afero.ReadFile(a.fs, filepath.Join("/repo", "shape", "kinded_gen.go"))
		require.NoError(t, err)
		assert.Equal(t, "package shape\n", string(code))
		assert.Empty(t, stdout.String())
	})

	t.Run("Should print instead of writing in dry-run mode", func(t *testing.T) {
		a, stdout := newTestApp(t)
		require.NoError(t, a.write(ctx, outs, true))

		exists, err := afero.Exists(a.fs, filepath.Join("/repo", "drink", "kinded_gen.go"))
		require.NoError(t, err)
		assert.False(t, exists)

		want := "// " + filepath.Join("drink", "kinded_gen.go") + "\npackage drink\n\n" +
			"// " + filepath.Join("shape", "kinded_gen.go") + "\npackage shape\n\n"
		assert.Equal(t, want, stdout.String())
	})

	t.Run("Should keep files with the same content", func(t *testing.T) {
		a, _ := newTestApp(t)
		path := filepath.Join("/repo", "drink", "kinded_gen.go")

		base := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(base, path, []byte("package drink\n"), 0o644))
		a.fs = afero.NewReadOnlyFs(base)

		err := a.write(ctx, map[string][]byte{filepath.Join("drink", "kinded_gen.go"): []byte("package drink\n")}, false)
		assert.NoError(t, err)

		err = a.write(ctx, map[string][]byte{filepath.Join("drink", "kinded_gen.go"): []byte("package drink // changed\n")}, false)
		assert.ErrorContains(t, err, "failed to write")
	})
}

func TestEncodeDescriptions(t *testing.T) {
	descs := []kindedinternal.Description{{
		Package:  "example.com/drink",
		Position: "drink.go:4:6",
		Variants: []kindedinternal.DescribedVariant{{Name: "Mate", Shape: "unit", Position: "drink.go:6:6"}},
	}}

	t.Run("Should encode JSON by default", func(t *testing.T) {
		data, err := encodeDescriptions(descs, "json")
		require.NoError(t, err)
		assert.Contains(t, string(data), `"package": "example.com/drink"`)
		assert.Contains(t, string(data), `"shape": "unit"`)
	})

	t.Run("Should encode YAML", func(t *testing.T) {
		data, err := encodeDescriptions(descs, "yaml")
		require.NoError(t, err)
		assert.Contains(t, string(data), "package: example.com/drink")
		assert.Contains(t, string(data), "shape: unit")
	})

	t.Run("Should encode nothing as an empty list", func(t *testing.T) {
		data, err := encodeDescriptions(nil, "json")
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})
}

func TestWatchDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{
		"main.go",
		"drink/drink.go",
		"drink/kinded_gen.go",
		"shape/circle/circle.go",
		"testdata/fixture/x.go",
		"vendor/example.com/y/y.go",
		".cache/z.go",
		"_old/old.go",
		"legacy/legacy.go",
		"docs/README.md",
	} {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("/repo", filepath.FromSlash(name)), []byte("package x\n"), 0o644))
	}

	dirs, err := watchDirs(fs, "/repo", []string{"legacy"})
	require.NoError(t, err)
	assert.Equal(t, []string{".", "drink", "shape/circle"}, dirs)
}

func TestIsSourceEvent(t *testing.T) {
	a, _ := newTestApp(t)

	assert.True(t, a.isSourceEvent(fsnotify.Event{Name: "/repo/drink/drink.go", Op: fsnotify.Write}))
	assert.True(t, a.isSourceEvent(fsnotify.Event{Name: "/repo/drink/tea.go", Op: fsnotify.Create}))
	assert.False(t, a.isSourceEvent(fsnotify.Event{Name: "/repo/drink/kinded_gen.go", Op: fsnotify.Write}))
	assert.False(t, a.isSourceEvent(fsnotify.Event{Name: "/repo/drink/notes.txt", Op: fsnotify.Write}))
	assert.False(t, a.isSourceEvent(fsnotify.Event{Name: "/repo/drink/drink.go", Op: fsnotify.Chmod}))
}

func TestNewDirs(t *testing.T) {
	a, _ := newTestApp(t)
	a.cfg.Exclude = []string{"shape/legacy"}
	for _, dir := range []string{"shape/square/inner", "shape/testdata", "shape/legacy", "shape/.cache"} {
		require.NoError(t, a.fs.MkdirAll(filepath.Join("/repo", filepath.FromSlash(dir)), 0o755))
	}
	require.NoError(t, afero.WriteFile(a.fs, "/repo/shape/shape.go", []byte("package shape\n"), 0o644))

	t.Run("Should watch a created directory and its subdirectories", func(t *testing.T) {
		dirs := a.newDirs(fsnotify.Event{Name: "/repo/shape", Op: fsnotify.Create})
		assert.Equal(t, []string{"shape", "shape/square", "shape/square/inner"}, dirs)
	})

	t.Run("Should ignore files and other operations", func(t *testing.T) {
		assert.Empty(t, a.newDirs(fsnotify.Event{Name: "/repo/shape/shape.go", Op: fsnotify.Create}))
		assert.Empty(t, a.newDirs(fsnotify.Event{Name: "/repo/shape", Op: fsnotify.Write}))
		assert.Empty(t, a.newDirs(fsnotify.Event{Name: "/repo/gone", Op: fsnotify.Create}))
		assert.Empty(t, a.newDirs(fsnotify.Event{Name: "/repo/shape/testdata", Op: fsnotify.Create}))
	})
}

func TestDebouncer(t *testing.T) {
	t.Run("Should run once after a burst", func(t *testing.T) {
		var runs atomic.Int32
		d := newDebouncer(20 * time.Millisecond)
		defer d.Stop()

		for range 5 {
			d.Trigger(func() { runs.Add(1) })
		}

		assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(1), runs.Load())
	})

	t.Run("Should not run after stop", func(t *testing.T) {
		var runs atomic.Int32
		d := newDebouncer(20 * time.Millisecond)

		d.Trigger(func() { runs.Add(1) })
		d.Stop()

		time.Sleep(50 * time.Millisecond)
		assert.Zero(t, runs.Load())
	})
}

func TestExecuteInvalidConfig(t *testing.T) {
	a, _ := newTestApp(t)
	var stderr bytes.Buffer
	a.stderr = &stderr

	code := a.execute(t.Context(), []string{"--color", "sometimes", "./..."})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `color must be one of auto, always, never: "sometimes"`)
}

func TestExecuteReadsConfigInWorkingDirectory(t *testing.T) {
	a, _ := newTestApp(t)
	var stderr bytes.Buffer
	a.stderr = &stderr
	require.NoError(t, afero.WriteFile(a.fs, "/repo/.kinded.yaml", []byte("color: sometimes\n"), 0o644))

	code := a.execute(t.Context(), []string{"./..."})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), `color must be one of auto, always, never: "sometimes"`)
}
