package kindedinternal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"github.com/sublee/kinded/internal/logger"
)

var Version string

// Options controls which packages [Main] loads and how it writes.
type Options struct {
	// Tags is the comma-separated build tags to use in addition to "kinded".
	Tags string

	// Tests indicates whether to include test files.
	Tests bool

	// Output is the name of the file to generate in each package.
	Output string

	// Exclude lists doublestar patterns of package directories to skip. They
	// are matched against slash-separated paths relative to the working
	// directory.
	Exclude []string

	// Concurrency limits the number of packages processed at once. Zero or
	// less means no limit.
	Concurrency int
}

// Main is the main entry point for kinded. It is used by the command-line tool
// directly.
//
// ctx is the context for loading packages. If the loading is too slow, ctx can
// cancel the operation. wd is the path of the working directory. env is the
// environment variables to use when running the tool. And patterns are the
// package patterns to process.
//
// It returns a map of output file paths to their contents. Packages without
// sum types to derive have no output. If any error occurs, it returns a non-nil
// error and no output at all.
func Main(ctx context.Context, wd string, env []string, opts Options, patterns []string) (map[string][]byte, error) {
	var outs map[string][]byte
	err := run(ctx, wd, env, opts, patterns, func(pkg *packages.Package, kd *Kinded) {
		code := kd.Generate()
		if len(code) == 0 {
			return
		}

		outDir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(wd, outDir); err == nil {
			outDir = rel
		}
		if outs == nil {
			outs = make(map[string][]byte)
		}
		outs[filepath.Join(outDir, opts.Output)] = code
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

// Inspect is like [Main] but returns the descriptions of the sum types instead
// of generated code. Descriptions are ordered by package path.
func Inspect(ctx context.Context, wd string, env []string, opts Options, patterns []string) ([]Description, error) {
	var descs []Description
	err := run(ctx, wd, env, opts, patterns, func(_ *packages.Package, kd *Kinded) {
		descs = append(descs, kd.Describe()...)
	})
	if err != nil {
		return nil, err
	}
	return descs, nil
}

// run builds every loaded package concurrently. Then it calls fn for each
// package in the load order if all builds succeeded.
func run(ctx context.Context, wd string, env []string, opts Options, patterns []string, fn func(*packages.Package, *Kinded)) error {
	log := logger.FromContext(ctx)

	pkgs, err := load(ctx, wd, env, opts.Tags, opts.Tests, patterns)
	if err != nil {
		return err
	}
	pkgs = exclude(wd, pkgs, opts.Exclude)
	log.Debug("Loaded packages", "count", len(pkgs))

	kds := make([]*Kinded, len(pkgs))
	errs := make([]error, len(pkgs))

	var g errgroup.Group
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, pkg := range pkgs {
		g.Go(func() error {
			kd, err := New(pkg)
			if err != nil {
				errs[i] = err
				return nil
			}
			if err := kd.Build(); err != nil {
				errs[i] = err
				return nil
			}
			kds[i] = kd
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		// err already contains comprehensive error messages. So we don't need
		// to attach another error message.
		return reorderErrors(err)
	}

	for i, pkg := range pkgs {
		fn(pkg, kds[i])
	}
	return nil
}

// load loads packages. The "kinded" build tag hides generated files so that
// stale kind types do not affect parsing. Type errors are tolerated because
// code may refer to kind types not generated yet. Other errors are fatal.
func load(ctx context.Context, wd string, env []string, tags string, tests bool, patterns []string) ([]*packages.Package, error) {
	log := logger.FromContext(ctx)

	cfg := &packages.Config{
		Mode:       packages.NeedDeps | packages.NeedFiles | packages.NeedImports | packages.NeedName | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo,
		Context:    ctx,
		Dir:        wd,
		Env:        env,
		BuildFlags: []string{"-tags=kinded"},
		Tests:      tests,
	}
	if tags != "" {
		cfg.BuildFlags[0] += "," + tags
	}

	// Load the packages based on the provided patterns.
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found: %v", patterns)
	}

	// Check for errors in the loaded packages.
	var errs error
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			if err.Kind == packages.TypeError {
				log.Debug("Tolerated type error", "pkg", pkg.PkgPath, "err", err.Msg)
				continue
			}

			if err.Pos == "" {
				errs = errors.Join(errs, errors.New(err.Msg))
				continue
			}

			path, rowcol, _ := strings.Cut(err.Pos, ":")
			if rel, relErr := filepath.Rel(wd, path); relErr == nil {
				err.Pos = rel + ":" + rowcol
			}
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}

	// Packages without Go files, such as test binaries, have nothing to
	// generate.
	pkgs = slices.DeleteFunc(pkgs, func(pkg *packages.Package) bool {
		return len(pkg.GoFiles) == 0 || len(pkg.Syntax) == 0
	})
	return pkgs, nil
}

// exclude drops packages whose directory matches any of the patterns.
func exclude(wd string, pkgs []*packages.Package, patterns []string) []*packages.Package {
	if len(patterns) == 0 {
		return pkgs
	}
	return slices.DeleteFunc(pkgs, func(pkg *packages.Package) bool {
		dir := filepath.Dir(pkg.GoFiles[0])
		if rel, err := filepath.Rel(wd, dir); err == nil {
			dir = rel
		}
		dir = filepath.ToSlash(dir)

		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, dir); ok {
				return true
			}
		}
		return false
	})
}

func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	// Flatten nested errors
	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			// errors.Join collapses errors with a single error having Unwrap()
			// []error method. The underlying errors could be retrieved using
			// the Unwrap() method.
			list = append(list, u.Unwrap()...)

			// The underlying errors are appended to the list. So the original
			// error can be removed.
			list[i] = nil
			continue
		}
	}
	list = slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})

	// Sort errors by message
	sort.Slice(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	return errors.Join(list...)
}
