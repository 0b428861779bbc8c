package main

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sublee/kinded/internal/config"
	kindedinternal "github.com/sublee/kinded/internal/kinded"
	"github.com/sublee/kinded/internal/logger"
)

// configKeys maps flags to the configuration keys they override.
var configKeys = map[string]string{
	"tags":        "tags",
	"tests":       "tests",
	"output":      "output",
	"exclude":     "exclude",
	"concurrency": "concurrency",
	"color":       "color",
	"format":      "format",
	"log-level":   "log.level",
	"log-json":    "log.json",
}

func (a *app) rootCmd() *cobra.Command {
	var dryRun bool
	root := &cobra.Command{
		Use:   "kinded [flags] [packages]",
		Short: "Generate kind types for sum types",
		Long: `Kinded generates a kind type for every sum type annotated with a
//kinded:derive directive. A kind type is an enum with one value per variant.
Generated code is written to kinded_gen.go in each package by default.`,
		Version:           Version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd.Context(), args, dryRun)
		},
	}

	d := config.Default()
	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default "+config.FileName+" if present)")
	pf.StringP("tags", "b", d.Tags, "comma-separated build tags")
	pf.BoolP("tests", "t", d.Tests, "include tests")
	pf.StringP("output", "o", d.Output, "output file name")
	pf.StringSlice("exclude", d.Exclude, "doublestar patterns of package directories to skip")
	pf.IntP("concurrency", "j", d.Concurrency, "number of packages processed at once")
	pf.StringP("color", "c", d.Color, "colorize (auto|always|never)")
	pf.String("log-level", d.Log.Level, "log level (debug|info|warn|error|disabled)")
	pf.Bool("log-json", d.Log.JSON, "write logs in JSON")

	root.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print generated code instead of writing files")

	root.AddCommand(a.inspectCmd(), a.watchCmd())
	return root
}

// setup loads the configuration and installs the logger into the context of
// the command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	file, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	wd, err := a.getwd()
	if err != nil {
		return err
	}
	a.wd = wd

	cfg, err := config.Load(config.Options{
		Fs:      a.fs,
		Dir:     wd,
		File:    file,
		Environ: a.environ(),
		Flags:   flagOverrides(cmd.Flags()),
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.color = resolveColor(cfg.Color)

	log := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.Log.Level),
		Output:     a.stderr,
		JSON:       cfg.Log.JSON,
		TimeFormat: "15:04:05",
	})
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
	return nil
}

// flagOverrides collects the flags set on the command line by their
// configuration keys.
func flagOverrides(flags *pflag.FlagSet) map[string]any {
	overrides := make(map[string]any)
	flags.Visit(func(f *pflag.Flag) {
		key, ok := configKeys[f.Name]
		if !ok {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			overrides[key] = sv.GetSlice()
			return
		}
		overrides[key] = f.Value.String()
	})
	return overrides
}

func (a *app) options() kindedinternal.Options {
	return kindedinternal.Options{
		Tags:        a.cfg.Tags,
		Tests:       a.cfg.Tests,
		Output:      a.cfg.Output,
		Exclude:     a.cfg.Exclude,
		Concurrency: a.cfg.Concurrency,
	}
}

// generate runs kinded on the packages and writes the generated files.
func (a *app) generate(ctx context.Context, patterns []string, dryRun bool) error {
	outs, err := kindedinternal.Main(ctx, a.wd, a.environ(), a.options(), patterns)
	if err != nil {
		return err
	}
	return a.write(ctx, outs, dryRun)
}

// write writes generated files in path order. Files with the same content are
// left untouched to keep their modification times. In dry-run mode, the code
// is printed instead.
func (a *app) write(ctx context.Context, outs map[string][]byte, dryRun bool) error {
	log := logger.FromContext(ctx)

	for _, out := range slices.Sorted(maps.Keys(outs)) {
		code := outs[out]
		if dryRun {
			fmt.Fprintf(a.stdout, "// %s\n%s\n", out, code)
			continue
		}

		path := out
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.wd, path)
		}

		if old, err := afero.ReadFile(a.fs, path); err == nil && bytes.Equal(old, code) {
			log.Debug("Unchanged", "file", out)
			continue
		}
		if err := afero.WriteFile(a.fs, path, code, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		log.Info("Generated", "file", out)
	}
	return nil
}
