// Command kinded generates kind types for sum types annotated with
// //kinded:derive directives.
//
// Usage:
//
//	kinded [flags] [packages]
//	kinded inspect [flags] [packages]
//	kinded watch [flags] [packages]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"github.com/sublee/kinded/internal/config"
	kindedinternal "github.com/sublee/kinded/internal/kinded"
)

var Version = "dev"

func init() {
	kindedinternal.Version = Version
}

func main() {
	a := &app{
		fs:      afero.NewOsFs(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		environ: os.Environ,
		getwd:   os.Getwd,
	}
	os.Exit(a.execute(context.Background(), os.Args[1:]))
}

// app holds what the commands share. The file system and the standard streams
// are replaceable in tests.
type app struct {
	fs      afero.Fs
	stdout  io.Writer
	stderr  io.Writer
	environ func() []string
	getwd   func() (string, error)

	// Resolved before a command runs.
	cfg   *config.Config
	wd    string
	color bool
}

// execute runs the command line and returns the exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		message := err.Error()
		if a.color {
			message = colorize(message)
		}
		fmt.Fprintln(a.stderr, message)
		return 1
	}
	return 0
}

// resolveColor decides whether to colorize diagnostics.
func resolveColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty()
	}
}

// isatty reports whether diagnostics go to a terminal. If it is true, we can
// use ANSI color codes.
func isatty() bool {
	_, err := unix.IoctlGetWinsize(int(os.Stderr.Fd()), unix.TIOCGWINSZ)
	return err == nil
}

var reDiag = regexp.MustCompile(`(?m)^(\S+:\d+:\d+: )(.+)$`)

// colorize adds ANSI color codes to diagnostics. The position of each line is
// dimmed and the message is red.
func colorize(message string) string {
	const (
		red   = "\033[31m"
		dim   = "\033[2m"
		reset = "\033[0m"
	)
	return reDiag.ReplaceAllString(message, dim+"${1}"+reset+red+"${2}"+reset)
}
