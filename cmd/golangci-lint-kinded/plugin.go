// Package golangcilintkinded registers the kinded analyzer as a golangci-lint
// module plugin. To build a custom golangci-lint binary with this plugin, run
// the following command at this package's directory:
//
//	golangci-lint custom
//
// The resulting golangci-lint-kinded binary reports invalid kinded directives
// without running the generator.
package golangcilintkinded

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sublee/kinded/pkg/kindedanalysis"
)

func init() {
	register.Plugin("kinded", New)
}

// New creates the linter. It takes no settings.
func New(any) (register.LinterPlugin, error) {
	return Linter{}, nil
}

type Linter struct{}

func (Linter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{kindedanalysis.Analyzer}, nil
}

// GetLoadMode requires type information because variants are discovered by
// method sets.
func (Linter) GetLoadMode() string {
	return register.LoadModeTypesInfo
}
