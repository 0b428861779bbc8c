package parse

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/kinded/internal/codefmt"
	"github.com/sublee/kinded/internal/kinded/model"
	"github.com/sublee/kinded/internal/typeinfo"
)

// Parser collects sum types marked by kinded directives in the underlying
// package.
type Parser struct {
	pkg       *packages.Package
	ms        *typeinfo.MethodSets
	generated map[*token.File]bool
}

func (p *Parser) Pkg() *packages.Package { return p.pkg }

// New creates a new [Parser].
func New(pkg *packages.Package) (*Parser, error) {
	if pkg.Name == "" {
		return nil, fmt.Errorf("need pkg name")
	}
	if pkg.PkgPath == "" {
		return nil, fmt.Errorf("need pkg path")
	}
	if pkg.Types == nil {
		return nil, fmt.Errorf("need pkg types")
	}
	if pkg.Fset == nil {
		return nil, fmt.Errorf("need pkg fset")
	}
	if pkg.Syntax == nil {
		return nil, fmt.Errorf("need pkg syntax")
	}
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("need pkg types info")
	}

	generated := make(map[*token.File]bool)
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			generated[pkg.Fset.File(file.Pos())] = true
		}
	}

	return &Parser{pkg: pkg, ms: new(typeinfo.MethodSets), generated: generated}, nil
}

// IsGenerated reports whether pos is in a generated file. Generated files are
// present when the package is analyzed without the kinded build tag.
func (p *Parser) IsGenerated(pos token.Pos) bool {
	return p.generated[p.pkg.Fset.File(pos)]
}

// Parse finds every sum type with a //kinded:derive directive and builds its
// model. Models are ordered by their declaration positions.
func (p *Parser) Parse() ([]*model.Model, error) {
	var decls []decl
	var errs error
	for _, file := range p.pkg.Syntax {
		if p.IsGenerated(file.Pos()) {
			continue
		}
		ds, err := p.scanFile(file)
		decls = append(decls, ds...)
		errs = errors.Join(errs, err)
	}

	variantCfgs, err := p.parseVariantConfigs(decls)
	errs = errors.Join(errs, err)

	owners := make(map[*types.TypeName]decl)
	var models []*model.Model
	for _, d := range decls {
		if len(d.derives) == 0 {
			continue
		}

		var cfgs []model.KindConfig
		for _, dir := range d.derives {
			cfg, err := ParseKindArgs(dir.args, dir.argsPos)
			if err != nil {
				errs = errors.Join(errs, p.codeError(err))
			}
			cfg.Pos = dir.pos
			cfgs = append(cfgs, cfg)
		}

		src, variantObjs := p.sourceType(d)
		for i, obj := range variantObjs {
			if owner, ok := owners[obj]; ok {
				err := codefmt.Errorf(p, obj, "%s is a variant of both %s and %s", obj.Name(), owner.obj.Name(), d.obj.Name())
				errs = errors.Join(errs, err)
				continue
			}
			owners[obj] = d

			if cfg, ok := variantCfgs[obj]; ok {
				src.Variants[i].Config = cfg
			}
			if err := p.checkNoKindMethod(obj); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		m, err := model.Build(src, cfgs)
		if err != nil {
			errs = errors.Join(errs, p.codeError(err))
			continue
		}
		models = append(models, m)
	}

	for _, d := range decls {
		if len(d.variants) == 0 {
			continue
		}
		if _, ok := owners[d.obj]; !ok {
			err := codefmt.Errorf(p, d.variants[0], "%s is not a variant of any enum deriving kinded", d.obj.Name())
			errs = errors.Join(errs, err)
		}
	}

	if errs != nil {
		return nil, errs
	}

	slices.SortFunc(models, func(a, b *model.Model) int {
		return int(a.Source.Pos - b.Source.Pos)
	})
	return models, nil
}

// parseVariantConfigs parses //kinded:variant directives.
func (p *Parser) parseVariantConfigs(decls []decl) (map[*types.TypeName]model.VariantConfig, error) {
	cfgs := make(map[*types.TypeName]model.VariantConfig)
	var errs error
	for _, d := range decls {
		for i, dir := range d.variants {
			if i != 0 {
				err := codefmt.Errorf(p, dir, "multiple kinded:variant directives are not allowed on %s", d.obj.Name())
				errs = errors.Join(errs, err)
				continue
			}

			cfg, err := ParseVariantArgs(dir.args, dir.argsPos)
			if err != nil {
				errs = errors.Join(errs, p.codeError(err))
			}
			cfg.Pos = dir.pos
			cfgs[d.obj] = cfg
		}
	}
	return cfgs, errs
}

// checkNoKindMethod reports an error if the variant declares Kind by itself.
// Kind promoted from an embedded field is allowed because the generated method
// shadows it.
func (p *Parser) checkNoKindMethod(obj *types.TypeName) error {
	t := typeinfo.TypeOf(obj.Type())
	fn, ok := p.ms.Lookup(t.Ref(), p.pkg.Types, "Kind")
	if !ok || p.IsGenerated(fn.Pos()) {
		return nil
	}

	recv := typeinfo.TypeOf(fn.Signature().Recv().Type()).Deref()
	if recv.Obj() != obj {
		return nil
	}
	return codefmt.Errorf(p, fn, "%s already has a Kind method", obj.Name())
}

// codeError converts model errors into [codefmt.CodeError]s.
func (p *Parser) codeError(err error) error {
	var errs error
	for _, err := range flatten(err) {
		var merr *model.Error
		if errors.As(err, &merr) {
			err = codefmt.Errorf(p, codefmt.Pos(merr.Pos), "%s", merr.Msg)
		}
		errs = errors.Join(errs, err)
	}
	return errs
}

func flatten(err error) []error {
	if u, ok := err.(interface{ Unwrap() []error }); ok {
		var list []error
		for _, err := range u.Unwrap() {
			list = append(list, flatten(err)...)
		}
		return list
	}
	return []error{err}
}
