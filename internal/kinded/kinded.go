package kindedinternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io"

	"golang.org/x/tools/go/packages"

	"github.com/sublee/kinded/internal/codefmt"
	"github.com/sublee/kinded/internal/kinded/emit"
	"github.com/sublee/kinded/internal/kinded/model"
	"github.com/sublee/kinded/internal/kinded/parse"
	"github.com/sublee/kinded/internal/kinded/synth"
)

// Kinded generates kind types for the target package. Call [Build] and then
// [Generate] to get the generated code. All potential errors are returned by
// [Build]. Once [Build] succeeds, [Generate] never fails.
type Kinded struct {
	p   *parse.Parser
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer

	models []*model.Model
}

// New creates a new [Kinded] for the given package. If the package does not
// satisfy the requirements, an error is returned. The package must have its
// Syntax, Types and TypesInfo.
func New(pkg *packages.Package) (*Kinded, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Kinded{
		p:   parser,
		ns:  newNS(parser),
		buf: &buf,
		w:   codefmt.NewWriter(&buf, pkg),
	}, nil
}

// newNS reserves the names declared in the package except those in generated
// files. Generated declarations are replaced by the next generation.
func newNS(p *parse.Parser) codefmt.NS {
	ns := make(codefmt.NS)
	scope := p.Pkg().Types.Scope()
	for _, name := range scope.Names() {
		if !p.IsGenerated(scope.Lookup(name).Pos()) {
			ns.Reserve(name)
		}
	}
	return ns
}

// Build parses sum types and checks that their kind types can be generated.
// All potential errors are returned by this method. It must be called before
// [Generate].
func (kd *Kinded) Build() error {
	models, err := kd.p.Parse()
	if err != nil {
		return err
	}

	var errs error
	for _, m := range models {
		errs = errors.Join(errs, emit.Check(kd.p, m))
	}
	errs = errors.Join(errs, kd.reserveNames(models))
	if errs != nil {
		return errs
	}

	kd.models = models
	return nil
}

// reserveNames reserves the package-level names to generate. A name already
// declared in the package or generated for another sum type is an error.
func (kd *Kinded) reserveNames(models []*model.Model) error {
	scope := kd.p.Pkg().Types.Scope()
	generatedFor := make(map[string]string)

	var errs error
	for _, m := range models {
		pos := codefmt.Pos(m.Config.Pos)
		for _, name := range generatedNames(synth.Kind(m)) {
			if source, ok := generatedFor[name]; ok {
				err := codefmt.Errorf(kd.p, pos, "cannot generate %s for %s: also generated for %s", name, m.Source.Name, source)
				errs = errors.Join(errs, err)
				continue
			}
			generatedFor[name] = m.Source.Name

			if kd.ns.Reserve(name) {
				continue
			}
			if obj := scope.Lookup(name); obj != nil {
				err := codefmt.Errorf(kd.p, pos, "cannot generate %s: already declared at %b", name, obj)
				errs = errors.Join(errs, err)
			}
		}
	}
	return errs
}

func generatedNames(kt synth.KindType) []string {
	names := []string{kt.Name}
	for _, v := range kt.Variants {
		names = append(names, v.Const)
	}
	for _, name := range []string{kt.ParseFunc, kt.OfFunc, kt.OfPtrFunc} {
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Generate generates kind types for the package. It must be called after
// [Build] succeeds. It returns nil if the package has no sum type to derive.
func (kd *Kinded) Generate() []byte {
	if len(kd.models) == 0 {
		return nil
	}

	for _, m := range kd.models {
		emit.Emit(kd.w, kd.ns, synth.Kind(m), synth.Augment(m))
	}
	return kd.frameCode()
}

// Description is the synthesized form of a sum type. It is printed by the
// inspect command.
type Description struct {
	Package  string             `json:"package" yaml:"package"`
	Position string             `json:"position" yaml:"position"`
	Kind     synth.KindType     `json:"kind" yaml:"kind"`
	Augment  synth.Augmentation `json:"augment" yaml:"augment"`
	Variants []DescribedVariant `json:"variants" yaml:"variants"`
}

// DescribedVariant is a variant of a sum type as it was discovered.
type DescribedVariant struct {
	Name     string `json:"name" yaml:"name"`
	Shape    string `json:"shape" yaml:"shape"`
	Position string `json:"position" yaml:"position"`
}

// Describe returns the descriptions of the sum types found by [Build].
func (kd *Kinded) Describe() []Description {
	var descs []Description
	for _, m := range kd.models {
		desc := Description{
			Package:  kd.p.Pkg().PkgPath,
			Position: codefmt.FormatPos(kd.p, m.Source.Pos),
			Kind:     synth.Kind(m),
			Augment:  synth.Augment(m),
		}
		for _, v := range m.Source.Variants {
			desc.Variants = append(desc.Variants, DescribedVariant{
				Name:     v.Name,
				Shape:    v.Shape.String(),
				Position: codefmt.FormatPos(kd.p, v.Pos),
			})
		}
		descs = append(descs, desc)
	}
	return descs
}

func (kd *Kinded) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !kinded\n\n")
	fmt.Fprintf(&buf, "// Code generated by github.com/sublee/kinded%s. DO NOT EDIT.\n\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n\n", kd.p.Pkg().Name)

	if names := kd.w.ImportNames(); len(names) != 0 {
		fmt.Fprintf(&buf, "import (\n")
		for _, name := range names {
			imp := kd.w.Imports()[name]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", name, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n\n")
	}

	_, _ = io.Copy(&buf, kd.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
