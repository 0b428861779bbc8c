package parse

import (
	"errors"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/sublee/kinded/internal/codefmt"
)

const (
	directivePrefix = "//kinded:"

	verbDerive  = "derive"
	verbVariant = "variant"
)

// directive is a "//kinded:verb(args)" comment.
type directive struct {
	verb    string
	args    string
	pos     token.Pos
	argsPos token.Pos
}

func (d directive) Pos() token.Pos { return d.pos }

// parseDirective splits a kinded directive comment into its verb and
// arguments. It returns false for other comments.
func parseDirective(c *ast.Comment) (directive, bool) {
	rest, ok := strings.CutPrefix(c.Text, directivePrefix)
	if !ok {
		return directive{}, false
	}

	n := 0
	for n < len(rest) && isIdentByte(rest[n]) {
		n++
	}

	return directive{
		verb:    rest[:n],
		args:    rest[n:],
		pos:     c.Slash,
		argsPos: c.Slash + token.Pos(len(directivePrefix)+n),
	}, true
}

func isIdentByte(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9' || b == '_'
}

// decl is a type declaration with kinded directives in its doc comment.
type decl struct {
	spec     *ast.TypeSpec
	obj      *types.TypeName
	derives  []directive
	variants []directive
}

func (d decl) Pos() token.Pos { return d.spec.Name.Pos() }

// scanFile finds type declarations having kinded directives. Directives in
// other comments are reported as misplaced.
func (p *Parser) scanFile(file *ast.File) ([]decl, error) {
	var decls []decl
	var errs error
	placed := make(map[*ast.Comment]bool)

	for _, d := range file.Decls {
		gen, ok := d.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			spec := spec.(*ast.TypeSpec)

			doc := spec.Doc
			if doc == nil && !gen.Lparen.IsValid() {
				// type Foo ... (not grouped)
				doc = gen.Doc
			}
			if doc == nil {
				continue
			}

			dcl := decl{spec: spec}
			for _, c := range doc.List {
				dir, ok := parseDirective(c)
				if !ok {
					continue
				}
				placed[c] = true

				switch dir.verb {
				case verbDerive:
					dcl.derives = append(dcl.derives, dir)
				case verbVariant:
					dcl.variants = append(dcl.variants, dir)
				default:
					err := codefmt.Errorf(p, dir, "unknown directive: kinded:%s", dir.verb)
					errs = errors.Join(errs, err)
				}
			}
			if len(dcl.derives) == 0 && len(dcl.variants) == 0 {
				continue
			}

			obj, ok := p.pkg.TypesInfo.Defs[spec.Name].(*types.TypeName)
			if !ok {
				continue
			}
			dcl.obj = obj
			decls = append(decls, dcl)
		}
	}

	for _, group := range file.Comments {
		for _, c := range group.List {
			if placed[c] {
				continue
			}
			if dir, ok := parseDirective(c); ok {
				err := codefmt.Errorf(p, dir, "misplaced directive: kinded:%s must be in the doc comment of a type declaration", dir.verb)
				errs = errors.Join(errs, err)
			}
		}
	}

	return decls, errs
}
