package parse

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/sublee/kinded/internal/casing"
	"github.com/sublee/kinded/internal/kinded/model"
)

// ParseKindArgs parses the arguments of a //kinded:derive directive. text is
// everything after the directive name and pos is the position of text[0]:
//
//	(kind = DrinkKind, derive(Hash), skip_derive(From), display = "snake_case", attrs(...))
//
// An empty text means no options.
func ParseKindArgs(text string, pos token.Pos) (model.KindConfig, error) {
	var cfg model.KindConfig

	errs := parseArgs(text, pos, func(lx *lexer, key item) error {
		switch key.lit {
		case "kind":
			if _, err := lx.expect(token.ASSIGN, "after kind"); err != nil {
				return err
			}
			name, err := lx.ident("as kind name")
			if err != nil {
				return err
			}
			cfg.Kind = name.lit

		case "display":
			if _, err := lx.expect(token.ASSIGN, "after display"); err != nil {
				return err
			}
			s, lit, err := lx.string("as display")
			if err != nil {
				return err
			}
			policy, ok := casing.Parse(s)
			if !ok {
				return valueError{lx.errorAt(lit.off, "%s", invalidDisplayMessage(s))}
			}
			cfg.Display = &policy

		case "derive":
			if _, err := lx.expect(token.LPAREN, "after derive"); err != nil {
				return err
			}
			traits, err := lx.identList("as trait")
			if err != nil {
				return err
			}
			cfg.Derive = []model.Trait{}
			for _, t := range traits {
				cfg.Derive = append(cfg.Derive, model.Trait(t.lit))
			}

		case "skip_derive":
			if _, err := lx.expect(token.LPAREN, "after skip_derive"); err != nil {
				return err
			}
			traits, err := lx.identList("as trait")
			if err != nil {
				return err
			}
			var errs error
			cfg.Skip = []model.Trait{}
			for _, t := range traits {
				trait := model.Trait(t.lit)
				if !trait.IsSkippable() {
					errs = errors.Join(errs, lx.errorAt(t.off, "%s", unknownSkipMessage(t.lit)))
					continue
				}
				cfg.Skip = append(cfg.Skip, trait)
			}
			if errs != nil {
				return valueError{errs}
			}

		case "attrs":
			attrs, err := parseAttrs(lx)
			if err != nil {
				return err
			}
			cfg.Attrs = attrs

		default:
			return errUnknownKey
		}
		return nil
	})

	cfg.Pos = pos
	return cfg, errs
}

// ParseVariantArgs parses the arguments of a //kinded:variant directive:
//
//	(rename = "yerba mate", attrs(...))
func ParseVariantArgs(text string, pos token.Pos) (model.VariantConfig, error) {
	var cfg model.VariantConfig

	errs := parseArgs(text, pos, func(lx *lexer, key item) error {
		switch key.lit {
		case "rename":
			if _, err := lx.expect(token.ASSIGN, "after rename"); err != nil {
				return err
			}
			s, _, err := lx.string("as rename")
			if err != nil {
				return err
			}
			cfg.Rename = &s

		case "attrs":
			attrs, err := parseAttrs(lx)
			if err != nil {
				return err
			}
			cfg.Attrs = attrs

		default:
			return errUnknownKey
		}
		return nil
	})

	cfg.Pos = pos
	return cfg, errs
}

var errUnknownKey = errors.New("unknown key")

// valueError is an invalid option value. Its tokens are consumed, so parsing
// continues with the next option.
type valueError struct{ error }

// parseArgs parses "(key ..., key ..., ...)". parseOption consumes the value of
// a key. It returns errUnknownKey if the key is not an option.
//
// Duplicated and unknown keys are reported and skipped. A syntax error stops
// parsing because the rest cannot be tokenized reliably.
func parseArgs(text string, pos token.Pos, parseOption func(lx *lexer, key item) error) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lx, err := newLexer(text, pos)
	if err != nil {
		return err
	}
	if lx.peek().tok == token.EOF {
		// Only a trailing comment.
		return nil
	}

	if _, err := lx.expect(token.LPAREN, "to open options"); err != nil {
		return err
	}

	var errs error
	seen := make(map[string]bool)
	for lx.peek().tok != token.RPAREN {
		key, err := lx.ident("as option")
		if err != nil {
			return errors.Join(errs, err)
		}

		dup := seen[key.lit]
		seen[key.lit] = true

		var verr valueError
		err = parseOption(lx, key)
		switch {
		case errors.Is(err, errUnknownKey):
			errs = errors.Join(errs, lx.errorAt(key.off, "unknown attribute: %s", key.lit))
			if err := skipOption(lx); err != nil {
				return errors.Join(errs, err)
			}
		case errors.As(err, &verr):
			errs = errors.Join(errs, verr.error)
		case err != nil:
			return errors.Join(errs, err)
		}

		if dup {
			errs = errors.Join(errs, lx.errorAt(key.off, "duplicated attribute: %s", key.lit))
		}

		if err := lx.listSep(); err != nil {
			return errors.Join(errs, err)
		}
	}
	lx.next()

	if it := lx.peek(); it.tok != token.EOF {
		errs = errors.Join(errs, lx.errorAt(it.off, "unexpected %s after options", it))
	}
	return errs
}

// skipOption consumes tokens up to the next top-level comma or the closing
// parenthesis.
func skipOption(lx *lexer) error {
	depth := 0
	for {
		it := lx.peek()
		switch it.tok {
		case token.EOF:
			return lx.errorAt(it.off, `expected ")", found %s`, it)
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			if depth == 0 {
				return nil
			}
			depth--
		case token.COMMA:
			if depth == 0 {
				return nil
			}
		}
		lx.next()
	}
}

func parseAttrs(lx *lexer) ([]model.Attr, error) {
	if _, err := lx.expect(token.LPAREN, "after attrs"); err != nil {
		return nil, err
	}
	items, err := lx.rawList()
	if err != nil {
		return nil, err
	}

	attrs := []model.Attr{}
	for _, it := range items {
		if strings.ContainsAny(it.text, "\r\n") {
			return nil, valueError{&model.Error{Pos: it.pos, Msg: "attribute must be a single line"}}
		}
		attrs = append(attrs, model.Attr{Text: it.text, Pos: it.pos})
	}
	return attrs, nil
}

func invalidDisplayMessage(s string) string {
	var quoted []string
	for _, lit := range casing.Literals() {
		quoted = append(quoted, fmt.Sprintf("%q", lit))
	}
	return fmt.Sprintf("invalid value for display: %q; valid values are: %s", s, strings.Join(quoted, ", "))
}

func unknownSkipMessage(name string) string {
	var allowed []string
	for _, t := range model.Skippable() {
		allowed = append(allowed, t.String())
	}
	return fmt.Sprintf("unknown trait to skip: %s; allowed traits: %s", name, strings.Join(allowed, ", "))
}
