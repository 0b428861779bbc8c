package parse

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/sublee/kinded/internal/kinded/model"
)

// item is a token of directive arguments. off is the byte offset in the
// argument text.
type item struct {
	tok token.Token
	lit string
	off int
}

func (it item) String() string {
	switch {
	case it.tok == token.EOF:
		return "end of directive"
	case it.tok.IsLiteral():
		return it.lit
	}
	return strconv.Quote(it.tok.String())
}

// lexer tokenizes directive arguments with the Go scanner. Positions of
// reported errors are relative to base, the position of the first byte of the
// text.
type lexer struct {
	src   string
	base  token.Pos
	items []item
	i     int
}

func newLexer(src string, base token.Pos) (*lexer, error) {
	var errPos token.Position
	var errMsg string

	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		if errMsg == "" {
			errPos, errMsg = pos, msg
		}
	}, 0)

	lx := &lexer{src: src, base: base}
	for {
		pos, tok, lit := s.Scan()
		if tok == token.SEMICOLON && lit == "\n" {
			// Automatic semicolon at the end of the text.
			continue
		}
		lx.items = append(lx.items, item{tok, lit, file.Offset(pos)})
		if tok == token.EOF {
			break
		}
	}

	if errMsg != "" {
		return nil, lx.errorAt(errPos.Offset, "%s", errMsg)
	}
	return lx, nil
}

func (lx *lexer) peek() item { return lx.items[lx.i] }

func (lx *lexer) next() item {
	it := lx.items[lx.i]
	if it.tok != token.EOF {
		lx.i++
	}
	return it
}

func (lx *lexer) errorAt(off int, format string, args ...any) error {
	return &model.Error{Pos: lx.base + token.Pos(off), Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) expect(tok token.Token, context string) (item, error) {
	it := lx.next()
	if it.tok != tok {
		return it, lx.errorAt(it.off, "expected %q %s, found %s", tok.String(), context, it)
	}
	return it, nil
}

func (lx *lexer) ident(context string) (item, error) {
	it := lx.next()
	if it.tok != token.IDENT {
		return it, lx.errorAt(it.off, "expected identifier %s, found %s", context, it)
	}
	return it, nil
}

func (lx *lexer) string(context string) (string, item, error) {
	it := lx.next()
	if it.tok != token.STRING {
		return "", it, lx.errorAt(it.off, "expected string literal %s, found %s", context, it)
	}
	s, err := strconv.Unquote(it.lit)
	if err != nil {
		return "", it, lx.errorAt(it.off, "invalid string literal %s", it.lit)
	}
	return s, it, nil
}

// identList parses "(A, B, ...)" after the opening parenthesis is consumed.
func (lx *lexer) identList(context string) ([]item, error) {
	var items []item
	for {
		if lx.peek().tok == token.RPAREN {
			lx.next()
			return items, nil
		}

		it, err := lx.ident(context)
		if err != nil {
			return nil, err
		}
		items = append(items, it)

		if err := lx.listSep(); err != nil {
			return nil, err
		}
	}
}

// listSep consumes a comma or leaves a closing parenthesis.
func (lx *lexer) listSep() error {
	switch it := lx.peek(); it.tok {
	case token.COMMA:
		lx.next()
		return nil
	case token.RPAREN:
		return nil
	default:
		return lx.errorAt(it.off, `expected "," or ")", found %s`, it)
	}
}

// rawList parses "(blob, blob, ...)" after the opening parenthesis is consumed.
// A blob is the source text between top-level commas. A blob of a single
// string literal is unquoted.
func (lx *lexer) rawList() ([]rawItem, error) {
	var items []rawItem
	for {
		if lx.peek().tok == token.RPAREN {
			lx.next()
			return items, nil
		}

		start := lx.peek()
		depth := 0
		n := 0
	blob:
		for {
			it := lx.peek()
			switch it.tok {
			case token.EOF:
				return nil, lx.errorAt(it.off, `expected ")", found %s`, it)
			case token.LPAREN, token.LBRACK, token.LBRACE:
				depth++
			case token.RPAREN, token.RBRACK, token.RBRACE:
				if depth == 0 {
					break blob
				}
				depth--
			case token.COMMA:
				if depth == 0 {
					break blob
				}
			}
			lx.next()
			n++
		}

		end := lx.peek()
		if n == 0 {
			return nil, lx.errorAt(end.off, "empty attribute")
		}

		text := strings.TrimSpace(lx.src[start.off:end.off])
		if n == 1 && start.tok == token.STRING {
			s, err := strconv.Unquote(start.lit)
			if err != nil {
				return nil, lx.errorAt(start.off, "invalid string literal %s", start.lit)
			}
			text = s
		}
		items = append(items, rawItem{text, lx.base + token.Pos(start.off)})

		if err := lx.listSep(); err != nil {
			return nil, err
		}
	}
}

type rawItem struct {
	text string
	pos  token.Pos
}

