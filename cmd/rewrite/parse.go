package main

import (
	"context"
	"os"
	"strconv"

	"github.com/slowlang/rewrite/ir"
	"tlog.app/go/errors"
)

// exprType is the type every value in the tiny textual syntax carries:
// there is no type inference here, only enough surface to build trees
// for the matcher to chew on.
var exprType = ir.Type{Code: ir.Int, Bits: 32, Lanes: 1}

// parseExprFile reads name and parses it as a single expression, the
// same read-then-parse shape as compiler/parse.ParseFile in the
// teacher: os.ReadFile wrapped with errors.Wrap, then handed to a
// parser.
func parseExprFile(ctx context.Context, name string) (ir.Expr, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	e, err := parseExpr(string(data))
	if err != nil {
		return nil, errors.Wrap(err, "parse %v", name)
	}

	return e, nil
}

// exprScanner is a minimal recursive-descent parser for a tiny
// expression syntax: integer literals, variable names, the arithmetic
// operators + - * / %, parens, unary -, and min(a, b) / max(a, b)
// calls. It exists to give cmd/rewrite an apply subcommand something
// to run the rule table over without depending on the teacher's own
// grammar package, which parses a whole source language, not bare
// expressions.
type exprScanner struct {
	s   string
	pos int
}

func parseExpr(s string) (ir.Expr, error) {
	p := &exprScanner{s: s}

	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if p.pos != len(p.s) {
		return nil, errors.New("unexpected trailing input at byte %d", p.pos)
	}

	return e, nil
}

func (p *exprScanner) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *exprScanner) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *exprScanner) parseSum() (ir.Expr, error) {
	l, err := p.parseProduct()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek() {
		case '+':
			p.pos++
			r, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			l = &ir.Add{T: exprType, L: l, R: r}
		case '-':
			p.pos++
			r, err := p.parseProduct()
			if err != nil {
				return nil, err
			}
			l = &ir.Sub{T: exprType, L: l, R: r}
		default:
			return l, nil
		}
	}
}

func (p *exprScanner) parseProduct() (ir.Expr, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek() {
		case '*':
			p.pos++
			r, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			l = &ir.Mul{T: exprType, L: l, R: r}
		case '/':
			p.pos++
			r, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			l = &ir.Div{T: exprType, L: l, R: r}
		case '%':
			p.pos++
			r, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			l = &ir.Mod{T: exprType, L: l, R: r}
		default:
			return l, nil
		}
	}
}

func (p *exprScanner) parseUnary() (ir.Expr, error) {
	if p.peek() == '-' {
		p.pos++
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ir.Sub{T: exprType, L: ir.MakeConstInt(exprType, 0), R: e}, nil
	}

	return p.parseAtom()
}

func (p *exprScanner) parseAtom() (ir.Expr, error) {
	c := p.peek()

	switch {
	case c == '(':
		p.pos++
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, errors.New("expected ')' at byte %d", p.pos)
		}
		p.pos++
		return e, nil
	case c >= '0' && c <= '9':
		return p.parseNumber()
	case isIdentStart(c):
		return p.parseIdentOrCall()
	default:
		return nil, errors.New("unexpected character %q at byte %d", c, p.pos)
	}
}

func (p *exprScanner) parseNumber() (ir.Expr, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}

	v, err := strconv.ParseInt(p.s[start:p.pos], 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "number")
	}

	return ir.MakeConstInt(exprType, v), nil
}

func (p *exprScanner) parseIdentOrCall() (ir.Expr, error) {
	start := p.pos
	for p.pos < len(p.s) && isIdentPart(p.s[p.pos]) {
		p.pos++
	}
	name := p.s[start:p.pos]

	if p.peek() != '(' {
		return &ir.Var{T: exprType, Name: name}, nil
	}

	p.pos++

	a, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.peek() != ',' {
		return nil, errors.New("expected ',' in %s(...) at byte %d", name, p.pos)
	}
	p.pos++

	b, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.peek() != ')' {
		return nil, errors.New("expected ')' in %s(...) at byte %d", name, p.pos)
	}
	p.pos++

	switch name {
	case "min":
		return &ir.Min{T: exprType, L: a, R: b}, nil
	case "max":
		return &ir.Max{T: exprType, L: a, R: b}, nil
	default:
		return nil, errors.New("unknown function %q", name)
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
