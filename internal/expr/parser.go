package expr

import (
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
)

// Binding powers, lowest first. Assignment is the only right-associative
// level.
const (
	precAssign = iota + 1
	precOr
	precXor
	precAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

func binaryPrec(k Kind) (prec int, rightAssoc bool) {
	if k.IsAssign() {
		return precAssign, true
	}
	switch k {
	case Pipe:
		return precOr, false
	case Caret:
		return precXor, false
	case Amp:
		return precAnd, false
	case Eq, Ne:
		return precEquality, false
	case Lt, Le, Gt, Ge:
		return precRelational, false
	case Shl, Shr:
		return precShift, false
	case Plus, Minus:
		return precAdditive, false
	case Star, Slash, Percent:
		return precMultiplicative, false
	}
	return 0, false
}

// Parser builds expression trees from a token stream.
type Parser struct {
	lx *Lexer
}

// Parse parses a program: one or more expressions separated by ';'. Empty
// statements are skipped. A program with no statements is a syntax error.
func Parse(src string) ([]Node, error) {
	p := &Parser{lx: NewLexer(src)}
	var stmts []Node
	for {
		tok, err := p.lx.Peek()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case EOF:
			if len(stmts) == 0 {
				return nil, &SyntaxError{Pos: tok.Pos, Msg: "empty expression"}
			}
			return stmts, nil
		case Semicolon:
			_, _ = p.lx.Next()
			continue
		}

		n, err := p.parseExpr(precAssign)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, n)

		tok, err = p.lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind != Semicolon && tok.Kind != EOF {
			return nil, unexpected(tok)
		}
		if tok.Kind == EOF {
			return stmts, nil
		}
	}
}

// ParseExpr parses exactly one expression.
func ParseExpr(src string) (Node, error) {
	p := &Parser{lx: NewLexer(src)}
	n, err := p.parseExpr(precAssign)
	if err != nil {
		return nil, err
	}
	tok, err := p.lx.Next()
	if err != nil {
		return nil, err
	}
	if tok.Kind != EOF {
		return nil, unexpected(tok)
	}
	return n, nil
}

// parseExpr is the Pratt loop: parse a unary operand, then fold in binary
// operators whose precedence is at least minPrec.
func (p *Parser) parseExpr(minPrec int) (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.lx.Peek()
		if err != nil {
			return nil, err
		}
		prec, rightAssoc := binaryPrec(tok.Kind)
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		_, _ = p.lx.Next()

		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right, err := p.parseExpr(next)
		if err != nil {
			return nil, err
		}

		if tok.Kind.IsAssign() {
			ref, ok := left.(*VarRef)
			if !ok {
				return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("cannot assign with %s to a non-variable", tok.Kind)}
			}
			left = &AssignExpr{Op: tok.Kind, Name: ref.Name, Value: right, Offset: tok.Pos}
			continue
		}
		left = &Binary{Op: tok.Kind, X: left, Y: right, Offset: tok.Pos}
	}
}

func (p *Parser) parseUnary() (Node, error) {
	tok, err := p.lx.Peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case Plus, Minus, Tilde:
		_, _ = p.lx.Next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: tok.Kind, X: x, Offset: tok.Pos}, nil
	case Inc, Dec:
		_, _ = p.lx.Next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		ref, ok := x.(*VarRef)
		if !ok {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("operand of %s must be a variable", tok.Kind)}
		}
		return &IncDec{Op: tok.Kind, Name: ref.Name, Offset: tok.Pos}, nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (Node, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lx.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != Inc && tok.Kind != Dec {
			return x, nil
		}
		ref, ok := x.(*VarRef)
		if !ok {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("operand of %s must be a variable", tok.Kind)}
		}
		_, _ = p.lx.Next()
		x = &IncDec{Op: tok.Kind, Name: ref.Name, Postfix: true, Offset: tok.Pos}
	}
}

func (p *Parser) parsePrimary() (Node, error) {
	tok, err := p.lx.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case Number:
		v, err := bigint.Parse(tok.Text)
		if err != nil {
			return nil, &SyntaxError{Pos: tok.Pos, Msg: err.Error()}
		}
		return &NumberLit{Value: v, Offset: tok.Pos}, nil
	case Ident:
		next, err := p.lx.Peek()
		if err != nil {
			return nil, err
		}
		if next.Kind == LParen {
			_, _ = p.lx.Next()
			return p.parseCall(tok)
		}
		return &VarRef{Name: tok.Text, Offset: tok.Pos}, nil
	case LParen:
		x, err := p.parseExpr(precAssign)
		if err != nil {
			return nil, err
		}
		if err := p.expect(RParen); err != nil {
			return nil, err
		}
		return x, nil
	}
	return nil, unexpected(tok)
}

// parseCall parses the argument list after "name(".
func (p *Parser) parseCall(name Token) (Node, error) {
	call := &Call{Name: name.Text, Offset: name.Pos}
	tok, err := p.lx.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == RParen {
		_, _ = p.lx.Next()
		return call, nil
	}
	for {
		arg, err := p.parseExpr(precAssign)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		tok, err := p.lx.Next()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case Comma:
			continue
		case RParen:
			return call, nil
		}
		return nil, unexpected(tok)
	}
}

func (p *Parser) expect(k Kind) error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	if tok.Kind != k {
		return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expected %s, found %s", k, describe(tok))}
	}
	return nil
}

func unexpected(tok Token) error {
	return &SyntaxError{Pos: tok.Pos, Msg: "unexpected " + describe(tok)}
}

func describe(tok Token) string {
	switch tok.Kind {
	case EOF:
		return "end of input"
	case Number, Ident:
		return fmt.Sprintf("%s %q", tok.Kind, tok.Text)
	}
	return fmt.Sprintf("%q", tok.Kind.String())
}
