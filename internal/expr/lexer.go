package expr

import "fmt"

// Lexer splits calculator source into tokens. Operators are matched greedily:
// three-character forms first, then two, then one.
type Lexer struct {
	src  string
	pos  int
	look *Token
}

// NewLexer returns a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (Token, error) {
	if lx.look != nil {
		return *lx.look, nil
	}
	tok, err := lx.scan()
	if err != nil {
		return Token{}, err
	}
	lx.look = &tok
	return tok, nil
}

// Next consumes and returns the next token. After the end of input it keeps
// returning EOF.
func (lx *Lexer) Next() (Token, error) {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}
	return lx.scan()
}

func (lx *Lexer) scan() (Token, error) {
	lx.skipTrivia()
	if lx.pos >= len(lx.src) {
		return Token{Kind: EOF, Pos: lx.pos}, nil
	}

	start := lx.pos
	ch := lx.src[lx.pos]
	switch {
	case isDigit(ch):
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
		if lx.pos < len(lx.src) && isIdentStart(lx.src[lx.pos]) {
			return Token{}, &SyntaxError{Pos: lx.pos, Msg: "malformed number"}
		}
		return Token{Kind: Number, Text: lx.src[start:lx.pos], Pos: start}, nil
	case isIdentStart(ch):
		for lx.pos < len(lx.src) && isIdentContinue(lx.src[lx.pos]) {
			lx.pos++
		}
		return Token{Kind: Ident, Text: lx.src[start:lx.pos], Pos: start}, nil
	}
	return lx.scanOperator()
}

// skipTrivia skips whitespace and '#' comments running to end of line.
func (lx *Lexer) skipTrivia() {
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case ' ', '\t', '\r', '\n':
			lx.pos++
		case '#':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		default:
			return
		}
	}
}

func (lx *Lexer) scanOperator() (Token, error) {
	start := lx.pos
	emit := func(k Kind) (Token, error) {
		return Token{Kind: k, Text: lx.src[start:lx.pos], Pos: start}, nil
	}

	switch {
	case lx.try3('<', '<', '='):
		return emit(ShlAssign)
	case lx.try3('>', '>', '='):
		return emit(ShrAssign)
	case lx.try2('<', '<'):
		return emit(Shl)
	case lx.try2('>', '>'):
		return emit(Shr)
	case lx.try2('=', '='):
		return emit(Eq)
	case lx.try2('!', '='):
		return emit(Ne)
	case lx.try2('<', '='):
		return emit(Le)
	case lx.try2('>', '='):
		return emit(Ge)
	case lx.try2('+', '+'):
		return emit(Inc)
	case lx.try2('-', '-'):
		return emit(Dec)
	case lx.try2('+', '='):
		return emit(PlusAssign)
	case lx.try2('-', '='):
		return emit(MinusAssign)
	case lx.try2('*', '='):
		return emit(StarAssign)
	case lx.try2('/', '='):
		return emit(SlashAssign)
	case lx.try2('%', '='):
		return emit(PercentAssign)
	case lx.try2('&', '='):
		return emit(AmpAssign)
	case lx.try2('|', '='):
		return emit(PipeAssign)
	case lx.try2('^', '='):
		return emit(CaretAssign)
	}

	ch := lx.src[lx.pos]
	lx.pos++
	switch ch {
	case '+':
		return emit(Plus)
	case '-':
		return emit(Minus)
	case '*':
		return emit(Star)
	case '/':
		return emit(Slash)
	case '%':
		return emit(Percent)
	case '&':
		return emit(Amp)
	case '|':
		return emit(Pipe)
	case '^':
		return emit(Caret)
	case '~':
		return emit(Tilde)
	case '<':
		return emit(Lt)
	case '>':
		return emit(Gt)
	case '=':
		return emit(Assign)
	case '(':
		return emit(LParen)
	case ')':
		return emit(RParen)
	case ',':
		return emit(Comma)
	case ';':
		return emit(Semicolon)
	}
	return Token{}, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unexpected character %q", ch)}
}

func (lx *Lexer) try2(a, b byte) bool {
	if lx.pos+1 < len(lx.src) && lx.src[lx.pos] == a && lx.src[lx.pos+1] == b {
		lx.pos += 2
		return true
	}
	return false
}

func (lx *Lexer) try3(a, b, c byte) bool {
	if lx.pos+2 < len(lx.src) && lx.src[lx.pos] == a && lx.src[lx.pos+1] == b && lx.src[lx.pos+2] == c {
		lx.pos += 3
		return true
	}
	return false
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
