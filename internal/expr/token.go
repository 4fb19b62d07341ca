package expr

// Kind identifies a lexical token.
type Kind int

const (
	EOF Kind = iota
	Number
	Ident
	LParen
	RParen
	Comma
	Semicolon

	// Binary and unary operators.
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	Inc
	Dec

	// Assignment operators.
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
)

var kindNames = [...]string{
	EOF:           "end of input",
	Number:        "number",
	Ident:         "identifier",
	LParen:        "(",
	RParen:        ")",
	Comma:         ",",
	Semicolon:     ";",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	Shl:           "<<",
	Shr:           ">>",
	Eq:            "==",
	Ne:            "!=",
	Lt:            "<",
	Le:            "<=",
	Gt:            ">",
	Ge:            ">=",
	Inc:           "++",
	Dec:           "--",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsAssign reports whether k is = or one of the compound assignments.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= ShrAssign
}

// compoundOp maps a compound assignment to the binary operator it applies.
func (k Kind) compoundOp() Kind {
	switch k {
	case PlusAssign:
		return Plus
	case MinusAssign:
		return Minus
	case StarAssign:
		return Star
	case SlashAssign:
		return Slash
	case PercentAssign:
		return Percent
	case AmpAssign:
		return Amp
	case PipeAssign:
		return Pipe
	case CaretAssign:
		return Caret
	case ShlAssign:
		return Shl
	case ShrAssign:
		return Shr
	}
	return EOF
}

// Token is a lexeme with its byte offset in the source.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}
