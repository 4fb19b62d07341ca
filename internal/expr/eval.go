package expr

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"github.com/agbru/bigcalc/internal/bigint"
)

// DefaultMaxBits bounds the width of results produced by <<, * and pow when
// Options.MaxBits is zero.
const DefaultMaxBits = 1 << 26

// Options configures an Evaluator.
type Options struct {
	// MaxBits limits the bit length of values produced by left shifts,
	// multiplication and pow. Zero selects DefaultMaxBits; a negative value
	// disables the limit.
	MaxBits int
}

func (o Options) maxBits() int {
	if o.MaxBits == 0 {
		return DefaultMaxBits
	}
	return o.MaxBits
}

// RuntimeError attaches a source offset to an evaluation failure.
type RuntimeError struct {
	Pos int
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("at offset %d: %v", e.Pos, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// Evaluator runs calculator programs against a persistent environment.
type Evaluator struct {
	env  *Env
	opts Options
}

// NewEvaluator returns an Evaluator bound to env. A nil env starts empty.
func NewEvaluator(env *Env, opts Options) *Evaluator {
	if env == nil {
		env = NewEnv()
	}
	return &Evaluator{env: env, opts: opts}
}

// Env returns the evaluator's environment.
func (ev *Evaluator) Env() *Env { return ev.env }

// Eval parses and evaluates src, returning the value of its last statement.
//
// Each ';'-separated statement commits its assignments only if it completes
// without error, so a failing statement leaves every variable as it was. The
// context is checked before each statement and inside pow.
func (ev *Evaluator) Eval(ctx context.Context, src string) (*bigint.Int, error) {
	stmts, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return ev.EvalNodes(ctx, stmts)
}

// EvalNodes evaluates already-parsed statements.
func (ev *Evaluator) EvalNodes(ctx context.Context, stmts []Node) (*bigint.Int, error) {
	var last *bigint.Int
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fr := &frame{ctx: ctx, env: ev.env.Clone(), maxBits: ev.opts.maxBits()}
		v, err := fr.eval(stmt)
		if err != nil {
			return nil, err
		}
		ev.env.replace(fr.env)
		last = v
	}
	if last == nil {
		return nil, &SyntaxError{Msg: "empty expression"}
	}
	return last.Clone(), nil
}

// frame is the state of one statement. Values flowing through eval are
// shared with literals and the environment and are never modified in place.
type frame struct {
	ctx     context.Context
	env     *Env
	maxBits int
}

func (f *frame) eval(n Node) (*bigint.Int, error) {
	switch n := n.(type) {
	case *NumberLit:
		return n.Value, nil
	case *VarRef:
		return f.load(n.Name, n.Offset)
	case *Unary:
		x, err := f.eval(n.X)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case Minus:
			return new(bigint.Int).Neg(x), nil
		case Tilde:
			return new(bigint.Int).Not(x), nil
		}
		return x, nil
	case *Binary:
		x, err := f.eval(n.X)
		if err != nil {
			return nil, err
		}
		y, err := f.eval(n.Y)
		if err != nil {
			return nil, err
		}
		return f.apply(n.Op, x, y, n.Offset)
	case *AssignExpr:
		v, err := f.eval(n.Value)
		if err != nil {
			return nil, err
		}
		if n.Op != Assign {
			cur, err := f.load(n.Name, n.Offset)
			if err != nil {
				return nil, err
			}
			if v, err = f.apply(n.Op.compoundOp(), cur, v, n.Offset); err != nil {
				return nil, err
			}
		}
		f.env.set(n.Name, v)
		return v, nil
	case *IncDec:
		cur, err := f.load(n.Name, n.Offset)
		if err != nil {
			return nil, err
		}
		next := cur.Clone()
		if n.Op == Inc {
			next.Inc()
		} else {
			next.Dec()
		}
		f.env.set(n.Name, next)
		if n.Postfix {
			return cur, nil
		}
		return next, nil
	case *Call:
		return f.call(n)
	}
	return nil, fmt.Errorf("unsupported node %T", n)
}

func (f *frame) load(name string, pos int) (*bigint.Int, error) {
	v, ok := f.env.lookup(name)
	if !ok {
		return nil, &RuntimeError{Pos: pos, Err: fmt.Errorf("%w: %s", ErrUndefined, name)}
	}
	return v, nil
}

func (f *frame) apply(op Kind, x, y *bigint.Int, pos int) (*bigint.Int, error) {
	z := new(bigint.Int)
	switch op {
	case Plus:
		return z.Add(x, y), nil
	case Minus:
		return z.Sub(x, y), nil
	case Star:
		if err := f.checkBits(x.BitLen()+y.BitLen(), pos); err != nil {
			return nil, err
		}
		return z.Mul(x, y), nil
	case Slash:
		if _, err := z.Quo(x, y); err != nil {
			return nil, &RuntimeError{Pos: pos, Err: err}
		}
		return z, nil
	case Percent:
		if _, err := z.Rem(x, y); err != nil {
			return nil, &RuntimeError{Pos: pos, Err: err}
		}
		return z, nil
	case Amp:
		return z.And(x, y), nil
	case Pipe:
		return z.Or(x, y), nil
	case Caret:
		return z.Xor(x, y), nil
	case Shl, Shr:
		return f.shift(op, x, y, pos)
	case Eq:
		return truth(x.Equal(y)), nil
	case Ne:
		return truth(x.NotEqual(y)), nil
	case Lt:
		return truth(x.Less(y)), nil
	case Le:
		return truth(x.LessEq(y)), nil
	case Gt:
		return truth(x.Greater(y)), nil
	case Ge:
		return truth(x.GreaterEq(y)), nil
	}
	return nil, &RuntimeError{Pos: pos, Err: fmt.Errorf("operator %s is not binary", op)}
}

func (f *frame) shift(op Kind, x, y *bigint.Int, pos int) (*bigint.Int, error) {
	v, ok := y.Int64()
	if !ok {
		return nil, &RuntimeError{Pos: pos, Err: fmt.Errorf("%w: %s", ErrShiftRange, y)}
	}
	k, err := safecast.Conv[int](v)
	if err != nil {
		return nil, &RuntimeError{Pos: pos, Err: fmt.Errorf("%w: %v", ErrShiftRange, err)}
	}

	grows := (op == Shl) == (k > 0)
	if grows && k != 0 && !x.IsZero() {
		mag := uint64(v)
		if v < 0 {
			mag = -mag
		}
		if f.maxBits >= 0 && mag > uint64(f.maxBits) {
			return nil, &RuntimeError{Pos: pos, Err: fmt.Errorf("%w: shift by %s", ErrTooLarge, y)}
		}
		if err := f.checkBits(x.BitLen()+int(mag), pos); err != nil {
			return nil, err
		}
	}

	if op == Shl {
		return new(bigint.Int).Lsh(x, k), nil
	}
	return new(bigint.Int).Rsh(x, k), nil
}

// checkBits rejects a result whose width may exceed the configured limit.
func (f *frame) checkBits(bits, pos int) error {
	if f.maxBits >= 0 && bits > f.maxBits+1 {
		return &RuntimeError{Pos: pos, Err: fmt.Errorf("%w: about %d bits, limit %d", ErrTooLarge, bits, f.maxBits)}
	}
	return nil
}

var (
	trueVal  = bigint.NewInt(1)
	falseVal = bigint.NewInt(0)
)

func truth(b bool) *bigint.Int {
	if b {
		return trueVal
	}
	return falseVal
}
