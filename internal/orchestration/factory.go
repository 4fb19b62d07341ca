package orchestration

import (
	"context"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
)

// EnvFactory hands out evaluators whose environments start as copies of a
// shared base. The base itself is never modified by a batch job.
type EnvFactory struct {
	base *expr.Env
	opts expr.Options
}

// NewEnvFactory returns a factory over base. A nil base means an empty
// environment.
func NewEnvFactory(base *expr.Env, opts expr.Options) *EnvFactory {
	if base == nil {
		base = expr.NewEnv()
	}
	return &EnvFactory{base: base, opts: opts}
}

// NewEvaluator returns an evaluator over a fresh clone of the base.
func (f *EnvFactory) NewEvaluator() Evaluator {
	return expr.NewEvaluator(f.base.Clone(), f.opts)
}

// NewEnvFromDefines evaluates each -D binding in order, so later
// definitions may refer to earlier ones.
//
// Parameters:
//   - ctx: Bounds the evaluation of the definitions.
//   - defines: The bindings, in command-line order followed by config file order.
//   - opts: The evaluator options.
//
// Returns:
//   - *expr.Env: The populated environment.
//   - error: A ConfigError naming the first definition that failed.
func NewEnvFromDefines(ctx context.Context, defines []config.Define, opts expr.Options) (*expr.Env, error) {
	ev := expr.NewEvaluator(expr.NewEnv(), opts)
	for _, d := range defines {
		if _, err := ev.Eval(ctx, d.Name+" = ("+d.Value+")"); err != nil {
			return nil, apperrors.NewConfigError("-D %s=%s: %v", d.Name, d.Value, err)
		}
	}
	return ev.Env(), nil
}
