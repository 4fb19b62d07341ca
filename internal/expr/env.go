package expr

import (
	"github.com/google/btree"

	"github.com/agbru/bigcalc/internal/bigint"
)

type binding struct {
	name  string
	value *bigint.Int
}

func bindingLess(a, b binding) bool { return a.name < b.name }

// Env holds named variables in name order. Stored values are never modified
// in place, which makes Clone a cheap copy-on-write snapshot.
//
// An Env is not safe for concurrent use; give each goroutine its own Clone.
type Env struct {
	tree *btree.BTreeG[binding]
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{tree: btree.NewG(8, bindingLess)}
}

// Get returns a copy of the named value.
func (e *Env) Get(name string) (*bigint.Int, bool) {
	v, ok := e.lookup(name)
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// lookup returns the stored value itself. Callers must not modify it.
func (e *Env) lookup(name string) (*bigint.Int, bool) {
	b, ok := e.tree.Get(binding{name: name})
	return b.value, ok
}

// Set stores a copy of v under name.
func (e *Env) Set(name string, v *bigint.Int) {
	e.tree.ReplaceOrInsert(binding{name: name, value: v.Clone()})
}

// set stores v without copying. v must not be reachable by the caller
// afterwards.
func (e *Env) set(name string, v *bigint.Int) {
	e.tree.ReplaceOrInsert(binding{name: name, value: v})
}

// Delete removes name and reports whether it was present.
func (e *Env) Delete(name string) bool {
	_, ok := e.tree.Delete(binding{name: name})
	return ok
}

// Len returns the number of variables.
func (e *Env) Len() int { return e.tree.Len() }

// Clear removes every variable.
func (e *Env) Clear() { e.tree.Clear(false) }

// Names returns the variable names in ascending order.
func (e *Env) Names() []string {
	names := make([]string, 0, e.tree.Len())
	e.tree.Ascend(func(b binding) bool {
		names = append(names, b.name)
		return true
	})
	return names
}

// Each calls fn for every variable in name order until fn returns false. The
// value passed to fn must not be modified.
func (e *Env) Each(fn func(name string, v *bigint.Int) bool) {
	e.tree.Ascend(func(b binding) bool {
		return fn(b.name, b.value)
	})
}

// Clone returns an independent environment with the same bindings.
func (e *Env) Clone() *Env {
	return &Env{tree: e.tree.Clone()}
}

// replace adopts the contents of other.
func (e *Env) replace(other *Env) {
	e.tree = other.tree
}
