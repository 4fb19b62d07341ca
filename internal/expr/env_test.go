package expr

import (
	"slices"
	"testing"

	"github.com/agbru/bigcalc/internal/bigint"
)

func TestEnvOrderedNames(t *testing.T) {
	t.Parallel()
	e := NewEnv()
	for _, name := range []string{"zeta", "alpha", "mid", "Beta", "_x"} {
		e.Set(name, bigint.NewInt(int64(len(name))))
	}
	want := []string{"Beta", "_x", "alpha", "mid", "zeta"}
	if got := e.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if e.Len() != 5 {
		t.Errorf("Len() = %d", e.Len())
	}

	var seen []string
	e.Each(func(name string, _ *bigint.Int) bool {
		seen = append(seen, name)
		return len(seen) < 2
	})
	if !slices.Equal(seen, want[:2]) {
		t.Errorf("Each stopped after %v", seen)
	}
}

func TestEnvSetGetCopies(t *testing.T) {
	t.Parallel()
	e := NewEnv()
	v := bigint.NewInt(7)
	e.Set("v", v)
	v.Inc()

	got, ok := e.Get("v")
	if !ok || got.String() != "7" {
		t.Fatalf("Get(v) = %v, %v; want 7", got, ok)
	}
	got.Inc()
	again, _ := e.Get("v")
	if again.String() != "7" {
		t.Errorf("stored value changed to %s", again)
	}
	if _, ok := e.Get("missing"); ok {
		t.Error("Get(missing) reported ok")
	}
}

func TestEnvDeleteAndClear(t *testing.T) {
	t.Parallel()
	e := NewEnv()
	e.Set("a", bigint.NewInt(1))
	e.Set("b", bigint.NewInt(2))
	if !e.Delete("a") || e.Delete("a") {
		t.Error("Delete should report presence exactly once")
	}
	e.Clear()
	if e.Len() != 0 {
		t.Errorf("Len() after Clear = %d", e.Len())
	}
}

func TestEnvCloneIsIndependent(t *testing.T) {
	t.Parallel()
	base := NewEnv()
	base.Set("x", bigint.NewInt(1))

	c := base.Clone()
	c.Set("x", bigint.NewInt(2))
	c.Set("y", bigint.NewInt(3))
	base.Delete("x")

	if _, ok := base.Get("y"); ok {
		t.Error("clone write leaked into base")
	}
	if v, ok := c.Get("x"); !ok || v.String() != "2" {
		t.Errorf("clone x = %v, %v", v, ok)
	}

	ev := NewEvaluator(c, Options{})
	if got := evalString(t, ev, "x + y"); got != "5" {
		t.Errorf("x + y in clone = %s", got)
	}
}
