package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/expr"
)

func newTestModel(t *testing.T, env *expr.Env) Model {
	t.Helper()
	m := NewModel(context.Background(), env, Config{Timeout: time.Second})
	t.Cleanup(m.cancel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func typeText(m Model, s string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

// submit presses Enter and runs the resulting evaluation synchronously.
func submit(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("Enter produced no command")
	}
	done, ok := cmd().(EvalDoneMsg)
	if !ok {
		t.Fatal("command did not produce EvalDoneMsg")
	}
	next, _ = m.Update(done)
	return next.(Model)
}

func TestModel_EvaluatesInput(t *testing.T) {
	env := expr.NewEnv()
	env.Set("k", bigint.NewInt(40))
	m := newTestModel(t, env)

	m = submit(t, typeText(m, "x = k + 2"))
	if m.busy {
		t.Error("model still busy after EvalDoneMsg")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	view := m.View()
	for _, want := range []string{"x = k + 2", "42", "vars: 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestModel_ShowsErrors(t *testing.T) {
	m := newTestModel(t, nil)
	m = submit(t, typeText(m, "1 / 0"))
	if !strings.Contains(m.View(), "division by zero") {
		t.Errorf("error not shown:\n%s", m.View())
	}
}

func TestModel_EmptyInputDoesNothing(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty input should not start an evaluation")
	}
}

func TestModel_HistoryRecall(t *testing.T) {
	m := newTestModel(t, nil)
	m = submit(t, typeText(m, "1 + 1"))
	m = submit(t, typeText(m, "2 + 2"))
	m = typeText(m, "dra")

	up := tea.KeyMsg{Type: tea.KeyUp}
	down := tea.KeyMsg{Type: tea.KeyDown}
	steps := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{up, "2 + 2"},
		{up, "1 + 1"},
		{up, "1 + 1"},
		{down, "2 + 2"},
		{down, "dra"},
	}
	for i, s := range steps {
		next, _ := m.Update(s.msg)
		m = next.(Model)
		if got := m.input.Value(); got != s.want {
			t.Fatalf("step %d: input = %q, want %q", i, got, s.want)
		}
	}
}

func TestModel_ClearKeepsVariables(t *testing.T) {
	m := newTestModel(t, nil)
	m = submit(t, typeText(m, "v = 7"))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = next.(Model)
	if m.history.Len() != 0 {
		t.Errorf("history has %d entries after clear", m.history.Len())
	}
	m = submit(t, typeText(m, "v * 6"))
	if !strings.Contains(m.View(), "42") {
		t.Errorf("variable lost after clear:\n%s", m.View())
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(k.String(), func(t *testing.T) {
			m := newTestModel(t, nil)
			_, cmd := m.Update(k)
			if cmd == nil {
				t.Fatalf("%s should quit", k)
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("%s did not return tea.Quit", k)
			}
			if m.ctx.Err() == nil {
				t.Error("quitting should cancel the evaluation context")
			}
		})
	}
}

func TestModel_LeadingQIsTyped(t *testing.T) {
	m := newTestModel(t, nil)
	typed := typeText(m, "q = 5")
	if got := typed.input.Value(); got != "q = 5" {
		t.Fatalf("input = %q, want %q", got, "q = 5")
	}
	m = submit(t, typed)
	m = submit(t, typeText(m, "quot = q * 2"))
	if !strings.Contains(m.View(), "10") {
		t.Errorf("variables starting with q were not evaluated:\n%s", m.View())
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(ContextCancelledMsg{Err: context.Canceled})
	if !next.(Model).canceled || cmd == nil {
		t.Error("cancellation should quit and be recorded")
	}
}

func TestModel_InitializingView(t *testing.T) {
	m := NewModel(context.Background(), nil, Config{})
	defer m.cancel()
	if m.View() != "Initializing..." {
		t.Errorf("View() before sizing = %q", m.View())
	}
}

func TestHistory_SkipsDuplicateInputs(t *testing.T) {
	h := &History{}
	h.Add(Entry{Expr: "a"})
	h.Add(Entry{Expr: "a"})
	h.Add(Entry{Expr: "b"})
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	if s, _ := h.Prev(""); s != "b" {
		t.Errorf("Prev = %q", s)
	}
	if s, _ := h.Prev(""); s != "a" {
		t.Errorf("Prev = %q", s)
	}
	if _, ok := h.Prev(""); ok {
		t.Error("Prev past the oldest input should report false")
	}
}
