package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/metrics"
)

// Layout constants for the calculator screen.
const (
	headerHeight = 1
	inputHeight  = 3 // one line plus border
	statusHeight = 1
	helpHeight   = 1
	minViewport  = 3
	// DefaultMaxDigits is the scrollback truncation when none is configured.
	DefaultMaxDigits = 200
)

// Config holds the calculator settings taken from the application config.
type Config struct {
	// Timeout bounds each evaluation. Zero means no limit.
	Timeout time.Duration
	// MaxDigits truncates values in the scrollback; 0 selects DefaultMaxDigits.
	MaxDigits int
	// Options is passed to the evaluator.
	Options expr.Options
	// Version is shown in the header.
	Version string
}

// Model is the root bubbletea model for the calculator.
type Model struct {
	header   HeaderModel
	status   StatusModel
	history  *History
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keymap   KeyMap

	evaluator *expr.Evaluator
	collector *metrics.MemoryCollector
	ctx       context.Context
	cancel    context.CancelFunc
	config    Config

	busy     bool
	canceled bool
	width    int
	height   int
}

// NewModel creates a calculator bound to env. A nil env starts empty.
func NewModel(parentCtx context.Context, env *expr.Env, cfg Config) Model {
	if cfg.MaxDigits == 0 {
		cfg.MaxDigits = DefaultMaxDigits
	}
	ctx, cancel := context.WithCancel(parentCtx)

	ti := textinput.New()
	ti.Prompt = "bigcalc> "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "expression, e.g. x = pow(2, 521) - 1"
	ti.Focus()

	ev := expr.NewEvaluator(env, cfg.Options)
	header := NewHeaderModel(cfg.Version)
	header.SetVars(ev.Env().Len())

	return Model{
		header:    header,
		status:    NewStatusModel(),
		history:   &History{},
		input:     ti,
		viewport:  viewport.New(0, minViewport),
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		evaluator: ev,
		collector: metrics.NewMemoryCollector(),
		ctx:       ctx,
		cancel:    cancel,
		config:    cfg,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		sampleMemStatsCmd(m.collector),
		watchContextCmd(m.ctx),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case EvalDoneMsg:
		m.busy = false
		m.status.SetBusy(false)
		m.history.Add(msg.Entry)
		m.header.SetVars(msg.Vars)
		m.status.RecordEval(msg.Entry.Duration)
		m.refreshScrollback()
		return m, nil

	case TickMsg:
		return m, tea.Batch(sampleMemStatsCmd(m.collector), tickCmd())

	case MemStatsMsg:
		m.status.UpdateMemStats(metrics.MemorySnapshot(msg))
		return m, nil

	case ContextCancelledMsg:
		m.canceled = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Eval):
		src := strings.TrimSpace(m.input.Value())
		if m.busy || src == "" {
			return m, nil
		}
		m.busy = true
		m.status.SetBusy(true)
		m.input.Reset()
		return m, evalCmd(m.ctx, m.evaluator, src, m.config.Timeout)

	case key.Matches(msg, m.keymap.Prev):
		if s, ok := m.history.Prev(m.input.Value()); ok {
			m.input.SetValue(s)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Next):
		if s, ok := m.history.Next(); ok {
			m.input.SetValue(s)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.history.Clear()
		m.refreshScrollback()
		return m, nil

	case key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// layout sizes the components from the terminal dimensions.
func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.help.Width = m.width
	m.input.Width = max(m.width-len(m.input.Prompt)-4, 1)

	helpLines := helpHeight
	if m.help.ShowAll {
		helpLines = lipgloss.Height(m.help.View(m.keymap))
	}
	// The scrollback panel has a border of its own.
	m.viewport.Width = max(m.width-2, 1)
	m.viewport.Height = max(m.height-headerHeight-inputHeight-statusHeight-helpLines-2, minViewport)
	m.refreshScrollback()
}

func (m *Model) refreshScrollback() {
	m.viewport.SetContent(m.history.Render(m.config.MaxDigits))
	m.viewport.GotoBottom()
}

// View renders the calculator.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	scrollback := panelStyle.Width(m.width - 2).Render(m.viewport.View())
	input := panelStyle.Width(m.width - 2).Render(m.input.View())
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		scrollback,
		input,
		m.status.View(),
		m.help.View(m.keymap),
	)
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, env *expr.Env, cfg Config) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, env, cfg)
	defer model.cancel()

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok && m.canceled {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}
