// Package tui shows a spinner while a long engine call runs off the UI loop.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Task is a cancellable unit of work whose result is shown after the spinner exits.
type Task[T any] func(ctx context.Context) (T, error)

type doneMsg[T any] struct {
	result T
	err    error
}

// Model runs one Task and quits when it finishes or the user cancels.
type Model[T any] struct {
	title   string
	spinner spinner.Model
	ctx     context.Context
	cancel  context.CancelFunc
	task    Task[T]
	started time.Time

	done   bool
	result T
	err    error
}

// New creates a Model. The task receives a context derived from ctx that is
// cancelled on ctrl+c.
func New[T any](ctx context.Context, title string, task Task[T]) Model[T] {
	taskCtx, cancel := context.WithCancel(ctx)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return Model[T]{
		title:   title,
		spinner: sp,
		ctx:     taskCtx,
		cancel:  cancel,
		task:    task,
		started: time.Now(),
	}
}

func (m Model[T]) run() tea.Cmd {
	return func() tea.Msg {
		result, err := m.task(m.ctx)
		return doneMsg[T]{result: result, err: err}
	}
}

func (m Model[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run())
}

func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.cancel()
			if !m.done {
				m.done = true
				m.err = context.Canceled
			}
			return m, tea.Quit
		}

	case doneMsg[T]:
		if m.done {
			return m, nil
		}
		m.done = true
		m.result, m.err = msg.result, msg.err
		m.cancel()
		return m, tea.Quit

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model[T]) View() string {
	if m.done {
		return ""
	}
	elapsed := time.Since(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s %s %s\n", m.spinner.View(), m.title, hintStyle.Render(fmt.Sprintf("(%s, ctrl+c to cancel)", elapsed)))
}

// Result returns the task outcome. A cancelled run reports context.Canceled.
func (m Model[T]) Result() (T, error) {
	return m.result, m.err
}

// Run executes task behind a spinner drawn on stderr.
func Run[T any](ctx context.Context, title string, task Task[T]) (T, error) {
	var zero T

	final, err := tea.NewProgram(New(ctx, title, task), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return zero, fmt.Errorf("progress display failed: %w", err)
	}

	m, ok := final.(Model[T])
	if !ok {
		return zero, fmt.Errorf("unexpected model %T", final)
	}
	return m.Result()
}
