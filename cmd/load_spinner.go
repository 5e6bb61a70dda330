package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bnema/container-portal-cli/internal/ports"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type progressDoneMsg struct {
	err error
}

// progressModel spins next to label until the wrapped job reports back.
type progressModel struct {
	spinner spinner.Model
	label   string
	job     tea.Cmd
	started time.Time
	now     time.Time
	result  error
	done    bool
}

func newProgressModel(label string, job tea.Cmd, started time.Time) progressModel {
	return progressModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		label:   label,
		job:     job,
		started: started,
		now:     started,
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.job)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDoneMsg:
		m.done = true
		m.result = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		m.now = msg.Time
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}

	elapsed := m.now.Sub(m.started).Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%s %s %s", m.spinner.View(), m.label, elapsedStyle.Render(elapsed.String()))
}

// spinnerProgress is the terminal ports.Progress: a spinner on output while a load runs.
type spinnerProgress struct {
	output io.Writer
}

var _ ports.Progress = spinnerProgress{}

func (p spinnerProgress) Run(ctx context.Context, label string, fn func(context.Context) error) error {
	job := func() tea.Msg {
		return progressDoneMsg{err: fn(ctx)}
	}

	final, err := tea.NewProgram(
		newProgressModel(label, job, time.Now()),
		tea.WithInput(nil),
		tea.WithOutput(p.output),
		tea.WithContext(ctx),
	).Run()
	switch {
	case errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		return fmt.Errorf("run %s spinner: %w", label, err)
	}

	model, ok := final.(progressModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", final)
	}
	return model.result
}
