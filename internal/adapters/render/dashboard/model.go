package dashboard

import (
	"errors"
	"io"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	surface  domain.Surface
	snapshot domain.Snapshot
	styles   styles
	output   string
	err      error
}

func newModel(surface domain.Surface, snapshot domain.Snapshot) model {
	return model{
		surface:  surface,
		snapshot: snapshot,
		styles:   newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output, m.err = renderSurface(m.surface, m.snapshot, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Renderer draws one surface at a time from a snapshot. It holds no state between calls.
type Renderer struct{}

var _ ports.Renderer = Renderer{}

func NewRenderer() Renderer {
	return Renderer{}
}

func (Renderer) Render(surface domain.Surface, snapshot domain.Snapshot) (string, error) {
	p := tea.NewProgram(
		newModel(surface, snapshot),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	if rendered.err != nil {
		return "", rendered.err
	}

	return rendered.View(), nil
}
