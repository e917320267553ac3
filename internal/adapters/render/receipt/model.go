package receipt

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sahifabooks/orderbot/internal/domain"
	"github.com/sahifabooks/orderbot/internal/ports"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	receipt domain.Receipt
	styles  styles
	output  string
}

func newModel(receipt domain.Receipt) model {
	return model{
		receipt: receipt,
		styles:  newStyles(),
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
		m.output = renderView(m.receipt, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render produces the receipt as styled terminal text.
func Render(receipt domain.Receipt) (string, error) {
	p := tea.NewProgram(
		newModel(receipt),
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

	return rendered.View(), nil
}

// Renderer adapts Render to the ports.ReceiptRenderer interface.
type Renderer struct{}

var _ ports.ReceiptRenderer = Renderer{}

func NewRenderer() Renderer { return Renderer{} }

func (Renderer) Render(receipt domain.Receipt) (string, error) {
	return Render(receipt)
}
