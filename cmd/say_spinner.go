package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type announceDoneMsg struct {
	err error
}

type saySpinnerModel struct {
	spinner  spinner.Model
	label    string
	announce tea.Cmd
	err      error
	done     bool
}

func newSaySpinnerModel(label string, announce tea.Cmd) saySpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return saySpinnerModel{
		spinner:  s,
		label:    label,
		announce: announce,
	}
}

func (m saySpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.announce)
}

func (m saySpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case announceDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m saySpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runSaySpinner shows progress while the announcement waits for the speech
// slot and plays.
func runSaySpinner(ctx context.Context, output io.Writer, announce func(context.Context) error) error {
	announceCmd := func() tea.Msg {
		return announceDoneMsg{err: announce(ctx)}
	}

	p := tea.NewProgram(
		newSaySpinnerModel("Waiting for the speech slot...", announceCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(saySpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
