package execx

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type doneMsg struct {
	err error
}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	err     error
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return failStyle.Render("✗") + " " + m.label + "\n"
		}
		return okStyle.Render("✓") + " " + m.label + "\n"
	}
	return m.spinner.View() + " " + m.label
}

// runWithSpinner shows an animated status line on w while fn runs. fn's
// error is returned as-is; spinner rendering problems are swallowed so a
// dumb terminal never breaks the migration itself. The forwarding
// goroutine is the only receiver on done, so fn's result reaches the
// caller even when rendering fails mid-run.
func runWithSpinner(w io.Writer, label string, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()

	p := tea.NewProgram(newSpinnerModel(label),
		tea.WithOutput(w), tea.WithInput(nil), tea.WithoutSignalHandler())

	result := make(chan error, 1)
	go func() {
		err := <-done
		p.Send(doneMsg{err: err})
		result <- err
	}()

	// A rendering error is not the command's error; wait for fn either way.
	_, _ = p.Run()
	return <-result
}
