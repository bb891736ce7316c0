package progress

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var quitKey = key.NewBinding(
	key.WithKeys("ctrl+c"),
)

var styleTime = lipgloss.NewStyle().
	Width(5)

var styleMethod = lipgloss.NewStyle().
	Bold(true).
	PaddingLeft(1).
	PaddingRight(1)

var styleURL = lipgloss.NewStyle().Faint(true)

type interactiveReporter struct {
	ctxCancel func()

	activityChannel chan tea.Msg

	program  *tea.Program
	finished chan struct{}

	stopwatch stopwatch.Model
	spinner   spinner.Model

	method   string
	url      string
	quitting bool
}

// NewInteractiveReporter renders a spinner with the in-flight request on the
// given terminal writer. cancel is invoked when the user interrupts.
func NewInteractiveReporter(out io.Writer, cancel func()) (Reporter, error) {
	m := &interactiveReporter{
		ctxCancel: cancel,

		activityChannel: make(chan tea.Msg),
		finished:        make(chan struct{}),

		stopwatch: stopwatch.NewWithInterval(time.Millisecond * 100),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithoutSignalHandler())
	m.program = p
	go func() {
		defer close(m.finished)
		if _, err := p.Run(); err != nil {
			os.Exit(1)
		}
	}()

	return m, nil
}

func (m *interactiveReporter) Close() error {
	m.program.Quit()
	<-m.finished
	return nil
}

func (m *interactiveReporter) Start(method string, url string) {
	m.send(requestMsg{method: method, url: url})
}

func (m *interactiveReporter) Done() {
	m.send(doneMsg{})
	<-m.finished
}

// send delivers a message unless the program has already stopped, so
// callers never block on a torn-down reporter.
func (m *interactiveReporter) send(msg tea.Msg) {
	select {
	case m.activityChannel <- msg:
	case <-m.finished:
	}
}

func (m *interactiveReporter) Init() tea.Cmd {
	return tea.Batch(
		m.waitForActivity(m.activityChannel),
		m.stopwatch.Init(),
		m.spinner.Tick,
	)
}

func (m *interactiveReporter) View() string {
	if m.quitting {
		return ""
	}
	s := m.spinner.View() + styleTime.Render(m.stopwatch.View())
	if m.url != "" {
		s += styleMethod.Render(m.method) + styleURL.Render(m.url)
	}
	return s + "\n"
}

func (m *interactiveReporter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, quitKey):
			if m.ctxCancel != nil {
				m.ctxCancel()
			}
			m.quitting = true
			return m, tea.Quit
		}
	case requestMsg:
		m.method = msg.method
		m.url = msg.url
		return m, m.waitForActivity(m.activityChannel)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stopwatch.TickMsg, stopwatch.StartStopMsg:
		var cmd tea.Cmd
		m.stopwatch, cmd = m.stopwatch.Update(msg)
		return m, cmd
	default:
		return m, nil
	}

	return m, nil
}

func (m *interactiveReporter) waitForActivity(c chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-c
	}
}

type requestMsg struct {
	method string
	url    string
}

type doneMsg struct {
}

var _ Reporter = &interactiveReporter{}
