package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner shows that work is in progress.
type Spinner interface {
	// SetTitle replaces the message shown next to the spinner.
	SetTitle(title string)
	// Stop removes the spinner and, if final is non-empty, prints it.
	Stop(final string)
}

// NewSpinner starts a spinner writing to w. In headless mode, or without
// color, every title is printed as a plain line instead.
func NewSpinner(theme *Theme, hm *HeadlessManager, w io.Writer, title string) Spinner {
	if hm.IsHeadless() || theme.NoColor {
		return newHeadlessSpinner(theme, title, w)
	}
	return newInteractiveSpinner(theme, title, w)
}

// --- interactiveSpinner ---

type spinnerTitleMsg string

type spinnerStopMsg struct{ final string }

type spinnerModel struct {
	spinner spinner.Model
	title   string
	final   string
	done    bool
}

func newSpinnerModel(theme *Theme, title string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	if !theme.NoColor {
		s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Colors.Primary))
	}
	return spinnerModel{spinner: s, title: title}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTitleMsg:
		m.title = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		m.final = msg.final
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		if m.final == "" {
			return ""
		}
		return m.final + "\n"
	}
	return m.spinner.View() + " " + m.title + "\n"
}

// interactiveSpinner animates on its own goroutine, so callers blocked on
// git or file I/O never freeze it.
type interactiveSpinner struct {
	program *tea.Program
	once    sync.Once
}

func newInteractiveSpinner(theme *Theme, title string, w io.Writer) *interactiveSpinner {
	// No input: the terminal stays in cooked mode and Ctrl-C reaches the
	// process as SIGINT, cancelling the run context.
	p := tea.NewProgram(newSpinnerModel(theme, title),
		tea.WithOutput(w),
		tea.WithInput(nil),
	)
	s := &interactiveSpinner{program: p}

	go func() {
		_, _ = p.Run()
	}()

	return s
}

func (s *interactiveSpinner) SetTitle(title string) {
	s.program.Send(spinnerTitleMsg(title))
}

func (s *interactiveSpinner) Stop(final string) {
	s.once.Do(func() {
		s.program.Send(spinnerStopMsg{final: final})
		s.program.Wait()
	})
}

// --- headlessSpinner ---

type headlessSpinner struct {
	theme   *Theme
	title   string
	writer  io.Writer
	mu      sync.Mutex
	stopped bool
}

func newHeadlessSpinner(theme *Theme, title string, w io.Writer) *headlessSpinner {
	s := &headlessSpinner{theme: theme, title: title, writer: w}
	s.print(title)
	return s
}

func (s *headlessSpinner) print(line string) {
	_, _ = fmt.Fprintf(s.writer, "%s %s\n", s.theme.Muted.Render("-"), line)
}

func (s *headlessSpinner) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || title == s.title {
		return
	}
	s.title = title
	s.print(title)
}

func (s *headlessSpinner) Stop(final string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	if final != "" {
		_, _ = fmt.Fprintln(s.writer, final)
	}
}
