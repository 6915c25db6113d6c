// Package progress shows per-unit generation progress in the terminal.
package progress

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/questify/internal/ui/components"
	"github.com/abhisek/questify/internal/ui/theme"
)

const defaultWidth = 60

// ResultMsg reports a finished unit.
type ResultMsg struct {
	Index     int
	Title     string
	Questions int
	Err       error
}

// DoneMsg signals that every unit has been processed.
type DoneMsg struct{}

type keyMap struct {
	Quit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q", "esc"),
			key.WithHelp("q", "cancel"),
		),
	}
}

// Model is the Bubble Tea model for a generation run.
type Model struct {
	titles    []string
	results   map[int]ResultMsg
	finished  bool
	cancelled bool
	width     int
	keys      keyMap
	cancel    context.CancelFunc
}

// New creates a Model for the given unit titles. cancel is invoked when the
// user aborts the run.
func New(titles []string, cancel context.CancelFunc) Model {
	return Model{
		titles:  titles,
		results: make(map[int]ResultMsg, len(titles)),
		width:   defaultWidth,
		keys:    defaultKeys(),
		cancel:  cancel,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 100)
		return m, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, m.keys.Quit) && !m.finished {
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case ResultMsg:
		m.results[msg.Index] = msg
		return m, nil

	case DoneMsg:
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() tea.View {
	return tea.NewView(m.render())
}

// Cancelled reports whether the user aborted the run.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func (m Model) render() string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Generating questions"))
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("Units", len(m.results), len(m.titles), m.width).View())
	b.WriteString("\n\n")

	for i, title := range m.titles {
		res, ok := m.results[i]
		switch {
		case !ok:
			fmt.Fprintf(&b, "%s %s\n", theme.Label.Render("·"), title)
		case res.Err != nil:
			fmt.Fprintf(&b, "%s %s  %s\n", theme.Failure.Render("✗"), title, theme.Hint.Render(res.Err.Error()))
		default:
			fmt.Fprintf(&b, "%s %s  %s\n", theme.OK.Render("✓"), title, theme.Label.Render(fmt.Sprintf("%d questions", res.Questions)))
		}
	}

	if !m.finished {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("q to cancel"))
		b.WriteString("\n")
	}
	return b.String()
}

// Run shows the progress view while work runs. work reports each finished
// unit through report. Run returns after work has returned; it yields
// context.Canceled when the user aborted.
func Run(ctx context.Context, titles []string, work func(ctx context.Context, report func(ResultMsg))) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(New(titles, cancel))

	done := make(chan struct{})
	go func() {
		defer close(done)
		work(ctx, func(r ResultMsg) { p.Send(r) })
		p.Send(DoneMsg{})
	}()

	final, err := p.Run()
	cancelledByUser := false
	if m, ok := final.(Model); ok {
		cancelledByUser = m.Cancelled()
	}
	if err != nil {
		cancel()
	}
	<-done

	if err != nil {
		return fmt.Errorf("run progress view: %w", err)
	}
	if cancelledByUser {
		return context.Canceled
	}
	return nil
}
