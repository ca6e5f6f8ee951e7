// Package headline provides a label that rotates through a fixed set of
// words on a timer, in the manner of a bubbles component.
package headline

import (
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultInterval   = 1500 * time.Millisecond
	DefaultTransition = 300 * time.Millisecond
	DefaultSuffix     = "WHAT YOU WANT"
)

// DefaultLabels are the rotating words shown before the suffix.
var DefaultLabels = []string{"BE", "DO", "HAVE"}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances the headline. It is only accepted by the model and timer
// generation that scheduled it.
type TickMsg struct {
	Time time.Time
	ID   int
	tag  int
}

// settleMsg ends the transition frame of a label change.
type settleMsg struct {
	ID  int
	tag int
}

// Model is a rotating headline.
type Model struct {
	// Suffix is rendered after the rotating label.
	Suffix string
	// Transition is how long a freshly shown label renders in
	// TransitionStyle. Zero disables the transition frame.
	Transition time.Duration

	Style           lipgloss.Style
	TransitionStyle lipgloss.Style
	SuffixStyle     lipgloss.Style

	labels   []string
	interval time.Duration
	index    int
	id       int
	tag      int
	settling bool
	stopped  bool
}

// New creates a headline cycling through labels every interval. The timer
// starts with Init.
func New(labels []string, interval time.Duration) Model {
	return Model{
		Suffix:          DefaultSuffix,
		Transition:      DefaultTransition,
		Style:           lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("117")).Padding(0, 1).Align(lipgloss.Center),
		TransitionStyle: lipgloss.NewStyle().Faint(true).Background(lipgloss.Color("117")).Padding(0, 1).Align(lipgloss.Center),
		SuffixStyle:     lipgloss.NewStyle().Bold(true),
		labels:          append([]string(nil), labels...),
		interval:        interval,
		id:              nextID(),
	}
}

// ID returns the model's unique identifier.
func (m Model) ID() int { return m.id }

// Current returns the label being displayed.
func (m Model) Current() string {
	if len(m.labels) == 0 {
		return ""
	}
	return m.labels[m.index]
}

// Labels returns the rotation.
func (m Model) Labels() []string { return append([]string(nil), m.labels...) }

// Interval returns the rotation period.
func (m Model) Interval() time.Duration { return m.interval }

// Init starts the timer.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles tick messages addressed to this model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if msg.ID != m.id || msg.tag != m.tag || m.stopped || len(m.labels) == 0 {
			return m, nil
		}
		m.index = (m.index + 1) % len(m.labels)
		if m.Transition <= 0 {
			return m, m.tick()
		}
		m.settling = true
		return m, tea.Batch(m.tick(), m.settle())
	case settleMsg:
		if msg.ID == m.id && msg.tag == m.tag {
			m.settling = false
		}
	}
	return m, nil
}

// SetLabels replaces the rotation, restarts from the first label and
// returns the command for the new timer. The previous timer is discarded.
func (m *Model) SetLabels(labels []string) tea.Cmd {
	m.labels = append([]string(nil), labels...)
	m.index = 0
	return m.restart()
}

// SetInterval changes the period and restarts the timer.
func (m *Model) SetInterval(d time.Duration) tea.Cmd {
	m.interval = d
	return m.restart()
}

// Stop cancels the timer. Ticks already in flight are ignored.
func (m *Model) Stop() {
	m.tag++
	m.stopped = true
	m.settling = false
}

func (m *Model) restart() tea.Cmd {
	m.tag++
	m.stopped = false
	m.settling = false
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	if len(m.labels) == 0 || m.interval <= 0 || m.stopped {
		return nil
	}
	id, tag := m.id, m.tag
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id, tag: tag}
	})
}

func (m Model) settle() tea.Cmd {
	id, tag := m.id, m.tag
	return tea.Tick(m.Transition, func(time.Time) tea.Msg {
		return settleMsg{ID: id, tag: tag}
	})
}

func (m Model) width() int {
	w := 0
	for _, l := range m.labels {
		w = max(w, lipgloss.Width(l))
	}
	return w + 2
}

// View renders the label at a fixed width followed by the suffix.
func (m Model) View() string {
	if len(m.labels) == 0 {
		return m.SuffixStyle.Render(m.Suffix)
	}
	style := m.Style
	if m.settling {
		style = m.TransitionStyle
	}
	parts := []string{style.Width(m.width()).Render(m.Current())}
	if m.Suffix != "" {
		parts = append(parts, m.SuffixStyle.Render(m.Suffix))
	}
	return strings.Join(parts, " ")
}
