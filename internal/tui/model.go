// Package tui is the interactive todo list: a bubbletea program around a
// todo.Store, with a rotating headline and scroll-triggered loading.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/wyw/internal/headline"
	"github.com/idilsaglam/wyw/internal/model"
	"github.com/idilsaglam/wyw/internal/reveal"
	"github.com/idilsaglam/wyw/internal/todo"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeMove
)

// chrome is the number of lines around the list: border, headline, blank,
// add line, search line, blank, status, help.
const chrome = 9

// Model is the bubbletea model of the todo list.
type Model struct {
	store    *todo.Store
	headline headline.Model
	reveal   *reveal.Watcher
	log      zerolog.Logger

	vp     viewport.Model
	add    textinput.Model
	edit   textinput.Model
	search textinput.Model
	help   help.Model
	keys   keyMap

	mode    mode
	cursor  int // index into the displayed rows
	grabbed int // source row while moving
	width   int
	height  int

	err error
}

// Options configures New.
type Options struct {
	Headline headline.Model
	Reveal   *reveal.Watcher
	Logger   zerolog.Logger
}

// New creates the model around a loaded store.
func New(s *todo.Store, opt Options) Model {
	add := textinput.New()
	add.Prompt = "+ "
	add.Placeholder = "What you want"
	add.CharLimit = 200

	edit := textinput.New()
	edit.Prompt = "✎ "
	edit.CharLimit = 200

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"

	if opt.Headline.ID() == 0 {
		opt.Headline = headline.New(headline.DefaultLabels, headline.DefaultInterval)
	}
	w := opt.Reveal
	if w == nil {
		w = reveal.New(reveal.DefaultThreshold)
	}

	m := Model{
		store:    s,
		headline: opt.Headline,
		reveal:   w,
		log:      opt.Logger,
		vp:       viewport.New(76, 15),
		add:      add,
		edit:     edit,
		search:   search,
		help:     help.New(),
		keys:     defaultKeys(),
		width:    80,
		height:   24,
	}
	m.help.Styles.ShortKey = helpStyle
	m.help.Styles.ShortDesc = helpStyle
	m.search.SetValue(s.Search())
	m.add.SetValue(s.Input())
	m.resize()
	m.refresh()
	return m
}

// Err is the storage fault that ended the program, if any.
func (m Model) Err() error { return m.err }

// Init subscribes the reveal watcher and starts the headline timer.
func (m Model) Init() tea.Cmd {
	m.reveal.Start()
	return m.headline.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		// keep the cursor on screen
		m.cursor = max(min(m.cursor, m.vp.YOffset+m.vp.Height-1), m.vp.YOffset)
		m.refresh()
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m.quit(nil)
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeEdit:
			return m.updateEdit(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeMove:
			return m.updateMove(msg)
		}
		return m.updateNormal(msg)
	}

	var cmd tea.Cmd
	m.headline, cmd = m.headline.Update(msg)
	return m, cmd
}

func (m Model) quit(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.headline.Stop()
	m.reveal.Stop()
	if err != nil {
		m.log.Error().Err(err).Msg("storage fault")
	}
	return m, tea.Quit
}

// apply runs a store mutation; a storage fault ends the program.
func (m Model) apply(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		return m.quit(err)
	}
	m.refresh()
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.store.View()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(nil)

	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= max(m.vp.Height, 1)
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += max(m.vp.Height, 1)
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(rows) - 1

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		return m, m.add.Focus()

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.StartEdit(it.ID)
		m.edit.SetValue(m.store.Editing().Buffer)
		m.edit.CursorEnd()
		m.mode = modeEdit
		return m, m.edit.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			return m.apply(m.store.ToggleComplete(it.ID))
		}

	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			return m.apply(m.store.Remove(it.ID))
		}

	case key.Matches(msg, m.keys.Grab):
		if _, ok := m.selected(); ok {
			m.grabbed = m.cursor
			m.mode = modeMove
		}

	case key.Matches(msg, m.keys.MoveUp):
		return m.step(-1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.step(1)
	}

	m.refresh()
	return m, nil
}

// step moves the selected row one place, keeping it selected.
func (m Model) step(delta int) (tea.Model, tea.Cmd) {
	it, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := m.store.Reorder(todo.DropAt(m.cursor, m.cursor+delta)); err != nil {
		return m.quit(err)
	}
	m.follow(it.ID)
	m.refresh()
	return m, nil
}

func (m Model) updateMove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Grab):
		rows := m.store.View()
		m.mode = modeNormal
		if m.grabbed >= len(rows) {
			break
		}
		id := rows[m.grabbed].ID
		if err := m.store.Reorder(todo.DropAt(m.grabbed, m.cursor)); err != nil {
			return m.quit(err)
		}
		m.follow(id)
	case key.Matches(msg, m.keys.Cancel):
		// dropped outside any target
		m.mode = modeNormal
		if err := m.store.Reorder(todo.Drop{Source: m.grabbed}); err != nil {
			return m.quit(err)
		}
		m.cursor = m.grabbed
	}
	m.refresh()
	return m, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.store.SetInput(m.add.Value())
		if err := m.store.Add(); err != nil {
			return m.quit(err)
		}
		m.add.SetValue(m.store.Input())
		if m.store.Input() == "" {
			m.mode = modeNormal
			m.add.Blur()
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		m.add.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	m.store.SetInput(m.add.Value())
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sess := m.store.Editing()
	if sess == nil {
		m.mode = modeNormal
		m.edit.Blur()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeNormal
		m.edit.Blur()
		m.edit.SetValue("")
		return m.apply(m.store.SaveEdit(sess.ID))
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		m.edit.Blur()
		m.edit.SetValue("")
		m.store.CancelEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.store.SetEditBuffer(m.edit.Value())
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeNormal
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		m.search.Blur()
		m.search.SetValue("")
		m.store.SetSearch("")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.store.Search() {
		m.store.SetSearch(m.search.Value())
		m.cursor = 0
	}
	m.refresh()
	return m, cmd
}

func (m Model) selected() (model.Item, bool) {
	rows := m.store.View()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return model.Item{}, false
	}
	return rows[m.cursor], true
}

// follow points the cursor at the row showing id.
func (m *Model) follow(id string) {
	for i, it := range m.store.View() {
		if it.ID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) resize() {
	m.vp.Width = max(m.width-4, 10)
	m.vp.Height = max(m.height-chrome, 1)
	m.help.Width = m.vp.Width
}

// refresh re-renders the rows, keeps the cursor in view and lets the
// reveal watcher grow the window.
func (m *Model) refresh() {
	m.clamp()
	m.vp.SetContent(m.renderRows())
	m.scrollToCursor()
	m.observe()
}

func (m *Model) clamp() {
	n := len(m.store.View())
	m.cursor = max(min(m.cursor, n-1), 0)
	if m.mode == modeMove && m.grabbed >= n {
		m.mode = modeNormal
	}
}

func (m *Model) scrollToCursor() {
	switch {
	case m.cursor < m.vp.YOffset:
		m.vp.SetYOffset(m.cursor)
	case m.cursor >= m.vp.YOffset+m.vp.Height:
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m *Model) surface() reveal.Surface {
	return reveal.Surface{
		YOffset:    m.vp.YOffset,
		Height:     m.vp.Height,
		TotalLines: m.vp.TotalLineCount(),
	}
}

// observe grows the visible window while the list end is in reach.
func (m *Model) observe() {
	for m.reveal.Observe(m.surface()) {
		before := m.store.Visible()
		m.store.GrowVisible()
		if m.store.Visible() == before {
			return
		}
		m.log.Debug().Int("visible", m.store.Visible()).Msg("revealed more rows")
		m.vp.SetContent(m.renderRows())
	}
}
