// Package todo owns the authoritative todo list: CRUD, the edit session,
// the search and pagination cursor, and write-through persistence.
package todo

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/wyw/internal/model"
	"github.com/idilsaglam/wyw/internal/store"
)

const (
	DefaultInitialVisible = 10
	DefaultVisibleStep    = 10
)

// EditSession is the single in-progress text edit.
type EditSession struct {
	ID     string
	Buffer string
}

// Drop describes the end of a reorder gesture. Source and Destination are
// indices into the displayed view; a nil Destination means the row was
// dropped outside any valid target.
type Drop struct {
	Source      int
	Destination *int
}

// DropAt is a convenience for a drop that landed on a target.
func DropAt(src, dst int) Drop {
	return Drop{Source: src, Destination: &dst}
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load diagnostics and write-through.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithKey overrides the slot key the list is persisted under.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithPageSize sets the initial visible-count cursor and its growth step.
func WithPageSize(initial, step int) Option {
	return func(s *Store) {
		s.initial = initial
		s.step = step
	}
}

// WithIDFunc replaces the ID generator.
func WithIDFunc(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// Store holds the list and the view state derived from it. It is owned by a
// single goroutine; callers serialize access.
type Store struct {
	slot  store.Slot
	key   string
	log   zerolog.Logger
	newID func() string

	items   []model.Item
	input   string
	search  string
	visible int
	initial int
	step    int
	edit    *EditSession
}

// New creates an empty store persisting to slot. Call Load to read the
// previously saved list.
func New(slot store.Slot, opts ...Option) *Store {
	s := &Store{
		slot:    slot,
		key:     store.DefaultKey,
		log:     zerolog.Nop(),
		newID:   func() string { return uuid.New().String() },
		items:   []model.Item{},
		initial: DefaultInitialVisible,
		step:    DefaultVisibleStep,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.visible = s.initial
	return s
}

// Load replaces the list with the persisted one. An absent or malformed value
// yields an empty list; only a failure to read the slot is returned.
func (s *Store) Load() error {
	raw, ok, err := s.slot.Get(s.key)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.key, err)
	}
	s.items = []model.Item{}
	if !ok {
		s.log.Debug().Str("key", s.key).Msg("no saved list")
		return nil
	}

	items, err := store.DecodeItems(raw)
	if err != nil {
		if errors.Is(err, store.ErrMalformed) {
			s.log.Warn().Err(err).Str("key", s.key).Msg("saved list unreadable, starting empty")
			return nil
		}
		return err
	}
	s.items = s.repairIDs(items)
	s.log.Debug().Int("count", len(s.items)).Msg("loaded list")
	return nil
}

// repairIDs gives items with a missing or duplicated id a fresh one.
func (s *Store) repairIDs(items []model.Item) []model.Item {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		if _, dup := seen[items[i].ID]; items[i].ID == "" || dup {
			old := items[i].ID
			items[i].ID = s.newID()
			s.log.Warn().Str("old", old).Str("new", items[i].ID).Msg("reassigned item id")
		}
		seen[items[i].ID] = struct{}{}
	}
	return items
}

func (s *Store) persist() error {
	b, err := store.EncodeItems(s.items)
	if err != nil {
		return err
	}
	if err := s.slot.Set(s.key, b); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	s.log.Debug().Int("count", len(s.items)).Msg("saved list")
	return nil
}

// replace swaps in a new authoritative list and writes it through.
func (s *Store) replace(items []model.Item) error {
	s.items = items
	return s.persist()
}

func (s *Store) indexOf(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// SetInput updates the add-input buffer.
func (s *Store) SetInput(text string) { s.input = text }

// Input returns the add-input buffer.
func (s *Store) Input() string { return s.input }

// Add appends the input buffer as a new item and clears the buffer.
// Whitespace-only input is ignored and left in place.
func (s *Store) Add() error {
	if strings.TrimSpace(s.input) == "" {
		return nil
	}
	if err := s.append(s.input); err != nil {
		return err
	}
	s.input = ""
	return nil
}

// AddText is Add for callers without an input buffer.
func (s *Store) AddText(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.append(text)
}

func (s *Store) append(text string) error {
	next := make([]model.Item, len(s.items), len(s.items)+1)
	copy(next, s.items)
	next = append(next, model.Item{ID: s.newID(), Text: text})
	return s.replace(next)
}

// Remove deletes the item with id. Unknown ids are ignored.
func (s *Store) Remove(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := make([]model.Item, 0, len(s.items)-1)
	next = append(next, s.items[:i]...)
	next = append(next, s.items[i+1:]...)
	if s.edit != nil && s.edit.ID == id {
		s.edit = nil
	}
	return s.replace(next)
}

// ToggleComplete flips the completed flag of the item with id.
func (s *Store) ToggleComplete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := s.Items()
	next[i].Completed = !next[i].Completed
	return s.replace(next)
}

// StartEdit opens the edit session for id, seeded with the item's text.
// An unknown id closes any open session.
func (s *Store) StartEdit(id string) {
	i := s.indexOf(id)
	if i < 0 {
		s.edit = nil
		return
	}
	s.edit = &EditSession{ID: id, Buffer: s.items[i].Text}
}

// SetEditBuffer updates the draft text of the open session.
func (s *Store) SetEditBuffer(text string) {
	if s.edit != nil {
		s.edit.Buffer = text
	}
}

// Editing returns a copy of the open session, or nil.
func (s *Store) Editing() *EditSession {
	if s.edit == nil {
		return nil
	}
	e := *s.edit
	return &e
}

// SaveEdit writes the draft as the item's text and closes the session.
// The draft is stored as-is, empty included.
func (s *Store) SaveEdit(id string) error {
	if s.edit == nil || s.edit.ID != id {
		return nil
	}
	buf := s.edit.Buffer
	s.edit = nil

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	next := s.Items()
	next[i].Text = buf
	return s.replace(next)
}

// CancelEdit closes the session without writing.
func (s *Store) CancelEdit() { s.edit = nil }

// Reorder moves the row at d.Source of the displayed order to d.Destination.
// Indices are resolved to items by identity, so the row the user grabbed is
// the one that moves even while a search or the completion sort is active.
func (s *Store) Reorder(d Drop) error {
	if d.Destination == nil {
		return nil
	}
	view := s.Matching()
	src, dst := d.Source, *d.Destination
	if src == dst || src < 0 || dst < 0 || src >= len(view) || dst >= len(view) {
		return nil
	}

	moved, anchor := view[src].ID, view[dst].ID
	from := s.indexOf(moved)
	next := make([]model.Item, 0, len(s.items))
	next = append(next, s.items[:from]...)
	next = append(next, s.items[from+1:]...)

	to := 0
	for i, it := range next {
		if it.ID == anchor {
			to = i
			break
		}
	}
	if dst > src {
		to++
	}
	next = slices.Insert(next, to, s.items[from])

	s.log.Debug().
		Int("src", src).Int("dst", dst).
		Int("from", from).Int("to", to).
		Msg("reorder")
	return s.replace(next)
}

// SetSearch sets the filter term of the view.
func (s *Store) SetSearch(term string) { s.search = term }

// Search returns the current filter term.
func (s *Store) Search() string { return s.search }

// Visible returns the visible-count cursor.
func (s *Store) Visible() int { return s.visible }

// GrowVisible reveals another page of the view. The cursor never grows past
// the filtered length once it has reached it.
func (s *Store) GrowVisible() {
	limit := max(s.visible, len(Filter(s.items, s.search)))
	s.visible = min(s.visible+s.step, limit)
}

// ResetVisible returns the cursor to its initial value.
func (s *Store) ResetVisible() { s.visible = s.initial }

// View returns the filtered, sorted and paginated rows.
func (s *Store) View() []model.Item {
	return Derive(s.items, s.search, s.visible)
}

// Matching returns the filtered and sorted rows without pagination.
func (s *Store) Matching() []model.Item {
	return SortByCompletion(Filter(s.items, s.search))
}

// Items returns a copy of the authoritative list.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with id.
func (s *Store) Get(id string) (model.Item, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return model.Item{}, false
}

// Len returns the number of items in the list.
func (s *Store) Len() int { return len(s.items) }

// Stats counts completed and pending items.
func (s *Store) Stats() (done, pending int) {
	for _, it := range s.items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
