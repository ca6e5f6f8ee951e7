package todo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/wyw/internal/model"
	"github.com/idilsaglam/wyw/internal/store"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, texts ...string) (*Store, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	s := New(mem, WithIDFunc(seqIDs()))
	require.NoError(t, s.Load())
	for _, text := range texts {
		require.NoError(t, s.AddText(text))
	}
	return s, mem
}

func persisted(t *testing.T, mem *store.Memory) []model.Item {
	t.Helper()
	raw, ok, err := mem.Get(store.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	items, err := store.DecodeItems(raw)
	require.NoError(t, err)
	return items
}

type failingSlot struct{ *store.Memory }

func (f *failingSlot) Set(string, []byte) error { return errors.New("disk full") }

func TestLoad_Absent(t *testing.T) {
	s := New(store.NewMemory())
	require.NoError(t, s.Load())
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Items())
}

func TestLoad_Malformed(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":     `{not json`,
		"object":       `{"id":"1"}`,
		"null":         `null`,
		"string":       `"todos"`,
		"wrong fields": `[{"id":1,"text":"x"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			mem := store.NewMemory()
			require.NoError(t, mem.Set(store.DefaultKey, []byte(raw)))

			s := New(mem)
			require.NoError(t, s.Load())
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	s, mem := newTestStore(t, "Buy milk", "Call mom", "buy bread")
	require.NoError(t, s.ToggleComplete("id-2"))

	reloaded := New(mem)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, s.Items(), reloaded.Items())
}

func TestLoad_RepairsIDs(t *testing.T) {
	mem := store.NewMemory()
	require.NoError(t, mem.Set(store.DefaultKey, []byte(`[{"id":"a","text":"x"},{"id":"a","text":"y"},{"text":"z"}]`)))

	s := New(mem, WithIDFunc(seqIDs()))
	require.NoError(t, s.Load())
	assert.Equal(t, []string{"a", "id-1", "id-2"}, ids(s.Items()))
}

func TestAdd_Whitespace(t *testing.T) {
	s, mem := newTestStore(t, "one")

	for _, in := range []string{"", " ", "\t\n", "   \r\n  "} {
		s.SetInput(in)
		require.NoError(t, s.Add())
		assert.Equal(t, 1, s.Len())
		assert.Equal(t, in, s.Input(), "rejected input stays in the buffer")
	}
	assert.Len(t, persisted(t, mem), 1)
}

func TestAdd_Appends(t *testing.T) {
	s, mem := newTestStore(t, "one", "two")

	s.SetInput("  three ")
	require.NoError(t, s.Add())

	items := s.Items()
	require.Len(t, items, 3)
	last := items[2]
	assert.Equal(t, "  three ", last.Text)
	assert.False(t, last.Completed)
	assert.NotContains(t, ids(items[:2]), last.ID)
	assert.Empty(t, s.Input())
	assert.Equal(t, items, persisted(t, mem))
}

func TestAdd_UniqueRandomIDs(t *testing.T) {
	s := New(store.NewMemory())
	seen := map[string]bool{}
	for i := range 50 {
		require.NoError(t, s.AddText(fmt.Sprintf("item %d", i)))
	}
	for _, it := range s.Items() {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
	}
}

func TestRemove(t *testing.T) {
	s, mem := newTestStore(t, "one", "two", "three")

	require.NoError(t, s.Remove("id-2"))
	_, ok := s.Get("id-2")
	assert.False(t, ok)
	assert.Equal(t, []string{"id-1", "id-3"}, ids(persisted(t, mem)))

	before := s.Items()
	require.NoError(t, s.Remove("missing"))
	assert.Equal(t, before, s.Items())
}

func TestToggleComplete(t *testing.T) {
	s, mem := newTestStore(t, "one", "two")

	require.NoError(t, s.ToggleComplete("id-1"))
	it, _ := s.Get("id-1")
	assert.True(t, it.Completed)
	assert.True(t, persisted(t, mem)[0].Completed)

	require.NoError(t, s.ToggleComplete("id-1"))
	it, _ = s.Get("id-1")
	assert.False(t, it.Completed)

	before := s.Items()
	require.NoError(t, s.ToggleComplete("missing"))
	assert.Equal(t, before, s.Items())
}

func TestEdit(t *testing.T) {
	s, mem := newTestStore(t, "one", "two")
	require.NoError(t, s.ToggleComplete("id-1"))

	s.StartEdit("id-1")
	require.NotNil(t, s.Editing())
	assert.Equal(t, "one", s.Editing().Buffer)

	s.SetEditBuffer("uno")
	require.NoError(t, s.SaveEdit("id-1"))

	assert.Nil(t, s.Editing())
	assert.Equal(t, []model.Item{
		{ID: "id-1", Text: "uno", Completed: true},
		{ID: "id-2", Text: "two"},
	}, s.Items())
	assert.Equal(t, s.Items(), persisted(t, mem))
}

func TestEdit_EmptyBufferIsSaved(t *testing.T) {
	s, _ := newTestStore(t, "one")

	s.StartEdit("id-1")
	s.SetEditBuffer("")
	require.NoError(t, s.SaveEdit("id-1"))

	it, _ := s.Get("id-1")
	assert.Equal(t, "", it.Text)
}

func TestEdit_UnknownAndCancel(t *testing.T) {
	s, _ := newTestStore(t, "one")

	s.StartEdit("missing")
	assert.Nil(t, s.Editing())

	s.StartEdit("id-1")
	s.SetEditBuffer("changed")
	s.CancelEdit()
	assert.Nil(t, s.Editing())
	it, _ := s.Get("id-1")
	assert.Equal(t, "one", it.Text)

	// save without a matching session does nothing
	require.NoError(t, s.SaveEdit("id-1"))
	it, _ = s.Get("id-1")
	assert.Equal(t, "one", it.Text)
}

func TestRemove_ClosesEditSession(t *testing.T) {
	s, _ := newTestStore(t, "one")
	s.StartEdit("id-1")
	require.NoError(t, s.Remove("id-1"))
	assert.Nil(t, s.Editing())
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name string
		drop Drop
		want []string
	}{
		{name: "down", drop: DropAt(0, 2), want: []string{"id-2", "id-3", "id-1", "id-4"}},
		{name: "up", drop: DropAt(3, 1), want: []string{"id-1", "id-4", "id-2", "id-3"}},
		{name: "to end", drop: DropAt(0, 3), want: []string{"id-2", "id-3", "id-4", "id-1"}},
		{name: "to start", drop: DropAt(2, 0), want: []string{"id-3", "id-1", "id-2", "id-4"}},
		{name: "same place", drop: DropAt(1, 1), want: []string{"id-1", "id-2", "id-3", "id-4"}},
		{name: "no destination", drop: Drop{Source: 1}, want: []string{"id-1", "id-2", "id-3", "id-4"}},
		{name: "out of range", drop: DropAt(0, 9), want: []string{"id-1", "id-2", "id-3", "id-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mem := newTestStore(t, "a", "b", "c", "d")
			before := s.Items()

			require.NoError(t, s.Reorder(tt.drop))

			after := s.Items()
			assert.Equal(t, tt.want, ids(after))
			assert.ElementsMatch(t, before, after)
			assert.Equal(t, after, persisted(t, mem))
		})
	}
}

func TestReorder_UsesDisplayedRows(t *testing.T) {
	s, _ := newTestStore(t, "buy milk", "call mom", "buy bread", "buy eggs")
	s.SetSearch("buy")
	// displayed: id-1, id-3, id-4

	require.NoError(t, s.Reorder(DropAt(2, 0)))

	assert.Equal(t, []string{"id-4", "id-1", "id-2", "id-3"}, ids(s.Items()))
	assert.Equal(t, []string{"id-4", "id-1", "id-3"}, ids(s.View()))
}

func TestReorder_UnderCompletionSort(t *testing.T) {
	s, _ := newTestStore(t, "a", "b", "c")
	require.NoError(t, s.ToggleComplete("id-1"))
	// displayed: id-2, id-3, id-1

	require.NoError(t, s.Reorder(DropAt(1, 0)))

	assert.Equal(t, []string{"id-3", "id-2", "id-1"}, ids(s.View()))
}

func TestGrowVisible(t *testing.T) {
	s := New(store.NewMemory(), WithPageSize(2, 3))
	for _, text := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, s.AddText(text))
	}

	assert.Len(t, s.View(), 2)
	s.GrowVisible()
	assert.Equal(t, 5, s.Visible())
	assert.Len(t, s.View(), 5)

	s.GrowVisible()
	assert.Equal(t, 5, s.Visible(), "cursor stops at the filtered length")

	s.ResetVisible()
	assert.Equal(t, 2, s.Visible())
}

func TestGrowVisible_RespectsSearch(t *testing.T) {
	s := New(store.NewMemory(), WithPageSize(1, 5))
	for _, text := range []string{"buy a", "buy b", "sell", "sell", "sell"} {
		require.NoError(t, s.AddText(text))
	}
	s.SetSearch("buy")

	s.GrowVisible()
	assert.Equal(t, 2, s.Visible())
	assert.Len(t, s.View(), 2)
}

func TestSetSearch_ResetsNothingElse(t *testing.T) {
	s := New(store.NewMemory(), WithPageSize(1, 1))
	require.NoError(t, s.AddText("a"))
	require.NoError(t, s.AddText("b"))
	s.GrowVisible()
	s.SetInput("draft")

	s.SetSearch("a")

	assert.Equal(t, "a", s.Search())
	assert.Equal(t, 2, s.Visible())
	assert.Equal(t, "draft", s.Input())
}

func TestWriteFailurePropagates(t *testing.T) {
	slot := &failingSlot{Memory: store.NewMemory()}
	s := New(slot)
	require.NoError(t, s.Load())

	err := s.AddText("x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t, "a", "b", "c")
	require.NoError(t, s.ToggleComplete("id-3"))

	done, pending := s.Stats()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)
}
