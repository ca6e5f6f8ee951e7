package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/wyw/internal/model"
)

func ids(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	items := []model.Item{
		{ID: "1", Text: "Buy milk"},
		{ID: "2", Text: "Call mom", Completed: true},
		{ID: "3", Text: "buy bread", Completed: true},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "empty term keeps all", term: "", want: []string{"1", "2", "3"}},
		{name: "case insensitive", term: "buy", want: []string{"1", "3"}},
		{name: "upper term", term: "BUY", want: []string{"1", "3"}},
		{name: "inner substring", term: "ll m", want: []string{"2"}},
		{name: "no match", term: "walk", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(items, tt.term)))
		})
	}
}

func TestFilter_UnicodeFolding(t *testing.T) {
	items := []model.Item{{ID: "1", Text: "Straße fegen"}, {ID: "2", Text: "ÉCOLE"}}

	assert.Equal(t, []string{"2"}, ids(Filter(items, "école")))
	assert.Equal(t, []string{"1"}, ids(Filter(items, "STRASSE")))
}

func TestSortByCompletion_Stable(t *testing.T) {
	items := []model.Item{
		{ID: "A", Completed: true},
		{ID: "B"},
		{ID: "C"},
	}

	assert.Equal(t, []string{"B", "C", "A"}, ids(SortByCompletion(items)))
	// input untouched
	assert.Equal(t, []string{"A", "B", "C"}, ids(items))
}

func TestSortByCompletion_KeepsGroupOrder(t *testing.T) {
	items := []model.Item{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3", Completed: true},
		{ID: "4"},
		{ID: "5", Completed: true},
	}

	assert.Equal(t, []string{"2", "4", "1", "3", "5"}, ids(SortByCompletion(items)))
}

func TestPaginate(t *testing.T) {
	items := []model.Item{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}}

	assert.Len(t, Paginate(items, 2), 2)
	assert.Equal(t, []string{"1", "2"}, ids(Paginate(items, 2)))
	assert.Len(t, Paginate(items, 5), 5)
	assert.Len(t, Paginate(items, 8), 5)
	assert.Empty(t, Paginate(items, 0))
	assert.Empty(t, Paginate(items, -1))
	assert.Empty(t, Paginate(nil, 3))
}

func TestDerive(t *testing.T) {
	items := []model.Item{
		{ID: "1", Text: "Buy milk", Completed: true},
		{ID: "2", Text: "Call mom"},
		{ID: "3", Text: "buy bread"},
		{ID: "4", Text: "buy eggs"},
	}

	assert.Equal(t, []string{"3", "4", "1"}, ids(Derive(items, "buy", 10)))
	assert.Equal(t, []string{"3"}, ids(Derive(items, "buy", 1)))
	assert.Equal(t, []string{"2", "3"}, ids(Derive(items, "", 2)))
}
