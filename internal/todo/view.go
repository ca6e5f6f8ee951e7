package todo

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/idilsaglam/wyw/internal/model"
)

// Derive computes the displayed rows from the authoritative list: keep the
// items matching term, put incomplete items first, then take the first n.
// It never modifies items.
func Derive(items []model.Item, term string, n int) []model.Item {
	return Paginate(SortByCompletion(Filter(items, term)), n)
}

// Filter keeps the items whose text contains term, ignoring case. An empty
// term keeps everything. Relative order is preserved.
func Filter(items []model.Item, term string) []model.Item {
	out := make([]model.Item, 0, len(items))
	if term == "" {
		return append(out, items...)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, it := range items {
		if strings.Contains(fold.String(it.Text), needle) {
			out = append(out, it)
		}
	}
	return out
}

// SortByCompletion returns a copy of items with incomplete items before
// completed ones. Ties keep their input order.
func SortByCompletion(items []model.Item) []model.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b model.Item) int {
		switch {
		case a.Completed == b.Completed:
			return 0
		case a.Completed:
			return 1
		default:
			return -1
		}
	})
	return out
}

// Paginate returns the first n items, or all of them when there are fewer.
func Paginate(items []model.Item, n int) []model.Item {
	if n < 0 {
		n = 0
	}
	return items[:min(n, len(items))]
}
