package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/idilsaglam/wyw/internal/model"
	"github.com/idilsaglam/wyw/internal/todo"
	"github.com/idilsaglam/wyw/internal/ui"
)

const maxText = 80

// termWidth is the stdout width, or zero when it is not a terminal.
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// printList renders the matching items in a panel, numbered the way the
// index arguments of done, rm, edit and mv expect them.
func printList(w io.Writer, s *todo.Store, group bool, width int) {
	th := ui.Current()
	items := s.Matching()
	done, pending := s.Stats()
	total := done + pending

	header := th.Title.Render("What you want") + "  " +
		th.Muted.Render(fmt.Sprintf("%d pending · %d done", pending, done))
	lines := []string{header, ui.ProgressBar(done, total, 20), ""}

	switch {
	case len(items) == 0 && s.Search() != "":
		lines = append(lines, th.Muted.Render(fmt.Sprintf("nothing matches %q", s.Search())))
	case len(items) == 0:
		lines = append(lines, th.Muted.Render("nothing to do. Add one with: todo add <text>"))
	case group:
		lines = append(lines, groupLines(items)...)
	default:
		lines = append(lines, flatLines(items, 0)...)
	}

	ui.Panel(w, lines, width)
}

func flatLines(items []model.Item, offset int) []string {
	th := ui.Current()
	out := make([]string, 0, len(items))
	for i, it := range items {
		box, text := th.BoxUnchecked, ansi.Truncate(it.Text, maxText, "...")
		if it.Completed {
			box, text = th.BoxChecked, th.Done.Render(text)
		}
		num := th.Muted.Render(fmt.Sprintf("%2d.", offset+i+1))
		out = append(out, fmt.Sprintf("%s %s %s", num, box, text))
	}
	return out
}

// groupLines splits items, already sorted pending first, into two sections
// without breaking the numbering.
func groupLines(items []model.Item) []string {
	th := ui.Current()
	split := len(items)
	for i, it := range items {
		if it.Completed {
			split = i
			break
		}
	}

	var out []string
	if split > 0 {
		out = append(out, th.Pending.Render(th.SymPending+" Pending"))
		out = append(out, flatLines(items[:split], 0)...)
	}
	if split < len(items) {
		if split > 0 {
			out = append(out, "")
		}
		out = append(out, th.Success.Render(th.SymDone+" Done"))
		out = append(out, flatLines(items[split:], split)...)
	}
	return out
}
