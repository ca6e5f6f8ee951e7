package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/idilsaglam/wyw/internal/model"
	"github.com/idilsaglam/wyw/internal/todo"
	"github.com/idilsaglam/wyw/internal/ui"
)

func usage(msg string) error { return cli.Exit(msg, 2) }

func lsCmd(app *App) *cli.Command {
	return &cli.Command{
		Name:  "ls",
		Usage: "print the list",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "group", Aliases: []string{"g"}, Usage: "group by pending/done"},
			&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "only items containing `TERM`"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			app.Store.SetSearch(c.String("search"))
			printList(app.Out, app.Store, c.Bool("group"), termWidth())
			return nil
		},
	}
}

func addCmd(app *App) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add an item",
		ArgsUsage: "<text...>",
		Action: func(ctx context.Context, c *cli.Command) error {
			text := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(text) == "" {
				return usage("usage: todo add <text...>")
			}
			if err := app.Store.AddText(text); err != nil {
				return err
			}
			ui.OK(app.Out, "added")
			return nil
		},
	}
}

func doneCmd(app *App) *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "toggle done for the item at index",
		ArgsUsage: "<index>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return usage("usage: todo done <index>")
			}
			it, err := app.itemAt("done", c.Args().First())
			if err != nil {
				return err
			}
			if err := app.Store.ToggleComplete(it.ID); err != nil {
				return err
			}
			ui.OK(app.Out, "toggled")
			return nil
		},
	}
}

func rmCmd(app *App) *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "remove the item at index",
		ArgsUsage: "<index>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return usage("usage: todo rm <index>")
			}
			it, err := app.itemAt("rm", c.Args().First())
			if err != nil {
				return err
			}
			if err := app.Store.Remove(it.ID); err != nil {
				return err
			}
			ui.OK(app.Out, "removed")
			return nil
		},
	}
}

func editCmd(app *App) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "replace the text of the item at index",
		ArgsUsage: "<index> <text...>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() < 2 {
				return usage("usage: todo edit <index> <text...>")
			}
			it, err := app.itemAt("edit", c.Args().First())
			if err != nil {
				return err
			}
			app.Store.StartEdit(it.ID)
			app.Store.SetEditBuffer(strings.Join(c.Args().Tail(), " "))
			if err := app.Store.SaveEdit(it.ID); err != nil {
				return err
			}
			ui.OK(app.Out, "edited")
			return nil
		},
	}
}

func mvCmd(app *App) *cli.Command {
	return &cli.Command{
		Name:      "mv",
		Usage:     "move the item at one index to another",
		ArgsUsage: "<from> <to>",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return usage("usage: todo mv <from> <to>")
			}
			from, err := app.index("mv", c.Args().Get(0))
			if err != nil {
				return err
			}
			to, err := app.index("mv", c.Args().Get(1))
			if err != nil {
				return err
			}
			if err := app.Store.Reorder(todo.DropAt(from, to)); err != nil {
				return err
			}
			ui.OK(app.Out, "moved")
			return nil
		},
	}
}

// index turns a 1-based argument into a 0-based index of the displayed order.
func (a *App) index(cmd, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, usage(cmd + ": not a number: " + arg)
	}
	have := len(a.Store.Matching())
	if n < 1 || n > have {
		fmt.Fprintln(a.Err, ui.Current().Muted.Render("Hint: run `todo ls` to see valid indexes"))
		return 0, usage(fmt.Sprintf("index out of range: have %d, got %d", have, n))
	}
	return n - 1, nil
}

func (a *App) itemAt(cmd, arg string) (model.Item, error) {
	i, err := a.index(cmd, arg)
	if err != nil {
		return model.Item{}, err
	}
	return a.Store.Matching()[i], nil
}
