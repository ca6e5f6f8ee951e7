package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/wyw/internal/todo"
)

// Run starts the interactive list and blocks until the user quits. Every
// change is already persisted when Run returns; a storage fault that ended
// the session is returned.
func Run(ctx context.Context, s *todo.Store, opt Options) error {
	m := New(s, opt)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
