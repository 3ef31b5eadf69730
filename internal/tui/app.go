package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"mathquest/internal/engine"
)

// Run starts the full-screen dashboard and blocks until the player quits.
func Run(ctx context.Context, svc *engine.Service, opts Options, out io.Writer) error {
	m := newModel(ctx, svc, opts)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	final, err := p.Run()
	if fm, ok := final.(model); ok {
		fm.stopGame()
	}
	return err
}
