package app

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
)

// Run starts the dashboard and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	if opts.API == nil {
		return errors.New("catalog api is required")
	}
	model := NewModel(opts)
	defer model.shutdown()
	program := tea.NewProgram(model, tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
