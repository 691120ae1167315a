package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/treemap/internal/view"
	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// Run starts the dataset fetch and the viewer, returning when the user quits
// or ctx ends.
func Run(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) error {
	store := view.NewStore()
	runner.Fetcher.FetchAsync(ctx, func(res dataset.Result) {
		_ = store.Publish(res)
	})

	p := tea.NewProgram(New(ctx, runner, store, opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
