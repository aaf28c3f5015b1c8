package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/desertthunder/tunes/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal player.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if lvl, err := shared.ParseLogLevel(r.config.Log.Level); err == nil {
		shared.SetLogLevel(fileLogger, lvl)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(r.newPlayer(), c, r.logger)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
