package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/tunes/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes every category to its own file and prints progress as it goes.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	format := cmd.String("format")
	switch format {
	case "md":
		format = tasks.FormatMarkdown
	case "txt":
		format = tasks.FormatText
	}

	prog := make(chan tasks.ProgressUpdate, 32)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	engine := tasks.NewExportEngine(r.logger)
	result, err := engine.Export(ctx, prog, c.Categories(), tasks.ExportOpts{
		Format:     format,
		OutputDir:  cmd.String("dir"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	})
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}

	r.writePlain("✓ Exported %d of %d categories to %s\n", result.Successful, result.TotalCategories, result.OutputDirectory)
	if result.Failed > 0 {
		r.writePlain("⚠ %d categories failed, see the manifest for details\n", result.Failed)
	}
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}
