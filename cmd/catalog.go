package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/tunes/internal/formatter"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Output formats accepted by the catalog command.
const (
	formatTable    = "table"
	formatJSON     = "json"
	formatCSV      = "csv"
	formatMarkdown = "markdown"
	formatText     = "text"
	formatTOML     = "toml"
)

// trackDetails is the JSON shape of the show command.
type trackDetails struct {
	models.Track
	Seconds  int    `json:"seconds"`
	CoverURL string `json:"cover_url"`
}

// Catalog prints every track grouped by category in the requested format.
func (r *Runner) Catalog(ctx context.Context, cmd *cli.Command) error {
	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	format := strings.ToLower(cmd.String("format"))
	switch format {
	case formatTable:
		formatter.RenderCatalogTable(r.output, c.Categories())
		return nil
	case formatJSON:
		return r.writeJSON(c.Categories(), cmd.Bool("pretty"))
	case formatCSV:
		data, err := formatter.ExportToCSV(c.Tracks())
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	case formatMarkdown, "md":
		data, err := formatter.ExportToMarkdown(c.Categories())
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	case formatText, "txt":
		data, err := formatter.ExportToText(c.Categories())
		if err != nil {
			return err
		}
		return r.writeBytes(data)
	case formatTOML:
		return c.Encode(r.output)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// Search prints the tracks whose title or artist contains the query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	results := c.Search(query)
	r.logger.Debug("search", "query", query, "results", len(results))

	if cmd.Bool("json") {
		return r.writeJSON(results, cmd.Bool("pretty"))
	}
	if len(results) == 0 {
		return r.writePlain("No tracks match %q\n", query)
	}

	formatter.RenderTracksTable(r.output, results)
	return nil
}

// Show prints one track, including its length in seconds and the cover it would display.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	track, err := c.Find(id)
	if err != nil {
		return err
	}

	seconds, err := track.Seconds()
	if err != nil {
		r.logger.Warn("track has an unplayable duration", "id", id, "duration", track.Duration)
	}

	details := trackDetails{
		Track:    track,
		Seconds:  seconds,
		CoverURL: r.coverFor(track),
	}
	if cmd.Bool("json") {
		return r.writeJSON(details, true)
	}

	r.writePlain("ID:       %s\n", details.ID)
	r.writePlain("Title:    %s\n", details.Title)
	r.writePlain("Artist:   %s\n", details.Artist)
	r.writePlain("Duration: %s (%ds)\n", details.Duration, details.Seconds)
	return r.writePlain("Cover:    %s\n", details.CoverURL)
}

// coverFor resolves a track's cover, using the configured fallback or [models.DefaultCover] when none is set.
func (r *Runner) coverFor(t models.Track) string {
	if strings.TrimSpace(r.config.Player.DefaultCover) == "" {
		return t.CoverURL()
	}
	return t.CoverOr(r.config.Player.DefaultCover)
}
