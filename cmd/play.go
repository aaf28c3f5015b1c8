package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunes/internal/formatter"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/urfave/cli/v3"
)

const barWidth = 30

// Play selects a track and prints the playback state after every change until the track ends,
// the --seconds budget runs out or the context is cancelled.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	seconds := int(cmd.Int("seconds"))
	if seconds < 0 {
		return fmt.Errorf("%w: --seconds must not be negative", shared.ErrInvalidFlag)
	}

	c, err := r.loadCatalog()
	if err != nil {
		return err
	}

	track, err := c.Find(id)
	if err != nil {
		return err
	}

	player := r.newPlayer()
	defer player.Close()

	updates, unsubscribe := player.Subscribe()
	defer unsubscribe()
	<-updates

	if v := int(cmd.Int("volume")); v >= 0 {
		player.SetVolume(v)
	}
	if err := player.SelectTrack(track); err != nil {
		return err
	}
	if cmd.IsSet("seek") {
		player.Seek(cmd.Float("seek"))
	}

	start := player.State().Elapsed
	r.logger.Info("playing", "id", track.ID, "title", track.Title, "from", shared.FormatDuration(start))

	emit := func(s models.PlaybackState) error {
		if cmd.Bool("json") {
			return r.writeJSON(s, false)
		}
		return r.writePlain("%s\n", formatter.NowPlaying(s, barWidth))
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("playback interrupted", "elapsed", player.State().Elapsed)
			return nil
		case s, ok := <-updates:
			if !ok {
				return nil
			}
			if err := emit(s); err != nil {
				return err
			}
			if s.Status == models.StatusStopped {
				r.logger.Info("track finished", "id", track.ID)
				return nil
			}
			if seconds > 0 && s.Elapsed-start >= seconds {
				return nil
			}
		}
	}
}
