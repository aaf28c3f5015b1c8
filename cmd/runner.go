package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/catalog"
	"github.com/desertthunder/tunes/internal/repositories"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/desertthunder/tunes/internal/transport"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	logger    *log.Logger
	output    io.Writer
	catalog   *catalog.Catalog
	newTicker transport.TickerFunc
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Catalog *catalog.Catalog // skips loading from the configured source when set

	NewTicker transport.TickerFunc // defaults to [transport.NewTimeTicker]
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:    opts.Config,
		logger:    opts.Logger,
		output:    opts.Output,
		catalog:   opts.Catalog,
		newTicker: opts.NewTicker,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, catalogCommand, searchCommand, showCommand, playCommand, exportCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used by every command.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// loadCatalog returns the catalog from the configured source, caching it for the rest of the run.
func (r *Runner) loadCatalog() (*catalog.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	var (
		c   *catalog.Catalog
		err error
	)

	source := r.config.Catalog.Source
	switch source {
	case "", shared.SourceEmbedded:
		c = catalog.Default()
	case shared.SourceFile:
		c, err = catalog.Load(r.config.Catalog.Path)
	case shared.SourceDatabase:
		c, err = r.loadStoredCatalog()
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownSource, source)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Debug("catalog loaded", "source", source, "tracks", c.Len())
	r.catalog = c
	return c, nil
}

func (r *Runner) loadStoredCatalog() (*catalog.Catalog, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	c, err := repositories.NewCatalogRepository(db).Load()
	if errors.Is(err, shared.ErrCatalogNotSaved) {
		return nil, fmt.Errorf("%w: run 'tunes setup database' first", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", r.config.Database.Path, err)
	}
	return c, nil
}

// newPlayer builds a transport from the player settings.
func (r *Runner) newPlayer() *transport.Machine {
	volume := r.config.Player.Volume
	return transport.New(transport.Options{
		Interval:  r.config.Player.TickInterval.Duration,
		NewTicker: r.newTicker,
		Logger:    r.logger,
		Volume:    &volume,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
