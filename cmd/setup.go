package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/tunes/internal/catalog"
	"github.com/desertthunder/tunes/internal/repositories"
	"github.com/desertthunder/tunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes a config file from the embedded template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", configPath)
	return r.writePlain("✓ Config written to %s\n", configPath)
}

// SetupDatabase initializes the database, runs migrations and stores a catalog in it.
//
// The catalog comes from --from when given, otherwise from the built-in catalog.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	config := r.setupConfig(cmd.String("config"))

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if config.Database.Path != ":memory:" {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	}

	if cmd.Bool("rollback") {
		r.logger.Info("rolling back latest migration")
		if err := shared.RollbackMigration(db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return r.writePlain("✓ Rolled back latest migration on %s\n", config.Database.Path)
	}

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c := catalog.Default()
	if from := cmd.String("from"); from != "" {
		if c, err = catalog.Load(from); err != nil {
			return fmt.Errorf("failed to import catalog: %w", err)
		}
		r.logger.Info("importing catalog", "file", from, "tracks", c.Len())
	}

	repo := repositories.NewCatalogRepository(db)
	if err := repo.Save(c); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}

	count, err := repo.Count()
	if err != nil {
		return err
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	r.writePlain("✓ Stored %d tracks in %d categories at %s\n", count, len(c.Groups()), config.Database.Path)
	return r.writePlain("Set [catalog] source = \"%s\" to play from it.\n", shared.SourceDatabase)
}

// setupConfig loads the config at path, falling back to the runner's config when the file is missing or invalid.
func (r *Runner) setupConfig(path string) *shared.Config {
	if _, err := os.Stat(path); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return r.config
	}
	return config
}
