// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles config file creation and database initialization.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config file populated with defaults",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database, run migrations and store a catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "TOML catalog to import (default: the built-in catalog)",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the latest migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// catalogCommand prints the catalog grouped by category.
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "catalog",
		Aliases: []string{"ls"},
		Usage:   "List every track by category",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: table, json, csv, markdown, text or toml",
				Value:   formatTable,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.Catalog,
	}
}

// searchCommand filters the catalog by title or artist.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Find tracks whose title or artist contains the query",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// showCommand prints the details of one track.
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show a track's details",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Show,
	}
}

// playCommand plays a track headlessly, printing the state after every tick.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "Play a track without the TUI and print progress",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "seconds",
				Aliases: []string{"s"},
				Usage:   "Stop after this many seconds of playback (0 plays to the end)",
			},
			&cli.FloatFlag{
				Name:  "seek",
				Usage: "Start at this percentage of the track",
			},
			&cli.IntFlag{
				Name:  "volume",
				Usage: "Volume from 0 to 100 (default from config)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print each state as a JSON line",
			},
		},
		Action: r.Play,
	}
}

// exportCommand writes the catalog to one file per category.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export each category to its own file with a manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Output directory",
				Value:   "tunes_export",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, csv, markdown or text",
				Value:   "json",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of concurrent writers",
				Value: 4,
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Categories started per second (0 for unlimited)",
			},
		},
		Action: r.Export,
	}
}

// serveCommand starts the HTTP remote-control API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the player over HTTP with a server-sent event stream",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Address to listen on (default from config)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive playback.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive player",
		Action:  r.TUI,
	}
}
