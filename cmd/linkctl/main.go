package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/osse101/spotifylink/internal/config"
	"github.com/osse101/spotifylink/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, false)
	logger.InitLoggerWithWriter(logCfg, os.Stderr)

	app := newApp(NewRunner(cfg, os.Stdout))
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("linkctl: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "linkctl",
		Usage: "Operate the Spotify link state",
		Commands: []*cli.Command{
			migrateCommand(r),
			showCommand(r),
			authURLCommand(r),
		},
	}
}

func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create the link state table if it does not exist",
		Action: r.Migrate,
	}
}

func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the stored link of a Discord user with tokens masked",
		Flags: []cli.Flag{
			userIDFlag(),
		},
		Action: r.Show,
	}
}

func authURLCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth-url",
		Usage: "Print the Spotify authorization URL for a Discord user",
		Flags: []cli.Flag{
			userIDFlag(),
		},
		Action: r.AuthURL,
	}
}

func userIDFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     flagUserID,
		Aliases:  []string{"u"},
		Usage:    "Discord user ID",
		Required: true,
	}
}
