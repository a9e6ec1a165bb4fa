package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/mmynk/motoledger/internal/app"
	"github.com/mmynk/motoledger/internal/cli"
	"github.com/mmynk/motoledger/internal/config"
	"github.com/mmynk/motoledger/internal/storage"
	"github.com/mmynk/motoledger/pkg/logging"
)

func main() {
	logging.Setup()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	cli.Register(commander, &cli.Env{
		Out: os.Stdout,
		Err: os.Stderr,
		OpenStore: func(ctx context.Context) (storage.Store, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			logging.SetupWithLevel(cfg.LogLevel)
			// Seeding is an explicit command here.
			cfg.SeedExampleData = false
			return app.OpenStore(ctx, cfg)
		},
	})

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
