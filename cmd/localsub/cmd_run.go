package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/localsub/localsub/api"
	"github.com/localsub/localsub/log"
	"github.com/localsub/localsub/option"

	"github.com/spf13/cobra"
)

var commandRun = &cobra.Command{
	Use:   "run",
	Short: "Run the local conversion API",
	Run: func(cmd *cobra.Command, args []string) {
		err := run()
		if err != nil {
			log.Fatal(err)
		}
	},
	Args: cobra.NoArgs,
}

func init() {
	mainCommand.AddCommand(commandRun)
}

func run() error {
	options, err := readConfig()
	if err != nil {
		return err
	}
	logFactory, session, err := createSession(options)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := session.LoadPresets(ctx); err != nil {
		// Presets are reference data only, manual URLs still work.
		log.Warn("presets unavailable: ", err)
	}
	apiOptions := option.APIOptions{Listen: "127.0.0.1:9596"}
	if options.API != nil {
		apiOptions = *options.API
	}
	server := api.NewServer(logFactory, session, apiOptions)
	if err := server.Start(); err != nil {
		return err
	}
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)
	<-osSignals
	return server.Close()
}
