package main

import (
	"os"

	"github.com/localsub/localsub/convert"
	"github.com/localsub/localsub/engine"
	"github.com/localsub/localsub/log"
	"github.com/localsub/localsub/option"

	E "github.com/sagernet/sing/common/exceptions"
	"github.com/sagernet/sing/common/json"

	"github.com/spf13/cobra"
)

var (
	configPath   string
	workingDir   string
	disableColor bool
)

var mainCommand = &cobra.Command{
	Use:              "localsub",
	PersistentPreRun: preRun,
}

func init() {
	mainCommand.PersistentFlags().StringVarP(&configPath, "config", "c", "config.json", "set configuration file path")
	mainCommand.PersistentFlags().StringVarP(&workingDir, "directory", "D", "", "set working directory")
	mainCommand.PersistentFlags().BoolVar(&disableColor, "disable-color", false, "disable color output")
}

func main() {
	if err := mainCommand.Execute(); err != nil {
		log.Fatal(err)
	}
}

func preRun(cmd *cobra.Command, args []string) {
	if workingDir != "" {
		if err := os.Chdir(workingDir); err != nil {
			log.Fatal(err)
		}
	}
}

func readConfig() (option.Options, error) {
	var options option.Options
	configContent, err := os.ReadFile(configPath)
	if err != nil {
		return options, E.Cause(err, "read config")
	}
	err = json.Unmarshal(configContent, &options)
	if err != nil {
		return options, E.Cause(err, "decode config")
	}
	return options, nil
}

// createSession wires the logger, the engine client and a session carrying
// the configured profile.
func createSession(options option.Options) (log.Factory, *convert.Session, error) {
	var logOptions option.LogOptions
	if options.Log != nil {
		logOptions = *options.Log
	}
	logOptions.DisableColor = logOptions.DisableColor || disableColor
	logFactory, err := log.New(logOptions)
	if err != nil {
		return nil, nil, E.Cause(err, "create logger")
	}
	log.SetStdLogger(logFactory.Logger())
	client, err := engine.NewClient(logFactory.NewLogger("engine"), options.Engine)
	if err != nil {
		return nil, nil, E.Cause(err, "create engine client")
	}
	session := convert.NewSession(client, logFactory.NewLogger("session"))
	if options.Profile != nil {
		session.SetProfile(*options.Profile)
	}
	return logFactory, session, nil
}
