package main

import (
	"context"
	"os"
	"text/tabwriter"

	"github.com/localsub/localsub/log"

	F "github.com/sagernet/sing/common/format"

	"github.com/spf13/cobra"
)

var commandPresets = &cobra.Command{
	Use:   "presets",
	Short: "List the remote-config presets known to the engine",
	Run: func(cmd *cobra.Command, args []string) {
		err := listPresets()
		if err != nil {
			log.Fatal(err)
		}
	},
	Args: cobra.NoArgs,
}

func init() {
	mainCommand.AddCommand(commandPresets)
}

func listPresets() error {
	options, err := readConfig()
	if err != nil {
		return err
	}
	_, session, err := createSession(options)
	if err != nil {
		return err
	}
	if err := session.LoadPresets(context.Background()); err != nil {
		return err
	}
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, preset := range session.Presets() {
		writer.Write([]byte(F.ToString(preset.Name, "\t", preset.Description, "\t", preset.URL, "\n")))
	}
	return writer.Flush()
}
