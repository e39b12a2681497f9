package main

import (
	"context"
	"os"
	"time"

	"github.com/localsub/localsub/common/humanize"
	"github.com/localsub/localsub/log"

	"github.com/spf13/cobra"
)

var commandConvert = &cobra.Command{
	Use:   "convert",
	Short: "Convert the configured subscription and print the Clash YAML",
	Run: func(cmd *cobra.Command, args []string) {
		err := convertOnce()
		if err != nil {
			log.Fatal(err)
		}
	},
	Args: cobra.NoArgs,
}

var outputPath string

func init() {
	commandConvert.Flags().StringVarP(&outputPath, "output", "o", "", "write the generated configuration to a file instead of stdout")
	mainCommand.AddCommand(commandConvert)
}

func convertOnce() error {
	options, err := readConfig()
	if err != nil {
		return err
	}
	_, session, err := createSession(options)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := session.LoadPresets(ctx); err != nil {
		log.Warn("presets unavailable: ", err)
	}
	result, err := session.Convert(ctx)
	if err != nil {
		return err
	}
	for _, warning := range result.Warnings {
		log.Warn(warning)
	}
	if info := result.SubscriptionInfo; info.HasQuota() {
		log.Info("quota: ", humanize.Bytes(info.UsedBytes()), " of ", humanize.OptionalBytes(info.Total),
			", ", humanize.Expire(info.Expire, time.Now()))
	}
	if outputPath != "" {
		return os.WriteFile(outputPath, []byte(result.YAML), 0o644)
	}
	_, err = os.Stdout.WriteString(result.YAML)
	return err
}
