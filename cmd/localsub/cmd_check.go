package main

import (
	"context"
	"strings"

	"github.com/localsub/localsub/convert"
	"github.com/localsub/localsub/log"

	E "github.com/sagernet/sing/common/exceptions"

	"github.com/spf13/cobra"
)

var commandCheck = &cobra.Command{
	Use:   "check",
	Short: "Check the configured profile without converting",
	Run: func(cmd *cobra.Command, args []string) {
		err := check()
		if err != nil {
			log.Fatal(err)
		}
	},
	Args: cobra.NoArgs,
}

func init() {
	mainCommand.AddCommand(commandCheck)
}

func check() error {
	options, err := readConfig()
	if err != nil {
		return err
	}
	_, session, err := createSession(options)
	if err != nil {
		return err
	}
	profile := session.Profile()
	if strings.TrimSpace(profile.Subscription) == "" {
		return E.New("profile: subscription content is empty")
	}
	report := session.ValidatePatterns(context.Background())
	if !report.Include {
		return E.New("profile: invalid include_regex: ", profile.IncludeRegex)
	}
	if !report.Exclude {
		return E.New("profile: invalid exclude_regex: ", profile.ExcludeRegex)
	}
	if !report.Rename {
		return E.New("profile: invalid rename_pattern: ", profile.RenamePattern)
	}
	log.Info("profile ok, user agent: ", convert.EffectiveUserAgent(profile))
	return nil
}
