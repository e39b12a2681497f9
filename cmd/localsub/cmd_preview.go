package main

import (
	"context"
	"os"
	"text/tabwriter"
	"time"

	"github.com/localsub/localsub/common/humanize"
	"github.com/localsub/localsub/log"

	F "github.com/sagernet/sing/common/format"

	"github.com/spf13/cobra"
)

var commandPreview = &cobra.Command{
	Use:   "preview",
	Short: "Parse the configured subscription and list its nodes",
	Run: func(cmd *cobra.Command, args []string) {
		err := preview()
		if err != nil {
			log.Fatal(err)
		}
	},
	Args: cobra.NoArgs,
}

func init() {
	mainCommand.AddCommand(commandPreview)
}

func preview() error {
	options, err := readConfig()
	if err != nil {
		return err
	}
	_, session, err := createSession(options)
	if err != nil {
		return err
	}
	nodes, err := session.Preview(context.Background())
	if err != nil {
		return err
	}
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	for _, node := range nodes {
		writer.Write([]byte(F.ToString(node.Name, "\t", node.Protocol, "\t", node.Server, ":", node.Port, "\n")))
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	if info := session.PreviewInfo(); info.HasQuota() {
		quota := F.ToString("quota: ", humanize.Bytes(info.UsedBytes()), " of ", humanize.OptionalBytes(info.Total))
		if percent, ok := info.UsagePercent(); ok {
			quota = F.ToString(quota, " (", percent, "%)")
		}
		log.Info(quota, ", ", humanize.Expire(info.Expire, time.Now()))
	}
	return nil
}
