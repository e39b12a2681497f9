package main

import (
	"os"
	"runtime"

	C "github.com/localsub/localsub/constant"

	F "github.com/sagernet/sing/common/format"

	"github.com/spf13/cobra"
)

var commandVersion = &cobra.Command{
	Use:   "version",
	Short: "Print current version of localsub",
	Run:   printVersion,
	Args:  cobra.NoArgs,
}

var nameOnly bool

func init() {
	commandVersion.Flags().BoolVarP(&nameOnly, "name", "n", false, "print version name only")
	mainCommand.AddCommand(commandVersion)
}

func printVersion(cmd *cobra.Command, args []string) {
	version := F.ToString(C.Version)
	if !nameOnly {
		version = F.ToString("localsub ", version, " (", runtime.Version(), ", ", runtime.GOOS, ", ", runtime.GOARCH, ")")
	}
	os.Stdout.WriteString(version + "\n")
}
