package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tyir-dev/tyir/cmd"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "tyir [subcommand]",
	Short:        "tyir\n inspect and transform typed IR signatures",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	cmd.AddGlobalFlags(rootCmd)
	rootCmd.AddCommand(cmd.EraseCmd)
	rootCmd.AddCommand(cmd.SubstCmd)
	rootCmd.AddCommand(cmd.UnifyCmd)
	rootCmd.AddCommand(cmd.SelfReplaceCmd)
	rootCmd.AddCommand(cmd.CheckCmd)
}
