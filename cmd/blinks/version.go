package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/blinks"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of blinks",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "blinks version %s\n", strings.TrimSpace(blinks.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
