package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the enveil version",
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewFigure("enveil", "", true)
		banner.Print()
		fmt.Printf("\nenveil %s\n", Version)
	},
}
