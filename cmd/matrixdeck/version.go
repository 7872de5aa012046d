package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/matrixdeck"
	"github.com/aretw0/matrixdeck/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of matrixdeck",
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBanner(os.Stdout)
		fmt.Printf("matrixdeck version %s\n", matrixdeck.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
