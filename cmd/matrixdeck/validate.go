package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/matrixdeck/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check that every deck under a directory parses",
	Long:  `Finds decks matching the glob patterns under dir (default: the current directory) and reports the ones that fail to load.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		patterns, _ := cmd.Flags().GetStringSlice("pattern")

		results, err := cli.ValidateDecks(cmd.Context(), dir, patterns)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if len(results) == 0 {
			fmt.Println("No decks found.")
			return
		}

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Printf("✗ %s: %v\n", r.Path, r.Err)
				continue
			}
			fmt.Printf("✓ %s (%d slides)\n", r.Path, r.Slides)
		}
		if failed > 0 {
			fmt.Printf("%d of %d decks are invalid\n", failed, len(results))
			os.Exit(1)
		}
		fmt.Println("All decks are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringSlice("pattern", []string{cli.DefaultDeckGlob}, "Glob patterns of deck files, relative to dir")
}
