package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/matrixdeck"
	"github.com/aretw0/matrixdeck/internal/cli"
	"github.com/aretw0/matrixdeck/internal/config"
	"github.com/aretw0/matrixdeck/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:   "matrixdeck",
	Short: "matrixdeck presents Markdown slide decks in the terminal",
	Long: `matrixdeck turns a Markdown file into a full-screen presentation with a
matrix rain title slide, progressive disclosure and keyboard, mouse and remote control.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the configuration file")
}

// loadDeck reads the deck named by args, or the built-in sample deck when there is none.
func loadDeck(ctx context.Context, args []string) (*domain.Deck, error) {
	if len(args) == 0 {
		return matrixdeck.SampleDeck()
	}
	return cli.LoadDeck(ctx, args[0])
}
