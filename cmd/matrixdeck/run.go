package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/matrixdeck/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [deck.md]",
	Short: "Present a deck full screen",
	Long: `Presents the deck full screen. Without a deck the built-in sample is shown.

Keys: → / Space / PgDn next, ← / PgUp previous, Home / End first and last,
digits then Enter jump to a slide, m toggles sound, q or Esc quits.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		deck, err := loadDeck(sc, args)
		if err != nil {
			fmt.Printf("Error loading deck: %v\n", err)
			os.Exit(1)
		}

		configPath, _ := cmd.Flags().GetString("config")
		remote, _ := cmd.Flags().GetString("remote")
		mcpAddr, _ := cmd.Flags().GetString("mcp")
		resume, _ := cmd.Flags().GetBool("resume")
		audio, _ := cmd.Flags().GetBool("audio")
		logFile, _ := cmd.Flags().GetString("log-file")
		logLevel, _ := cmd.Flags().GetString("log-level")

		err = cli.Run(sc, deck, cli.RunOptions{
			ConfigPath: configPath,
			Remote:     remote,
			MCP:        mcpAddr,
			Resume:     resume,
			Audio:      audio,
			LogFile:    logFile,
			LogLevel:   logLevel,
		})
		if sig := sc.Signal(); sig != nil {
			fmt.Fprintf(os.Stderr, "Interrupted by %v\n", sig)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("remote", "", "Serve the remote control API on this address (e.g. :8080)")
	runCmd.Flags().String("mcp", "", "Serve the navigation tools to MCP clients on this address (e.g. :8081)")
	runCmd.Flags().Bool("resume", false, "Resume from the last slide shown and keep a bookmark")
	runCmd.Flags().Bool("audio", false, "Play sound cues on transitions")
	runCmd.Flags().String("log-file", "", "Write logs to this file (the screen is busy)")
	runCmd.Flags().String("log-level", "", "Log level: debug, info, warn or error")

	// Make 'run' the default if no command is provided
	rootCmd.Args = runCmd.Args
	rootCmd.Run = runCmd.Run
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
