package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/matrixdeck/internal/presentation/tui"
)

const defaultPrintWidth = 80

var printCmd = &cobra.Command{
	Use:   "print [deck.md]",
	Short: "Render a deck as styled text on stdout",
	Long:  `Renders every slide one after another, for handouts or a quick proofread. Output is plain when stdout is not a terminal.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deck, err := loadDeck(cmd.Context(), args)
		if err != nil {
			fmt.Printf("Error loading deck: %v\n", err)
			os.Exit(1)
		}

		raw, _ := cmd.Flags().GetBool("markdown")
		if raw {
			fmt.Print(tui.Markdown(deck))
			return
		}

		fd := int(os.Stdout.Fd())
		plain := !term.IsTerminal(fd)
		width := defaultPrintWidth
		if !plain {
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				width = w
			}
		}

		out, err := tui.Print(deck, width, plain)
		if err != nil {
			fmt.Printf("Error rendering deck: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().Bool("markdown", false, "Print the normalized Markdown instead of rendering it")
}
