package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the matrixdeck banner in fading greens.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{`                 _        _         _           _    `, "#00ff41"},
		{`  _ __ ___   __ _| |_ _ __(_)_  ____| | ___  ___| | __`, "#00e03a"},
		{` | '_ ' _ \ / _' | __| '__| \ \/ / _' |/ _ \/ __| |/ /`, "#00c033"},
		{` | | | | | | (_| | |_| |  | |>  < (_| |  __/ (__|   < `, "#00a02b"},
		{` |_| |_| |_|\__,_|\__|_|  |_/_/\_\__,_|\___|\___|_|\_\`, "#008023"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
