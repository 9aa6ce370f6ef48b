package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _     _ _       _        ", "#818cf8"},
	{"| |__ | (_)_ __ | | _____ ", "#a78bfa"},
	{"| '_ \\| | | '_ \\| |/ / __|", "#c084fc"},
	{"| |_) | | | | | |   <\\__ \\", "#e879f9"},
	{"|_.__/|_|_|_| |_|_|\\_\\___/", "#f472b6"},
}

// PrintBanner writes the ASCII banner to w, colored when the terminal supports it.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  DeFi actions via Dialect Blinks  v"+version).Faint())
	fmt.Fprintln(w)
}
