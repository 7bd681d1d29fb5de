package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the shell banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" ___ _                 _              _   ", "#818cf8"},
		{"| _ \\ |_  ___ _ _  ___| |__  ___  ___| |__", "#a78bfa"},
		{"|  _/ ' \\/ _ \\ ' \\/ -_) '_ \\/ _ \\/ _ \\ / /", "#c084fc"},
		{"|_| |_||_\\___/_||_\\___|_.__/\\___/\\___/_\\_\\", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
