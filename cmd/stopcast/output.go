package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const terminalWidthBackup = 80

type outputStyle struct {
	plain   bool
	noColor bool
	width   int
}

// outputStyleFor picks styled output for terminals and plain text for pipes.
func outputStyleFor(w io.Writer, noColor bool) outputStyle {
	file, ok := w.(*os.File)
	if !ok || !isTerminal(file) {
		return outputStyle{plain: true}
	}
	return outputStyle{
		noColor: noColor || os.Getenv("NO_COLOR") != "",
		width:   terminalWidth(file),
	}
}

func (s outputStyle) apply() {
	if s.noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func terminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
