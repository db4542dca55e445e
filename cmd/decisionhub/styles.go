package main

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// outputStyles colours validate output on terminals and is a no-op otherwise.
type outputStyles struct {
	failure func(string) string
	success func(string) string
	dim     func(string) string
}

func stylesFor(w io.Writer) outputStyles {
	if !isTerminal(w) {
		plain := func(s string) string { return s }
		return outputStyles{failure: plain, success: plain, dim: plain}
	}

	failure := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	success := lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	return outputStyles{
		failure: func(s string) string { return failure.Render(s) },
		success: func(s string) string { return success.Render(s) },
		dim:     func(s string) string { return dim.Render(s) },
	}
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
