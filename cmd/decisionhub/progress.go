package main

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// batchProgress draws a run-all progress bar on a terminal and stays silent
// on anything else.
type batchProgress struct {
	bar     progress.Model
	out     io.Writer
	enabled bool
	open    bool
}

func newBatchProgress(out io.Writer) *batchProgress {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 30
	return &batchProgress{bar: bar, out: out, enabled: isTerminal(out)}
}

// View renders the bar for completed out of total.
func (p *batchProgress) View(completed, total int) string {
	ratio := 0.0
	if total > 0 {
		ratio = math.Min(1.0, float64(completed)/float64(total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d", completed, total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(ratio))
}

func (p *batchProgress) Update(completed, total int) {
	if !p.enabled {
		return
	}
	fmt.Fprintf(p.out, "\r%s", p.View(completed, total))
	p.open = true
}

// Finish ends the progress line.
func (p *batchProgress) Finish() {
	if p.open {
		fmt.Fprintln(p.out)
		p.open = false
	}
}
