// Package viz renders run series in the terminal: static plots for
// finished runs and a live view for running simulations.
package viz

import (
	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 12
)

// Plot renders a series as an ASCII graph with a caption.
func Plot(series []float64, caption string) string {
	return asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// Spark renders a compact graph for the live view.
func Spark(series []float64) string {
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(8),
		asciigraph.Width(60),
	)
}
