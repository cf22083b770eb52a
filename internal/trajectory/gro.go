// Package trajectory serializes simulation snapshots as a Gromos87 (GRO)
// text trajectory: one block per frame holding the title and time, the
// particle count, one fixed-width line per particle, and the box vector.
package trajectory

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ma3ke/bibber/internal/engine"
)

// Writer emits snapshots to an underlying stream in GRO format.
// Positions are written in nm and velocities in km/s; the box vector
// keeps its raw meter values.
type Writer struct {
	w      io.Writer
	title  string
	frames int
}

// NewWriter wraps w. The title is repeated in every frame header.
func NewWriter(w io.Writer, title string) *Writer {
	return &Writer{w: w, title: title}
}

// Frames is the number of frames written so far.
func (t *Writer) Frames() int { return t.frames }

// Emit writes one frame. Implements engine.Emitter.
func (t *Writer) Emit(s engine.Snapshot) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, t= %v\n%d\n", t.title, s.Time.Picoseconds(), len(s.Positions))
	for i := range s.Positions {
		p := s.Positions[i].Scale(1e9)   // nm
		v := s.Velocities[i].Scale(1e-3) // km/s
		fmt.Fprintf(&b, "%5dDUMMY  DUM%5d%8.3f%8.3f%8.3f%8.4f%8.4f%8.4f\n",
			i, i, p.X, p.Y, p.Z, v.X, v.Y, v.Z)
	}
	fmt.Fprintf(&b, "%s %s %s\n",
		formatBoxEdge(s.Box.X), formatBoxEdge(s.Box.Y), formatBoxEdge(s.Box.Z))

	if _, err := io.WriteString(t.w, b.String()); err != nil {
		return fmt.Errorf("trajectory: %w", err)
	}
	t.frames++
	return nil
}

func formatBoxEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
