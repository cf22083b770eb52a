package metrics

import "github.com/ma3ke/bibber/internal/engine"

// Recorder keeps the per-step time, temperature and kinetic energy
// series for later storage and plotting. Stride subsamples the series;
// 1 (or 0) records every step.
type Recorder struct {
	Stride int

	Times        []float64 // seconds
	Temperatures []float64 // K
	Kinetics     []float64 // J
}

func NewRecorder(stride int) *Recorder {
	if stride < 1 {
		stride = 1
	}
	return &Recorder{Stride: stride}
}

func (r *Recorder) OnStep(s *engine.System, step int) {
	if step%r.Stride != 0 {
		return
	}
	r.Times = append(r.Times, s.Time().Seconds())
	r.Temperatures = append(r.Temperatures, s.Temperature())
	r.Kinetics = append(r.Kinetics, s.KineticEnergy())
}

// Len is the number of recorded samples.
func (r *Recorder) Len() int { return len(r.Times) }
