// Package metrics provides step observers for simulation runs.
package metrics

import (
	"github.com/ma3ke/bibber/internal/engine"
)

// Metric is an observer that reduces a run to a single number.
type Metric interface {
	engine.Observer
	Name() string
	Value() float64
	Reset()
}

// Temperature accumulates the mean instantaneous kinetic temperature.
type Temperature struct {
	sum     float64
	last    float64
	samples int
}

func NewTemperature() *Temperature { return &Temperature{} }

func (m *Temperature) Name() string { return "mean_temperature" }

func (m *Temperature) OnStep(s *engine.System, step int) {
	m.last = s.Temperature()
	m.sum += m.last
	m.samples++
}

func (m *Temperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

// Last is the most recent instantaneous temperature.
func (m *Temperature) Last() float64 { return m.last }

func (m *Temperature) Reset() {
	m.sum = 0
	m.last = 0
	m.samples = 0
}

// Kinetic accumulates the mean kinetic energy in J.
type Kinetic struct {
	sum     float64
	samples int
}

func NewKinetic() *Kinetic { return &Kinetic{} }

func (m *Kinetic) Name() string { return "mean_kinetic_energy" }

func (m *Kinetic) OnStep(s *engine.System, step int) {
	m.sum += s.KineticEnergy()
	m.samples++
}

func (m *Kinetic) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Kinetic) Reset() {
	m.sum = 0
	m.samples = 0
}
