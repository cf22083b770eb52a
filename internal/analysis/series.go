// Package analysis computes summary statistics over recorded run series.
package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses one scalar series.
type Summary struct {
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
	First float64
	Final float64
}

// Summarize computes the summary of series. An empty series yields the
// zero Summary.
func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	return Summary{
		Mean:  stat.Mean(series, nil),
		Std:   stat.StdDev(series, nil),
		Min:   floats.Min(series),
		Max:   floats.Max(series),
		First: series[0],
		Final: series[len(series)-1],
	}
}

// SettlingIndex returns the first index from which the series stays
// within tol·target of target, or -1 when it never settles. A zero
// target settles nothing.
func SettlingIndex(series []float64, target, tol float64) int {
	if target == 0 || len(series) == 0 {
		return -1
	}
	band := tol * target
	settled := -1
	for i, v := range series {
		d := v - target
		if d < 0 {
			d = -d
		}
		if d <= band {
			if settled == -1 {
				settled = i
			}
		} else {
			settled = -1
		}
	}
	return settled
}

// SetpointError is the mean absolute deviation of the last quarter of
// the series from target, a measure of how well the thermostat holds
// the setpoint after equilibration.
func SetpointError(series []float64, target float64) float64 {
	if len(series) == 0 {
		return 0
	}
	tail := series[len(series)-(len(series)+3)/4:]
	dev := make([]float64, len(tail))
	for i, v := range tail {
		d := v - target
		if d < 0 {
			d = -d
		}
		dev[i] = d
	}
	return stat.Mean(dev, nil)
}
