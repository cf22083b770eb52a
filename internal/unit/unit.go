// Package unit provides the quantity types used throughout the simulator.
//
// All quantities are stored in SI base units (seconds, meters, kelvin) and
// converted at the edges. The textual form of a quantity is "value:unit",
// e.g. "10:fs" or "100:nm"; [ParseTime], [ParseLength] and
// [ParseTemperature] decode it.
package unit

// Boltzmann is the Boltzmann constant in J/K.
const Boltzmann = 1.380649e-23

// Time is a duration stored in seconds.
type Time float64

func Seconds(v float64) Time      { return Time(v) }
func Milliseconds(v float64) Time { return Time(v / 1e3) }
func Microseconds(v float64) Time { return Time(v / 1e6) }
func Nanoseconds(v float64) Time  { return Time(v / 1e9) }
func Picoseconds(v float64) Time  { return Time(v / 1e12) }
func Femtoseconds(v float64) Time { return Time(v / 1e15) }

func (t Time) Seconds() float64      { return float64(t) }
func (t Time) Milliseconds() float64 { return float64(t) * 1e3 }
func (t Time) Microseconds() float64 { return float64(t) * 1e6 }
func (t Time) Nanoseconds() float64  { return float64(t) * 1e9 }
func (t Time) Picoseconds() float64  { return float64(t) * 1e12 }
func (t Time) Femtoseconds() float64 { return float64(t) * 1e15 }

// Length is a distance stored in meters.
type Length float64

func Meters(v float64) Length     { return Length(v) }
func Nanometers(v float64) Length { return Length(v * 1e-9) }

func (l Length) Meters() float64     { return float64(l) }
func (l Length) Nanometers() float64 { return float64(l) * 1e9 }

// Temperature is stored in kelvin.
type Temperature float64

func Kelvin(v float64) Temperature  { return Temperature(v) }
func Celsius(v float64) Temperature { return Temperature(v + 273.15) }

func (t Temperature) Kelvin() float64 { return float64(t) }
