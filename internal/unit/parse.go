package unit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors for "value:unit" quantities.
var (
	// ErrNoUnit indicates a quantity without a ":unit" suffix.
	ErrNoUnit = errors.New("unit: quantity has no unit suffix")

	// ErrUnknownUnit indicates a unit suffix outside the supported tables.
	ErrUnknownUnit = errors.New("unit: unknown unit suffix")

	// ErrWrongDimension indicates a known unit of the wrong dimension,
	// e.g. a length suffix where a time is expected.
	ErrWrongDimension = errors.New("unit: unit has wrong dimension")
)

var timeFactors = map[string]float64{
	"s":  1.0,
	"ms": 1e-3,
	"us": 1e-6,
	"ns": 1e-9,
	"ps": 1e-12,
	"fs": 1e-15,
}

var lengthFactors = map[string]float64{
	"km": 1e3,
	"m":  1.0,
	"dm": 1e-1,
	"cm": 1e-2,
	"mm": 1e-3,
	"um": 1e-6,
	"nm": 1e-9,
	"pm": 1e-12,
	"fm": 1e-15,
}

var temperatureOffsets = map[string]float64{
	"K": 0.0,
	"C": 273.15,
}

func split(s string) (float64, string, error) {
	number, suffix, ok := strings.Cut(s, ":")
	if !ok || suffix == "" {
		return 0, "", fmt.Errorf("%w: %q", ErrNoUnit, s)
	}
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, "", fmt.Errorf("unit: parsing %q: %w", s, err)
	}
	return value, suffix, nil
}

func known(suffix string) bool {
	if _, ok := timeFactors[suffix]; ok {
		return true
	}
	if _, ok := lengthFactors[suffix]; ok {
		return true
	}
	_, ok := temperatureOffsets[suffix]
	return ok
}

func dimensionErr(s, suffix string) error {
	if known(suffix) {
		return fmt.Errorf("%w: %q", ErrWrongDimension, s)
	}
	return fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// ParseTime decodes a time quantity such as "10:fs".
func ParseTime(s string) (Time, error) {
	value, suffix, err := split(s)
	if err != nil {
		return 0, err
	}
	factor, ok := timeFactors[suffix]
	if !ok {
		return 0, dimensionErr(s, suffix)
	}
	return Seconds(value * factor), nil
}

// ParseLength decodes a length quantity such as "100:nm".
func ParseLength(s string) (Length, error) {
	value, suffix, err := split(s)
	if err != nil {
		return 0, err
	}
	factor, ok := lengthFactors[suffix]
	if !ok {
		return 0, dimensionErr(s, suffix)
	}
	return Meters(value * factor), nil
}

// ParseTemperature decodes a temperature quantity such as "300:K" or "25:C".
func ParseTemperature(s string) (Temperature, error) {
	value, suffix, err := split(s)
	if err != nil {
		return 0, err
	}
	offset, ok := temperatureOffsets[suffix]
	if !ok {
		return 0, dimensionErr(s, suffix)
	}
	return Kelvin(value + offset), nil
}
