package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		seconds float64
	}{
		{"1:s", 1.0},
		{"2:ms", 2e-3},
		{"3:us", 3e-6},
		{"0.1:ns", 1e-10},
		{"1:ps", 1e-12},
		{"10:fs", 1e-14},
		{"-5:fs", -5e-15},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.seconds, got.Seconds(), 1e-25, tt.in)
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in     string
		meters float64
	}{
		{"1:km", 1e3},
		{"1:m", 1.0},
		{"1:dm", 1e-1},
		{"1:cm", 1e-2},
		{"1:mm", 1e-3},
		{"1:um", 1e-6},
		{"100:nm", 1e-7},
		{"1:pm", 1e-12},
		{"1:fm", 1e-15},
	}
	for _, tt := range tests {
		got, err := ParseLength(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.meters, got.Meters(), 1e-25, tt.in)
	}
}

func TestParseTemperature(t *testing.T) {
	got, err := ParseTemperature("300:K")
	require.NoError(t, err)
	assert.InDelta(t, 300.0, got.Kelvin(), 1e-12)

	got, err = ParseTemperature("26.85:C")
	require.NoError(t, err)
	assert.InDelta(t, 300.0, got.Kelvin(), 1e-12)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseTime("10")
	assert.ErrorIs(t, err, ErrNoUnit)

	_, err = ParseTime("10:")
	assert.ErrorIs(t, err, ErrNoUnit)

	_, err = ParseTime("10:lightyears")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = ParseTime("10:nm")
	assert.ErrorIs(t, err, ErrWrongDimension)

	_, err = ParseLength("10:fs")
	assert.ErrorIs(t, err, ErrWrongDimension)

	_, err = ParseTemperature("10:nm")
	assert.ErrorIs(t, err, ErrWrongDimension)

	_, err = ParseLength("ten:nm")
	assert.Error(t, err)
}

func TestTimeAccessors(t *testing.T) {
	tm := Femtoseconds(10)
	assert.InDelta(t, 1e-14, tm.Seconds(), 1e-28)
	assert.InDelta(t, 0.01, tm.Picoseconds(), 1e-15)
	assert.InDelta(t, 1e-5, tm.Nanoseconds(), 1e-18)
}
