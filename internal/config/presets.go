package config

import "github.com/ma3ke/bibber/internal/unit"

// Presets are named engine configurations selectable with --preset.
var Presets = map[string]func() *Settings{
	// default mirrors DefaultSettings.
	"default": DefaultSettings,

	// argon uses the common Lennard-Jones parameters for liquid argon
	// and a slightly stiffer coupling.
	"argon": func() *Settings {
		s := DefaultSettings()
		s.Mass = 6.6335e-26
		s.Thermostat.Tau = TimeQuantity{unit.Picoseconds(0.5)}
		s.ForceField.Epsilon = 1.654e-21
		s.ForceField.Sigma = LengthQuantity{unit.Nanometers(0.3405)}
		s.Placement.MinSeparation = LengthQuantity{unit.Nanometers(0.3)}
		return s
	},

	// free disables the force field: particles move ballistically under
	// thermostat control, starting from a uniform velocity draw.
	"free": func() *Settings {
		s := DefaultSettings()
		s.ForceField.Kind = "none"
		s.Placement.Velocities = VelocitiesUniform
		return s
	},
}

// GetPreset returns a fresh Settings for name, or nil when unknown.
func GetPreset(name string) *Settings {
	f, ok := Presets[name]
	if !ok {
		return nil
	}
	return f()
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
