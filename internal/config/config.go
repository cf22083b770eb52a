// Package config holds the engine settings that sit outside the recipe
// surface: thermostat coupling, force field selection, particle mass,
// seeding and placement policy. Settings load from an optional YAML file
// and fall back to built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ma3ke/bibber/internal/unit"
)

// DefaultFilename is the optional settings file looked up next to the
// recipe in the working directory.
const DefaultFilename = "bibber.yaml"

// Defaults used when no settings file overrides them.
const (
	// DefaultTauPs is the Berendsen coupling time in picoseconds. The
	// recipe format has no field for it; expose one there once it grows
	// a stable name.
	DefaultTauPs = 0.1

	// DefaultMass is the particle mass in kg.
	DefaultMass = 1e-24

	// DefaultEpsilon is the Lennard-Jones well depth in J.
	DefaultEpsilon = 1.65e-21

	// DefaultSigmaNm is the Lennard-Jones zero-crossing distance in nm.
	DefaultSigmaNm = 0.34

	DefaultDataDir = ".bibber"
)

// ErrUnknownPolicy indicates an unrecognized initial-velocity policy.
var ErrUnknownPolicy = errors.New("config: unknown velocity policy")

// ErrUnknownForceField indicates an unrecognized force field kind.
var ErrUnknownForceField = errors.New("config: unknown force field")

// VelocityPolicy selects how initial velocities are drawn.
type VelocityPolicy string

const (
	// VelocitiesZero starts all particles at rest; the thermostat heats
	// the system toward the setpoint over subsequent steps.
	VelocitiesZero VelocityPolicy = "zero"

	// VelocitiesUniform draws each component uniformly, scaled by the
	// box edge.
	VelocitiesUniform VelocityPolicy = "uniform"
)

// TimeQuantity is a unit.Time that unmarshals from "value:unit" YAML
// scalars.
type TimeQuantity struct{ unit.Time }

func (q *TimeQuantity) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	t, err := unit.ParseTime(s)
	if err != nil {
		return err
	}
	q.Time = t
	return nil
}

func (q TimeQuantity) MarshalYAML() (any, error) {
	return fmt.Sprintf("%g:ps", q.Picoseconds()), nil
}

// LengthQuantity is a unit.Length that unmarshals from "value:unit" YAML
// scalars.
type LengthQuantity struct{ unit.Length }

func (q *LengthQuantity) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	l, err := unit.ParseLength(s)
	if err != nil {
		return err
	}
	q.Length = l
	return nil
}

func (q LengthQuantity) MarshalYAML() (any, error) {
	return fmt.Sprintf("%g:nm", q.Nanometers()), nil
}

type ThermostatSettings struct {
	// Tau is the Berendsen relaxation time.
	Tau TimeQuantity `yaml:"tau"`
}

type ForceFieldSettings struct {
	// Kind selects the potential: "lj" or "none".
	Kind string `yaml:"kind"`
	// Epsilon is the LJ well depth in J.
	Epsilon float64 `yaml:"epsilon"`
	// Sigma is the LJ zero-crossing distance.
	Sigma LengthQuantity `yaml:"sigma"`
}

type PlacementSettings struct {
	// MinSeparation redraws a particle placed closer than this to any
	// other. Zero disables resampling.
	MinSeparation LengthQuantity `yaml:"min_separation"`
	// Velocities is the initial velocity policy.
	Velocities VelocityPolicy `yaml:"velocities"`
}

// Settings is the full engine configuration outside the recipe.
type Settings struct {
	Seed       int64              `yaml:"seed"`
	DataDir    string             `yaml:"data"`
	Mass       float64            `yaml:"mass"`
	Thermostat ThermostatSettings `yaml:"thermostat"`
	ForceField ForceFieldSettings `yaml:"forcefield"`
	Placement  PlacementSettings  `yaml:"placement"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir: DefaultDataDir,
		Mass:    DefaultMass,
		Thermostat: ThermostatSettings{
			Tau: TimeQuantity{unit.Picoseconds(DefaultTauPs)},
		},
		ForceField: ForceFieldSettings{
			Kind:    "lj",
			Epsilon: DefaultEpsilon,
			Sigma:   LengthQuantity{unit.Nanometers(DefaultSigmaNm)},
		},
		Placement: PlacementSettings{
			Velocities: VelocitiesZero,
		},
	}
}

// Load reads a settings file, layering it over the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadOrDefault loads path if it exists and returns the defaults when it
// does not.
func LoadOrDefault(path string) (*Settings, error) {
	s, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	return s, err
}

// Save writes the settings as YAML.
func Save(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks ranges and enumerations.
func (s *Settings) Validate() error {
	if s.Thermostat.Tau.Seconds() <= 0 {
		return errors.New("config: thermostat tau must be positive")
	}
	if s.Mass <= 0 {
		return errors.New("config: particle mass must be positive")
	}
	switch s.ForceField.Kind {
	case "lj", "none":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownForceField, s.ForceField.Kind)
	}
	switch s.Placement.Velocities {
	case VelocitiesZero, VelocitiesUniform:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPolicy, s.Placement.Velocities)
	}
	return nil
}
