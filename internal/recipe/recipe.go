// Package recipe reads the simulation input file.
//
// A recipe is a plain-text file of "key args..." lines:
//
//	title       My universe
//	start       0:ns
//	end         0.01:ns
//	timestep    10:fs
//	snapshot    1:ps
//	temperature 300:K
//	particles   100
//	boundary    cubic 100:nm 100:nm 100:nm
//
// Time, length and temperature values carry a unit suffix; see the unit
// package for the supported tables.
package recipe

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ma3ke/bibber/internal/unit"
)

// DefaultFilename is where the run command looks for a recipe when no
// path is given.
const DefaultFilename = "bibber.recipe"

var (
	// ErrMissingField indicates a required recipe key never appeared.
	ErrMissingField = errors.New("recipe: missing required field")

	// ErrUnknownKey indicates a line starting with an unrecognized key.
	ErrUnknownKey = errors.New("recipe: unknown key")

	// ErrArgumentCount indicates a key with too few or too many arguments.
	ErrArgumentCount = errors.New("recipe: wrong number of arguments")

	// ErrUnsupportedShape indicates a boundary shape other than cubic.
	ErrUnsupportedShape = errors.New("recipe: unsupported boundary shape")

	// ErrInvalidParameter indicates a value outside its valid range.
	ErrInvalidParameter = errors.New("recipe: invalid parameter")
)

// BoundaryShape enumerates the supported periodic cell shapes.
type BoundaryShape string

// Cubic is the only shape the engine supports.
const Cubic BoundaryShape = "cubic"

// Recipe holds the unit-normalized simulation parameters.
type Recipe struct {
	Title string

	Start    unit.Time
	End      unit.Time
	Timestep unit.Time
	Snapshot unit.Time

	Temperature unit.Temperature

	Particles int

	Shape BoundaryShape
	Box   [3]unit.Length
}

// Duration is the simulated time from start to end.
func (r *Recipe) Duration() unit.Time { return r.End - r.Start }

// Steps is the number of integration steps the recipe describes.
func (r *Recipe) Steps() int {
	return int(r.Duration().Seconds() / r.Timestep.Seconds())
}

// Snapshots is the number of snapshots taken over the run, not counting
// the initial frame.
func (r *Recipe) Snapshots() int {
	return int(r.Duration().Seconds() / r.Snapshot.Seconds())
}

// ParseFile reads and validates a recipe from path.
func ParseFile(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads and validates a recipe from r.
func Parse(r io.Reader) (*Recipe, error) {
	rec := &Recipe{}
	seen := map[string]bool{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		key, args := fields[0], fields[1:]
		if strings.HasPrefix(key, "#") {
			continue
		}
		if err := rec.set(key, args); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		seen[key] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}

	for _, key := range []string{
		"title", "start", "end", "timestep", "snapshot",
		"temperature", "particles", "boundary",
	} {
		if !seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Recipe) set(key string, args []string) error {
	switch key {
	case "title":
		if len(args) == 0 {
			return fmt.Errorf("%w: title needs a value", ErrArgumentCount)
		}
		r.Title = strings.Join(args, " ")
		return nil
	case "start":
		return singleTime(args, &r.Start)
	case "end":
		return singleTime(args, &r.End)
	case "timestep":
		return singleTime(args, &r.Timestep)
	case "snapshot":
		return singleTime(args, &r.Snapshot)
	case "temperature":
		if len(args) != 1 {
			return fmt.Errorf("%w: temperature takes 1 value, got %d", ErrArgumentCount, len(args))
		}
		t, err := unit.ParseTemperature(args[0])
		if err != nil {
			return err
		}
		r.Temperature = t
		return nil
	case "particles":
		if len(args) != 1 {
			return fmt.Errorf("%w: particles takes 1 value, got %d", ErrArgumentCount, len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("recipe: parsing particle count: %w", err)
		}
		r.Particles = n
		return nil
	case "boundary":
		if len(args) != 4 {
			return fmt.Errorf("%w: boundary takes shape and 3 lengths, got %d arguments", ErrArgumentCount, len(args))
		}
		r.Shape = BoundaryShape(args[0])
		for i, arg := range args[1:] {
			l, err := unit.ParseLength(arg)
			if err != nil {
				return err
			}
			r.Box[i] = l
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

func singleTime(args []string, dst *unit.Time) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: expected 1 time value, got %d", ErrArgumentCount, len(args))
	}
	t, err := unit.ParseTime(args[0])
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

// Validate checks the parameter ranges the engine depends on.
func (r *Recipe) Validate() error {
	if r.Shape != Cubic {
		return fmt.Errorf("%w: %q", ErrUnsupportedShape, r.Shape)
	}
	if r.Box[0] != r.Box[1] || r.Box[1] != r.Box[2] {
		return fmt.Errorf("%w: cubic boundary requires equal edge lengths", ErrInvalidParameter)
	}
	if r.Box[0].Meters() <= 0 {
		return fmt.Errorf("%w: boundary edge must be positive", ErrInvalidParameter)
	}
	if r.Timestep.Seconds() <= 0 {
		return fmt.Errorf("%w: timestep must be positive", ErrInvalidParameter)
	}
	if r.Snapshot.Seconds() < r.Timestep.Seconds() {
		return fmt.Errorf("%w: snapshot interval must be at least one timestep", ErrInvalidParameter)
	}
	if r.End < r.Start {
		return fmt.Errorf("%w: end must not precede start", ErrInvalidParameter)
	}
	if r.Temperature.Kelvin() <= 0 {
		return fmt.Errorf("%w: temperature must be positive", ErrInvalidParameter)
	}
	if r.Particles <= 0 {
		return fmt.Errorf("%w: particle count must be positive", ErrInvalidParameter)
	}
	return nil
}
