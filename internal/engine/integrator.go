package engine

import (
	"context"
	"fmt"

	"github.com/ma3ke/bibber/internal/geom"
	"github.com/ma3ke/bibber/internal/unit"
)

// Phase tracks the integrator lifecycle.
type Phase int

const (
	PhaseInitialized Phase = iota
	PhaseRunning
	PhaseCompleted
)

// Snapshot is one emitted frame of the trajectory.
type Snapshot struct {
	Time       unit.Time
	Positions  []geom.Vec3
	Velocities []geom.Vec3
	Box        geom.Vec3
}

// Emitter consumes snapshots in order, synchronously.
type Emitter interface {
	Emit(s Snapshot) error
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(s *System, step int)
}

// Params are the integration parameters taken from the recipe.
type Params struct {
	Timestep unit.Time
	End      unit.Time
	Snapshot unit.Time
}

// Integrator advances a System with the velocity-Verlet scheme, applying
// the thermostat once per step and emitting snapshots at the configured
// cadence. It owns the System exclusively for its lifetime.
type Integrator struct {
	sys       *System
	field     ForceField
	thermo    Berendsen
	params    Params
	emitter   Emitter
	observers []Observer

	phase     Phase
	potential float64

	forces []geom.Vec3
	posBuf []geom.Vec3
}

// NewIntegrator wires the loop together. The emitter may be nil, in
// which case snapshots are dropped.
func NewIntegrator(sys *System, field ForceField, thermo Berendsen, params Params, emitter Emitter) *Integrator {
	n := sys.N()
	return &Integrator{
		sys:     sys,
		field:   field,
		thermo:  thermo,
		params:  params,
		emitter: emitter,
		forces:  make([]geom.Vec3, n),
		posBuf:  make([]geom.Vec3, n),
	}
}

// AddObserver registers an observer called after every step.
func (in *Integrator) AddObserver(o Observer) { in.observers = append(in.observers, o) }

// Phase returns the lifecycle state.
func (in *Integrator) Phase() Phase { return in.phase }

// System returns the state the integrator drives.
func (in *Integrator) System() *System { return in.sys }

// Potential is the potential energy from the latest force evaluation.
func (in *Integrator) Potential() float64 { return in.potential }

// Run executes the step loop until elapsed time reaches the end time.
// Cancellation is cooperative, checked once per step boundary. Run may
// be called once; the integrator is Completed afterwards.
func (in *Integrator) Run(ctx context.Context) error {
	if in.phase != PhaseInitialized {
		return ErrNotInitialized
	}
	in.phase = PhaseRunning
	defer func() { in.phase = PhaseCompleted }()

	start := in.sys.Time()
	dt := in.params.Timestep.Seconds()
	duration := (in.params.End - start).Seconds()
	snap := in.params.Snapshot.Seconds()

	if err := in.emit(); err != nil {
		return err
	}

	emitted := 0
	for step := 0; float64(step)*dt < duration-0.5*dt; step++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("engine: run interrupted: %w", ctx.Err())
		default:
		}

		if err := in.step(); err != nil {
			return &StepError{Step: step, Time: in.sys.Time().Seconds(), Wrapped: err}
		}

		// Elapsed time is derived from the step count, never accumulated.
		elapsed := float64(step+1) * dt
		in.sys.time = start + unit.Time(elapsed)

		for _, o := range in.observers {
			o.OnStep(in.sys, step+1)
		}

		if elapsed+0.5*dt >= float64(emitted+1)*snap {
			if err := in.emit(); err != nil {
				return err
			}
			emitted++
		}
	}

	return nil
}

// step performs one velocity-Verlet update followed by the thermostat.
func (in *Integrator) step() error {
	sys := in.sys
	b := sys.Boundary()
	dt := in.params.Timestep.Seconds()

	// F(t)
	in.posBuf = sys.Positions(in.posBuf)
	in.potential = in.field.Forces(in.posBuf, b, in.forces)

	// v += F(t)/m · dt/2, then x += v·dt with wrapping.
	for i := 0; i < sys.N(); i++ {
		p := sys.Particle(i)
		sys.Kick(i, in.forces[i].Scale(dt/(2*p.Mass)))
	}
	for i := 0; i < sys.N(); i++ {
		sys.Displace(i, sys.Particle(i).Vel.Scale(dt))
	}

	// F(t+dt), second half kick.
	in.posBuf = sys.Positions(in.posBuf)
	in.potential = in.field.Forces(in.posBuf, b, in.forces)
	for i := 0; i < sys.N(); i++ {
		p := sys.Particle(i)
		sys.Kick(i, in.forces[i].Scale(dt/(2*p.Mass)))
	}

	in.thermo.Apply(sys, in.params.Timestep)

	return sys.checkFinite()
}

func (in *Integrator) emit() error {
	if in.emitter == nil {
		return nil
	}
	s := Snapshot{
		Time:       in.sys.Time(),
		Positions:  in.sys.Positions(nil),
		Velocities: in.sys.Velocities(nil),
		Box:        in.sys.Boundary().Size(),
	}
	if err := in.emitter.Emit(s); err != nil {
		return fmt.Errorf("engine: emitting snapshot: %w", err)
	}
	return nil
}
