// Package engine implements the NVT simulation core.
//
// The package follows the structure of the physical problem:
//
//   - [System]: fixed-N particle state (positions, velocities, masses)
//     inside a periodic box
//   - [Boundary]: cubic periodic cell with wrapping and minimum-image
//     displacement
//   - [ForceField]: pluggable potential; [None] and [LennardJones] are
//     provided
//   - [Berendsen]: weak-coupling thermostat rescaling velocities toward
//     a setpoint
//   - [Integrator]: the velocity-Verlet step loop driving all of the
//     above and emitting snapshots
//
// All quantities are SI: meters, seconds, kilograms, kelvin.
//
// Integrator instances are not safe for concurrent use; each run owns
// its System exclusively.
package engine
