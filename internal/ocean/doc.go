// Package ocean provides the gridded ocean-circulation field simulation.
//
// The package defines the core numerical components:
//
//   - [FieldGrid]: flat row-major arrays for velocity, temperature,
//     salinity, pressure and density, with ping-pong velocity buffers
//   - [CirculationCell]: idealized gyre and thermohaline overturning cells
//   - [ForcingStep]: one finite-difference velocity update per tick
//   - [TracerSystem]: particle advection by bilinear field sampling
//
// # Stepping Order
//
// A tick is one ForcingStep.Step followed by one TracerSystem.Update.
// The forcing step writes only into the grid's back buffers and swaps
// them before returning, so tracers always read a fully updated field:
//
//	forcing.Step(params, dt)
//	tracers.Update(dt, timeAccel)
//
// # Thread Safety
//
// None of the types are safe for concurrent use. The model is a single
// writer (ForcingStep) running to completion before any reader.
package ocean
