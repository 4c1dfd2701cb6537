// Package integrator implements the WHFast-family symplectic driver: a
// Kepler-drift / interaction-kick splitting evaluated in one of three
// alternative canonical coordinate systems (Jacobi, democratic-heliocentric,
// WHDS), per the specification's component design for the integration step.
package integrator

import (
	"fmt"

	"github.com/EmelineBolmont/posidonius"
	"github.com/EmelineBolmont/posidonius/coords"
	"github.com/EmelineBolmont/posidonius/evolution"
	"github.com/EmelineBolmont/posidonius/forces"
	"github.com/EmelineBolmont/posidonius/kepler"
)

// WHFast drives a Universe forward in fixed time steps using the
// Wisdom-Holman splitting. CoordType selects which of the three coordinate
// systems the kick/drift pair is expressed in; WHFastHelio corresponds to
// DemocraticHeliocentric, plain WHFast to Jacobi.
type WHFast struct {
	CoordType coords.Type
	Cfg       posidonius.Config

	// RecoverySnapshotEvery triggers RecoveryDue() every N steps; 0 disables
	// the recurring trigger.
	RecoverySnapshotEvery int

	stepCount int
}

// RecoveryDue reports whether the step just taken should be followed by a
// recovery-snapshot write, per RecoverySnapshotEvery.
func (w *WHFast) RecoveryDue() bool {
	return w.RecoverySnapshotEvery > 0 && w.stepCount%w.RecoverySnapshotEvery == 0
}

// Step advances the Universe by dt: half-kick, full Kepler drift, half-kick,
// symmetric about the midpoint per the standard WHFast splitting. Spin is
// integrated with the same half-step symmetry using
// DAngularMomentumDtPerMomentOfInertia. It returns a fatal *IntegrationError
// on Kepler non-convergence, collision, or an unbound body, and otherwise
// any accumulated GR *ConvergenceWarning as a non-fatal value alongside a
// nil error — callers distinguish the two by type per the specification's
// severity tiers.
func (w *WHFast) Step(u *posidonius.Universe, dt float64) ([]error, error) {
	ignoreGravityTerms := coords.ForType(w.CoordType)

	saved := append([]posidonius.Particle(nil), u.Particles...)
	savedTime, savedCount := u.CurrentTime, w.stepCount

	evolution.Apply(u, u.CurrentTime)
	for i := range u.Particles {
		u.Particles[i].UpdateKinematicScalars()
	}
	warnings := forces.Apply(u, ignoreGravityTerms, w.Cfg)
	rollback := func(err error) ([]error, error) {
		copy(u.Particles, saved)
		u.CurrentTime, w.stepCount = savedTime, savedCount
		return warnings, err
	}

	w.kick(u, dt/2)
	w.spinHalfStep(u, dt/2)

	if err := w.drift(u, dt); err != nil {
		return rollback(err)
	}

	w.spinHalfStep(u, dt/2)
	warnings = append(warnings, forces.Apply(u, ignoreGravityTerms, w.Cfg)...)
	w.kick(u, dt/2)

	u.CurrentTime += dt
	w.stepCount++

	if err := u.CheckCollisions(); err != nil {
		return rollback(err)
	}
	if err := u.CheckBound(); err != nil {
		return rollback(err)
	}
	return warnings, nil
}

// kick applies the additional-force acceleration (tides, rotational
// flattening, disk, general relativity) to every body's heliocentric
// velocity for half (or a full, depending on the caller) of dt. No
// Newtonian interaction term is added here.
func (w *WHFast) kick(u *posidonius.Universe, halfDt float64) {
	host := u.Host()
	for i := 1; i < len(u.Particles); i++ {
		p := &u.Particles[i]
		p.Velocity = p.Velocity.Add(p.Acceleration.Scale(halfDt))
	}
	host.Velocity = host.Velocity.Add(host.Acceleration.Scale(halfDt))
	u.HeliocentricToInertial()
}

// spinHalfStep advances every particle's spin-dependent kinematic state by
// halfDt using DAngularMomentumDtPerMomentOfInertia, matching the "partial
// step before/after drift" clause of the component design.
func (w *WHFast) spinHalfStep(u *posidonius.Universe, halfDt float64) {
	for i := range u.Particles {
		p := &u.Particles[i]
		p.Spin = p.Spin.Add(p.DAngularMomentumDtPerMomentOfInertia.Scale(halfDt))
	}
}

// drift performs the Kepler-propagation half of the splitting in the
// selected coordinate system, then re-synchronizes the inertial and
// heliocentric frames.
func (w *WHFast) drift(u *posidonius.Universe, dt float64) error {
	host := u.Host()
	companions := u.Companions()
	companionMasses := make([]float64, len(companions))
	for i, c := range companions {
		companionMasses[i] = c.Mass
	}

	switch w.CoordType {
	case coords.Jacobi:
		return w.driftJacobi(u, dt, *host, companions, companionMasses)
	default:
		return w.driftHeliocentric(u, dt, *host, companions, companionMasses)
	}
}

func (w *WHFast) driftJacobi(u *posidonius.Universe, dt float64, host posidonius.Particle, companions []posidonius.Particle, companionMasses []float64) error {
	// The system barycenter carries no net force and stays at the origin of
	// the inertial frame by construction, so only the Jacobi-frame relative
	// states need to be Kepler-drifted; jacobiInverse recovers host and
	// companion states directly from them.
	comMass, _, jacobi := coords.ToJacobi(host, companions)

	eta := host.Mass
	for i, c := range companions {
		mu := posidonius.G * (eta + c.Mass)
		eta += c.Mass
		r1, v1, err := kepler.Solve(jacobi[i].Position, jacobi[i].Velocity, mu, dt, w.Cfg.KeplerMaxIterations, w.Cfg.KeplerEpsilon)
		if err != nil {
			return &posidonius.IntegrationError{Time: u.CurrentTime, ParticleID: companions[i].ID, Reason: fmt.Sprintf("kepler drift: %s", err)}
		}
		jacobi[i].Position, jacobi[i].Velocity = r1, v1
	}

	hostState, companionStates := coords.FromJacobi(comMass, companionMasses, jacobi)
	u.Particles[0].InertialPosition = hostState.Position
	u.Particles[0].InertialVelocity = hostState.Velocity
	for i := range companions {
		u.Particles[i+1].InertialPosition = companionStates[i].Position
		u.Particles[i+1].InertialVelocity = companionStates[i].Velocity
	}
	u.InertialToHeliocentric()
	for i := range u.Particles {
		u.Particles[i].UpdateKinematicScalars()
	}
	return nil
}

func (w *WHFast) driftHeliocentric(u *posidonius.Universe, dt float64, host posidonius.Particle, companions []posidonius.Particle, companionMasses []float64) error {
	var hostState coords.State
	var companionStates []coords.State
	if w.CoordType == coords.WHDS {
		hostState, companionStates = coords.ToWHDS(host, companions)
	} else {
		hostState, companionStates = coords.ToDemocraticHeliocentric(host, companions)
	}

	companionVelocities := make([]posidonius.Axes, len(companions))
	for i, c := range companionStates {
		companionVelocities[i] = c.Velocity
	}
	hostDrift := coords.HostLinearDrift(host.Mass, companionMasses, companionVelocities)
	hostState.Position = hostState.Position.Add(hostDrift.Scale(dt))

	mu := posidonius.G * host.Mass
	for i, c := range companions {
		r1, v1, err := kepler.Solve(companionStates[i].Position, companionStates[i].Velocity, mu, dt, w.Cfg.KeplerMaxIterations, w.Cfg.KeplerEpsilon)
		if err != nil {
			return &posidonius.IntegrationError{Time: u.CurrentTime, ParticleID: c.ID, Reason: fmt.Sprintf("kepler drift: %s", err)}
		}
		companionStates[i].Position, companionStates[i].Velocity = r1, v1
	}

	var hostOut coords.State
	var companionsOut []coords.State
	if w.CoordType == coords.WHDS {
		hostOut, companionsOut = coords.FromWHDS(host.Mass, companionMasses, hostState, companionStates)
	} else {
		hostOut, companionsOut = coords.FromDemocraticHeliocentric(hostState, companionStates)
	}

	u.Particles[0].InertialPosition = hostOut.Position
	u.Particles[0].InertialVelocity = hostOut.Velocity
	for i := range companions {
		u.Particles[i+1].InertialPosition = companionsOut[i].Position
		u.Particles[i+1].InertialVelocity = companionsOut[i].Velocity
	}
	u.InertialToHeliocentric()
	for i := range u.Particles {
		u.Particles[i].UpdateKinematicScalars()
	}
	return nil
}
