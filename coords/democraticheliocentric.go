package coords

import "github.com/EmelineBolmont/posidonius"

// ToDemocraticHeliocentric transforms to the democratic-heliocentric
// coordinates of Duncan, Levison & Lee (1998): the host holds its
// barycentric position, each companion holds position relative to the
// host (heliocentric) and true barycentric velocity — "barycentric
// momentum" per body, per the specification's data model.
func ToDemocraticHeliocentric(host posidonius.Particle, companions []posidonius.Particle) (hostState State, companionStates []State) {
	hostState = State{
		Position:     host.InertialPosition,
		Velocity:     host.InertialVelocity,
		Acceleration: host.InertialAcceleration,
	}
	companionStates = make([]State, len(companions))
	for i, c := range companions {
		companionStates[i] = State{
			Position:     c.InertialPosition.Sub(host.InertialPosition),
			Velocity:     c.InertialVelocity,
			Acceleration: c.InertialAcceleration.Sub(host.InertialAcceleration),
		}
	}
	return
}

// FromDemocraticHeliocentric is the inverse transform.
func FromDemocraticHeliocentric(hostState State, companionStates []State) (host State, companions []State) {
	host = hostState
	companions = make([]State, len(companionStates))
	for i, c := range companionStates {
		companions[i] = State{
			Position:     c.Position.Add(hostState.Position),
			Velocity:     c.Velocity,
			Acceleration: c.Acceleration.Add(hostState.Acceleration),
		}
	}
	return
}

// HostLinearDrift returns the velocity the host must be assigned to keep
// total system momentum at zero after a kick has updated companion
// velocities, per the "body 0's drift depends on coordinate type" clause
// of the WHFast driver: in democratic-heliocentric and WHDS coordinates
// the host's position advances during the drift by this velocity
// rather than by its own independently-integrated momentum.
func HostLinearDrift(hostMass float64, companionMasses []float64, companionVelocities []posidonius.Axes) posidonius.Axes {
	var p posidonius.Axes
	for i, m := range companionMasses {
		p = p.Add(companionVelocities[i].Scale(m))
	}
	return p.Scale(-1 / hostMass)
}
