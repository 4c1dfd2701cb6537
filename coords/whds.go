package coords

import "github.com/EmelineBolmont/posidonius"

// ToWHDS transforms to WHDS coordinates (Hernandez & Dehnen 2017), the
// velocity-scaled modification of democratic-heliocentric: companion k's
// velocity is the democratic-heliocentric velocity scaled by
// (M+m_k)/M, where M is the total system mass. Position and the host's
// state are unchanged from democratic-heliocentric.
func ToWHDS(host posidonius.Particle, companions []posidonius.Particle) (hostState State, companionStates []State) {
	hostState, companionStates = ToDemocraticHeliocentric(host, companions)
	mtot := host.Mass
	for _, c := range companions {
		mtot += c.Mass
	}
	for i, c := range companions {
		scale := (mtot + c.Mass) / mtot
		companionStates[i].Velocity = companionStates[i].Velocity.Scale(scale)
	}
	return
}

// FromWHDS is the inverse transform.
func FromWHDS(hostMass float64, companionMasses []float64, hostState State, companionStates []State) (host State, companions []State) {
	mtot := hostMass
	for _, m := range companionMasses {
		mtot += m
	}
	unscaled := make([]State, len(companionStates))
	for i, c := range companionStates {
		scale := (mtot + companionMasses[i]) / mtot
		unscaled[i] = c
		unscaled[i].Velocity = c.Velocity.Scale(1 / scale)
	}
	return FromDemocraticHeliocentric(hostState, unscaled)
}
