// Package coords implements the three canonical coordinate systems the
// WHFast-family integrator alternates into for its Kepler-drift/kick
// splitting: Jacobi, democratic-heliocentric, and WHDS. Each transform is a
// bijection with the inertial frame and carries an IgnoreGravityTerms tag
// describing which direct-sum Newtonian terms its kick leaves out.
package coords

import "github.com/EmelineBolmont/posidonius"

// Type selects which alternative canonical coordinate system the
// integrator state is expressed in.
type Type int

const (
	Jacobi Type = iota
	DemocraticHeliocentric
	WHDS
)

// IgnoreGravityTerms marks which direct-sum Newtonian terms a symplectic
// kick omits because they were absorbed into the Kepler drift of the
// chosen coordinates. Post-Newtonian layers must reconstruct exactly these
// terms before computing full Newtonian accelerations.
type IgnoreGravityTerms int

const (
	IgnoreNone IgnoreGravityTerms = iota
	IgnoreWHFastOne // host and first companion direct term only
	IgnoreWHFastTwo // every host-companion direct term
)

// ForType returns the IgnoreGravityTerms value associated with a
// coordinate system: Jacobi's kick already includes all direct terms
// (nothing to reconstruct), while democratic-heliocentric and WHDS's kick
// omits the host-companion terms that the Kepler drift already integrates.
func ForType(t Type) IgnoreGravityTerms {
	switch t {
	case Jacobi:
		return IgnoreNone
	case DemocraticHeliocentric, WHDS:
		return IgnoreWHFastTwo
	default:
		return IgnoreNone
	}
}

// State holds one body's position, velocity and acceleration expressed in
// whichever alternative coordinate system is active.
type State struct {
	Position     posidonius.Axes
	Velocity     posidonius.Axes
	Acceleration posidonius.Axes
}
