// Package forces is the additional-forces layer: tides, rotational
// flattening, disk interaction and three alternative general-relativity
// formulations, evaluated in that fixed order and accumulated into each
// particle's acceleration and angular-momentum-rate fields.
package forces

import (
	"github.com/EmelineBolmont/posidonius"
	"github.com/EmelineBolmont/posidonius/coords"
)

// Apply is the additional-forces layer's entry point, matching the
// specification's Universe::calculate_additional_effects(ignored_gravity_terms).
// It is kept as a free function over *posidonius.Universe — rather than a
// Universe method — so this package can depend on posidonius without
// posidonius depending back on forces.
func Apply(u *posidonius.Universe, ignoreGravityTerms coords.IgnoreGravityTerms, cfg posidonius.Config) []error {
	var warnings []error

	for i := range u.Particles {
		p := &u.Particles[i]
		p.TidalAcceleration = posidonius.Axes{}
		p.AccelerationInducedByRotationalFlattening = posidonius.Axes{}
		p.DiskInteractionAcceleration = posidonius.Axes{}
		p.GeneralRelativityAcceleration = posidonius.Axes{}
		p.DAngularMomentumDtDueToTides = posidonius.Axes{}
		p.DAngularMomentumDtInducedByRotationalFlattening = posidonius.Axes{}
		p.DAngularMomentumDtDueToGeneralRelativity = posidonius.Axes{}
		p.DEnergyDt = 0
	}

	if u.ConsiderTides {
		Tides(u)
	}
	if u.ConsiderRotationalFlattening {
		RotationalFlattening(u)
	}
	if u.ConsiderDiskInteraction {
		Disk(u)
	}
	switch u.ConsiderGeneralRelativity {
	case posidonius.GRKidder1995:
		Kidder1995(u)
	case posidonius.GRAnderson1975:
		if err := Anderson1975(u, ignoreGravityTerms, cfg); err != nil {
			warnings = append(warnings, err)
		}
	case posidonius.GRNewhall1983:
		if err := Newhall1983(u, ignoreGravityTerms, cfg); err != nil {
			warnings = append(warnings, err)
		}
	}

	for i := range u.Particles {
		p := &u.Particles[i]
		p.Acceleration = p.TidalAcceleration.
			Add(p.AccelerationInducedByRotationalFlattening).
			Add(p.DiskInteractionAcceleration).
			Add(p.GeneralRelativityAcceleration)
		p.DAngularMomentumDt = p.DAngularMomentumDtDueToTides.
			Add(p.DAngularMomentumDtInducedByRotationalFlattening).
			Add(p.DAngularMomentumDtDueToGeneralRelativity)
		if p.MomentOfInertia > 0 {
			p.DAngularMomentumDtPerMomentOfInertia = p.DAngularMomentumDt.Scale(1 / p.MomentOfInertia)
		}
	}
	return warnings
}

// newtonianInertialAccelerations returns the direct-sum Newtonian
// acceleration of every particle in the inertial frame, reconstructing the
// terms the symplectic kick omitted per ignoreGravityTerms. Grounded on
// get_anderson1975_newhall1983_newtonian_inertial_accelerations in
// original_source/src/particles/general_relativity.rs.
func newtonianInertialAccelerations(u *posidonius.Universe, ignoreGravityTerms coords.IgnoreGravityTerms) []posidonius.Axes {
	n := len(u.Particles)
	acc := make([]posidonius.Axes, n)
	for i := range u.Particles {
		acc[i] = u.Particles[i].InertialAcceleration
	}
	if ignoreGravityTerms == coords.IgnoreNone {
		return acc
	}
	host := u.Host()
	upper := n
	if ignoreGravityTerms == coords.IgnoreWHFastOne {
		upper = 2 // host-companion[0] interaction only
	}
	for j := 1; j < upper && j < n; j++ {
		c := &u.Particles[j]
		d := host.InertialPosition.Sub(c.InertialPosition)
		r2 := d.Norm2()
		r := d.Norm()
		prefac := posidonius.G / (r2 * r)
		acc[0] = acc[0].Sub(d.Scale(prefac * c.Mass))
		acc[j] = acc[j].Add(d.Scale(prefac * host.Mass))
	}
	return acc
}
