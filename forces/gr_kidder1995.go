package forces

import "github.com/EmelineBolmont/posidonius"

// Kidder1995 evaluates the closed-form post-Newtonian correction of Kidder
// (1995): first-order and second-order orbital terms plus the leading
// spin-orbit coupling, applied independently to each host-companion pair in
// the heliocentric frame. Grounded term-for-term on
// calculate_kidder1995_first_order_general_relativity_acceleration,
// _second_order_... and
// _spin_orbit_general_relativity_acceleration_and_dangular_momentum_dt in
// original_source/src/particles/general_relativity.rs. The host's orbital
// contribution is recorded as the negative mass-weighted sum of companion
// contributions rather than independently symmetrized — the specification
// calls this asymmetry out explicitly and requires it be preserved rather
// than "fixed".
func Kidder1995(u *posidonius.Universe) {
	host := u.Host()
	c2 := posidonius.SpeedOfLight2

	hostAngularMomentum := host.Spin.Scale(host.MomentOfInertia)
	var sumOrbitalAccel, sumSpinOrbitAccel posidonius.Axes
	host.DAngularMomentumDtDueToGeneralRelativity = posidonius.Axes{}

	for i := 1; i < len(u.Particles); i++ {
		p := &u.Particles[i]
		d := p.Distance
		if d == 0 {
			continue
		}
		starPlanetMassG := host.MassG + p.MassG
		grFactor := p.GeneralRelativityFactor
		v2 := p.NormVelocityVector2
		rdot := p.RadialVelocity
		rdot2 := rdot * rdot

		// First order (1PN), Kidder 1995 / Bolmont et al. 2015 Eq. 10-11.
		radial1 := -starPlanetMassG / (d * d * c2) *
			((1+3*grFactor)*v2 - 2*(2+grFactor)*starPlanetMassG/d - 1.5*grFactor*rdot2)
		ortho1 := starPlanetMassG / (d * d * c2) * 2 * (2 - grFactor) * rdot * p.NormVelocityVector

		accel := posidonius.NewAxes(
			radial1*p.Position.X/d+ortho1*p.Velocity.X/p.NormVelocityVector,
			radial1*p.Position.Y/d+ortho1*p.Velocity.Y/p.NormVelocityVector,
			radial1*p.Position.Z/d+ortho1*p.Velocity.Z/p.NormVelocityVector,
		)

		// Second order (2PN), Kidder 1995 Eq. 2.2d.
		v4 := v2 * v2
		rdot4 := rdot2 * rdot2
		grFactor2 := grFactor * grFactor
		radial2 := -starPlanetMassG / (d * d * c2 * c2) *
			(3.0/4.0*(12+29*grFactor)*(starPlanetMassG*starPlanetMassG/(d*d)) +
				grFactor*(3-4*grFactor)*v4 +
				15.0/8.0*grFactor*(1-3*grFactor)*rdot4 -
				3.0/2.0*grFactor*(3-4*grFactor)*rdot2*v2 -
				0.5*grFactor*(13-4*grFactor)*(starPlanetMassG/d)*v2 -
				(2+25*grFactor+2*grFactor2)*(starPlanetMassG/d)*rdot2)
		ortho2 := -starPlanetMassG/(d*d*c2*c2)*(-0.5)*rdot*
			(grFactor*(15+4*grFactor)*v2-
				(4+41*grFactor+8*grFactor2)*(starPlanetMassG/d)-
				3*grFactor*(3+2*grFactor)*rdot2)

		accel = accel.Add(posidonius.NewAxes(
			radial2*p.Position.X/d+ortho2*p.Velocity.X,
			radial2*p.Position.Y/d+ortho2*p.Velocity.Y,
			radial2*p.Position.Z/d+ortho2*p.Velocity.Z,
		))

		p.GeneralRelativityAcceleration = accel
		sumOrbitalAccel = sumOrbitalAccel.Add(accel.Scale(p.Mass / host.Mass))

		// Spin-orbit coupling, Kidder 1995 Eq. 2.2c/2.4a/2.4b, 1.5PN,
		// https://arxiv.org/pdf/1102.5192.pdf / gr-qc/0202016.
		particleAngularMomentum := p.Spin.Scale(p.MomentOfInertia)
		n := p.Position.Scale(1 / d)
		starPlanetMass := host.Mass + p.Mass
		massFactor := (host.Mass - p.Mass) / starPlanetMass

		massSpinFactor := posidonius.NewAxes(
			massFactor*starPlanetMass*(particleAngularMomentum.X/p.Mass-hostAngularMomentum.X/host.Mass),
			massFactor*starPlanetMass*(particleAngularMomentum.Y/p.Mass-hostAngularMomentum.Y/host.Mass),
			massFactor*starPlanetMass*(particleAngularMomentum.Z/p.Mass-hostAngularMomentum.Z/host.Mass),
		)
		totalSpin := hostAngularMomentum.Add(particleAngularMomentum)

		nCrossV := n.Cross(p.Velocity)
		elem1 := posidonius.NewAxes(
			6*n.X*(nCrossV.X*(2*totalSpin.X+massSpinFactor.X)),
			6*n.Y*(nCrossV.Y*(2*totalSpin.Y+massSpinFactor.Y)),
			6*n.Z*(nCrossV.Z*(2*totalSpin.Z+massSpinFactor.Z)),
		)
		elem7s := totalSpin.Scale(7).Add(massSpinFactor.Scale(3))
		elem2 := p.Velocity.Cross(elem7s)
		elem3s := totalSpin.Scale(3).Add(massSpinFactor)
		elem3 := n.Scale(3 * rdot).Cross(elem3s)

		factorA := posidonius.G / c2
		spinOrbitAccel := elem1.Sub(elem2).Add(elem3).Scale(factorA)

		p.GeneralRelativityAcceleration = p.GeneralRelativityAcceleration.Add(spinOrbitAccel)
		sumSpinOrbitAccel = sumSpinOrbitAccel.Add(spinOrbitAccel.Scale(p.Mass / host.Mass))

		// Host torque, Kidder 1995 Eq. 2.4a.
		mu := (host.Mass * p.Mass) / starPlanetMass
		orbitalAngularMomentum := p.Position.Cross(p.Velocity).Scale(mu)

		hostFactorMass := 2 + 1.5*p.Mass/host.Mass
		hostElem1 := orbitalAngularMomentum.Cross(hostAngularMomentum).Scale(hostFactorMass)
		hostElem2 := particleAngularMomentum.Cross(hostAngularMomentum)
		nDotParticleAngularMomentum := n.Dot(particleAngularMomentum)
		hostElem3 := n.Cross(hostAngularMomentum).Scale(3 * nDotParticleAngularMomentum)
		hostTorque := hostElem1.Sub(hostElem2).Add(hostElem3).Scale(factorA)
		host.DAngularMomentumDtDueToGeneralRelativity = host.DAngularMomentumDtDueToGeneralRelativity.Add(hostTorque)

		// Companion torque, Kidder 1995 Eq. 2.4b (not a sign-flip of 2.4a).
		compFactorMass := 2 + 1.5*host.Mass/p.Mass
		compElem1 := orbitalAngularMomentum.Cross(particleAngularMomentum).Scale(compFactorMass)
		compElem2 := hostAngularMomentum.Cross(particleAngularMomentum)
		nDotStarAngularMomentum := n.Dot(hostAngularMomentum)
		compElem3 := n.Cross(particleAngularMomentum).Scale(3 * nDotStarAngularMomentum)
		p.DAngularMomentumDtDueToGeneralRelativity = compElem1.Sub(compElem2).Add(compElem3).Scale(factorA)
	}

	host.GeneralRelativityAcceleration = sumOrbitalAccel.Add(sumSpinOrbitAccel).Scale(-1)
}
