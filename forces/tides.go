package forces

import "github.com/EmelineBolmont/posidonius"

// Tides evaluates the equilibrium-tide model (constant time-lag, Hut 1981 /
// Eggleton et al. 1998 form) for every host-companion pair, in heliocentric
// coordinates with the host as reference, writing each particle's
// TidalAcceleration, DAngularMomentumDtDueToTides and DEnergyDt. Both the
// stellar tide (raised on the host by the companion) and the planetary
// tide (raised on the companion by the host) are accumulated. The host's
// contribution is recorded as the negative mass-weighted sum of companion
// contributions, the same host/companion asymmetry convention the general
// relativity layer uses, so downstream summation treats every effect
// uniformly.
func Tides(u *posidonius.Universe) {
	host := u.Host()
	var hostAccel, hostTorque posidonius.Axes

	for i := 1; i < len(u.Particles); i++ {
		p := &u.Particles[i]
		r := p.Position // heliocentric: companion position relative to host
		v := p.Velocity
		rn := r.Norm()
		if rn == 0 {
			continue
		}
		rHat := r.Scale(1 / rn)
		vr := r.Dot(v) / rn
		vTanVec := v.Sub(rHat.Scale(vr))

		orbitalAngularMomentum := r.Cross(v)
		hNorm := orbitalAngularMomentum.Norm()
		var tHat posidonius.Axes
		if hNorm > 0 && vTanVec.Norm() > 1e-300 {
			tHat = orbitalAngularMomentum.Cross(rHat).Unit()
		}

		planetaryTideAccel, planetaryTorque, planetaryDissipation := equilibriumTideContribution(*p, *host, r, v, rn, rHat, tHat, vr, vTanVec, p.Spin)
		stellarTideAccel, stellarTorque, stellarDissipation := equilibriumTideContribution(*host, *p, r, v, rn, rHat, tHat, vr, vTanVec, host.Spin)
		// The stellar-tide reaction acts on the companion with the
		// opposite sign convention (it is raised on the host but the
		// orbital force it exerts acts along the same relative vector).
		totalAccel := planetaryTideAccel.Sub(stellarTideAccel)

		p.TidalAcceleration = totalAccel
		p.DAngularMomentumDtDueToTides = planetaryTorque
		p.DEnergyDt = planetaryDissipation + stellarDissipation

		hostAccel = hostAccel.Add(totalAccel.Scale(p.Mass / host.Mass))
		hostTorque = hostTorque.Add(stellarTorque)
	}

	host.TidalAcceleration = hostAccel.Scale(-1)
	host.DAngularMomentumDtDueToTides = hostTorque
}

// equilibriumTideContribution computes the radial/orthogonal tidal force
// raised on body "raised" by body "perturber", returning the acceleration
// it implies on the perturber's side of the relative vector, the torque it
// exerts back on "raised"'s spin, and the instantaneous dissipation rate.
func equilibriumTideContribution(raised, perturber posidonius.Particle, r, v posidonius.Axes, rn float64, rHat, tHat posidonius.Axes, vr float64, vTanVec posidonius.Axes, spin posidonius.Axes) (accel, torque posidonius.Axes, denergyDt float64) {
	if raised.Radius == 0 {
		return
	}
	z := 3 * perturber.MassG * perturber.Mass * raised.Radius * raised.Radius * raised.Radius * raised.Radius * raised.Radius / pow10(rn)

	orbitalAngularMomentum := r.Cross(v)
	var spinOrbital float64
	if hn := orbitalAngularMomentum.Norm(); hn > 0 {
		spinOrbital = spin.Dot(orbitalAngularMomentum) / hn
	}
	vTan := vTanVec.Norm()
	if tHat.Dot(vTanVec) < 0 {
		vTan = -vTan
	}

	radialComponent := -z * (raised.LoveNumber + 2*raised.ScaledDissipationFactor*vr)
	orthogonalComponent := -z * raised.ScaledDissipationFactor * (vTan - rn*spinOrbital)

	accel = rHat.Scale(radialComponent).Add(tHat.Scale(orthogonalComponent))
	torque = r.Cross(accel).Scale(-1)
	denergyDt = -orthogonalComponent * (vTan - rn*spinOrbital)
	return
}

func pow10(x float64) float64 {
	x2 := x * x
	x4 := x2 * x2
	return x4 * x4 * x2
}
