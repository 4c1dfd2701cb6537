package forces

import "github.com/EmelineBolmont/posidonius"

// RotationalFlattening evaluates the oblateness-induced quadrupole force
// between the host and every companion: each spinning body's centrifugal
// flattening is folded into an effective J2 coefficient (from its fluid
// Love number and spin rate), and the resulting quadrupole gravity term is
// applied symmetrically, writing AccelerationInducedByRotationalFlattening
// and DAngularMomentumDtInducedByRotationalFlattening.
func RotationalFlattening(u *posidonius.Universe) {
	host := u.Host()
	var hostAccel, hostTorque posidonius.Axes

	for i := 1; i < len(u.Particles); i++ {
		p := &u.Particles[i]
		r := p.Position
		rn := r.Norm()
		if rn == 0 {
			continue
		}
		rHat := r.Scale(1 / rn)

		accelOnCompanion := posidonius.Axes{}
		torqueOnHost := posidonius.Axes{}
		torqueOnCompanion := posidonius.Axes{}

		if j2 := oblatenessJ2(*host); j2 != 0 && host.Radius > 0 {
			a, torque := quadrupoleForce(host.MassG, host.Radius, j2, host.Spin, r, rHat, rn)
			accelOnCompanion = accelOnCompanion.Add(a)
			torqueOnHost = torqueOnHost.Sub(torque)
		}
		if j2 := oblatenessJ2(*p); j2 != 0 && p.Radius > 0 {
			a, torque := quadrupoleForce(p.MassG, p.Radius, j2, p.Spin, r.Scale(-1), rHat.Scale(-1), rn)
			accelOnCompanion = accelOnCompanion.Sub(a)
			torqueOnCompanion = torqueOnCompanion.Sub(torque)
		}

		p.AccelerationInducedByRotationalFlattening = accelOnCompanion
		p.DAngularMomentumDtInducedByRotationalFlattening = torqueOnCompanion
		hostAccel = hostAccel.Add(accelOnCompanion.Scale(p.Mass / host.Mass))
		hostTorque = hostTorque.Add(torqueOnHost)
	}

	host.AccelerationInducedByRotationalFlattening = hostAccel.Scale(-1)
	host.DAngularMomentumDtInducedByRotationalFlattening = hostTorque
}

// oblatenessJ2 returns the centrifugal-flattening quadrupole coefficient
// J2 = k2f * Omega^2 * R^3 / (3 * G * M) for a spinning body.
func oblatenessJ2(p posidonius.Particle) float64 {
	if p.MassG == 0 {
		return 0
	}
	omega2 := p.Spin.Norm2()
	return p.FluidLoveNumber * omega2 * p.Radius * p.Radius * p.Radius / (3 * p.MassG)
}

// quadrupoleForce returns the acceleration a companion at relative
// position r experiences due to body A's oblateness (mass parameter massG,
// radius, J2 coefficient, spin axis), and the torque this interaction
// exerts back on A's spin angular momentum.
func quadrupoleForce(massG, radius, j2 float64, spin posidonius.Axes, r, rHat posidonius.Axes, rn float64) (accel, torque posidonius.Axes) {
	spinNorm := spin.Norm()
	if spinNorm == 0 {
		return
	}
	sHat := spin.Scale(1 / spinNorm)
	gamma := sHat.Dot(rHat)
	r4 := rn * rn * rn * rn
	coef := 1.5 * massG * radius * radius * j2 / r4

	accel = rHat.Scale(coef * (5*gamma*gamma - 1)).Sub(sHat.Scale(coef * 2 * gamma))
	torque = r.Cross(accel).Scale(-1)
	return
}
