// Package kepler implements the universal-variable two-body propagator:
// given (r0, v0, mu, dt) it advances to (r1, v1) using the Stumpff-function
// formulation, which handles the elliptic, parabolic and hyperbolic cases
// without branching on eccentricity.
package kepler

import (
	"math"

	"github.com/EmelineBolmont/posidonius"
)

// Solve advances a two-body state (r0, v0) under gravitational parameter mu
// by time dt, returning the propagated (r1, v1). It returns
// ErrDidNotConverge if the Newton-Halley iteration on the generalized
// anomaly chi fails to meet epsilon within maxIterations, matching the
// specification's fatal-on-non-convergence policy for the Kepler step.
func Solve(r0, v0 posidonius.Axes, mu, dt float64, maxIterations int, epsilon float64) (r1, v1 posidonius.Axes, err error) {
	r0n := r0.Norm()
	v0n2 := v0.Norm2()
	vr0 := r0.Dot(v0) / r0n

	// Inverse semi-major axis; alpha > 0 ellipse, = 0 parabola, < 0 hyperbola.
	alpha := 2/r0n - v0n2/mu

	chi := math.Sqrt(mu) * math.Abs(alpha) * dt // initial guess
	if chi == 0 {
		chi = math.Sqrt(mu) * dt / r0n
	}

	var c0, c1, c2, c3 float64
	converged := false
	for i := 0; i < maxIterations; i++ {
		psi := chi * chi * alpha
		c0, c1, c2, c3 = stumpff0123(psi)

		r := chi*chi*c2 + (r0n*vr0/math.Sqrt(mu))*chi*c1 + r0n*c0
		f := (r0n*vr0/math.Sqrt(mu))*chi*chi*c2 + (1-alpha*r0n)*chi*chi*chi*c3 + r0n*chi - math.Sqrt(mu)*dt
		fPrime := r
		fDoublePrime := (r0n*vr0/math.Sqrt(mu))*(1-alpha*chi*chi*c2)*chi + (1-alpha*r0n)*chi*chi*c1

		// Newton-Halley combined step.
		var dChi float64
		if fDoublePrime != 0 {
			denom := fPrime + sign(fPrime)*math.Sqrt(math.Abs(16*fPrime*fPrime-20*f*fDoublePrime))
			dChi = -5 * f / denom
		} else if fPrime != 0 {
			dChi = -f / fPrime
		} else {
			break
		}
		chi += dChi
		if math.Abs(dChi)/math.Max(math.Abs(chi), 1e-300) < epsilon {
			converged = true
			break
		}
	}
	if !converged {
		return posidonius.Axes{}, posidonius.Axes{}, ErrDidNotConverge
	}

	psi := chi * chi * alpha
	c0, c1, c2, c3 = stumpff0123(psi)
	r := chi*chi*c2 + (r0n*vr0/math.Sqrt(mu))*chi*c1 + r0n*c0

	f := 1 - (chi*chi*c2)/r0n
	g := dt - (chi*chi*chi*c3)/math.Sqrt(mu)

	r1 = r0.Scale(f).Add(v0.Scale(g))
	r1n := r1.Norm()

	fDot := (math.Sqrt(mu) / (r1n * r0n)) * (alpha*chi*chi*chi*c3 - chi)
	gDot := 1 - (chi*chi*c2)/r1n

	v1 = r0.Scale(fDot).Add(v0.Scale(gDot))
	return r1, v1, nil
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
