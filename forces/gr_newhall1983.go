package forces

import (
	"github.com/EmelineBolmont/posidonius"
	"github.com/EmelineBolmont/posidonius/coords"
)

// Newhall1983 evaluates the full all-pairs post-Newtonian correction (the
// JPL DE ephemeris formulation): a Newtonian-reconstructed constant part
// plus an iterative non-constant part that depends on every other body's
// already-corrected acceleration, capped at cfg.GRMaxIterations and
// stopped once the largest per-body fractional deviation between
// successive iterations falls below cfg.NewhallDevLimit.
func Newhall1983(u *posidonius.Universe, ignoreGravityTerms coords.IgnoreGravityTerms, cfg posidonius.Config) error {
	n := len(u.Particles)
	newtonian := newtonianInertialAccelerations(u, ignoreGravityTerms)

	constant := make([]posidonius.Axes, n)
	for i := 0; i < n; i++ {
		p := &u.Particles[i]
		var sum posidonius.Axes
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			q := &u.Particles[j]
			d := p.InertialPosition.Sub(q.InertialPosition)
			r := d.Norm()
			if r == 0 {
				continue
			}
			vi2 := p.InertialVelocity.Norm2()
			vj2 := q.InertialVelocity.Norm2()
			vivj := p.InertialVelocity.Dot(q.InertialVelocity)
			term := vi2 + 2*vj2 - 4*vivj - 1.5*pow2(d.Dot(q.InertialVelocity)/r) - 4*posidonius.G*p.Mass/r - posidonius.G*q.Mass/r
			sum = sum.Add(d.Scale(-posidonius.G * q.Mass / (r * r * r) * term))
		}
		constant[i] = sum.Scale(1 / posidonius.SpeedOfLight2)
	}

	correction := make([]posidonius.Axes, n)
	var lastErr error
	for iter := 0; iter < cfg.GRMaxIterations; iter++ {
		next := make([]posidonius.Axes, n)
		maxDev := 0.0
		for i := 0; i < n; i++ {
			p := &u.Particles[i]
			var sum posidonius.Axes
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				q := &u.Particles[j]
				d := p.InertialPosition.Sub(q.InertialPosition)
				r := d.Norm()
				if r == 0 {
					continue
				}
				aj := newtonian[j].Add(correction[j])
				sum = sum.Add(d.Scale(posidonius.G * q.Mass / (r * r * r) * d.Dot(aj) * 3.5 / posidonius.SpeedOfLight2)).
					Add(aj.Scale(posidonius.G * q.Mass / (r * r * r) * 4 / posidonius.SpeedOfLight2 * r * r))
			}
			next[i] = constant[i].Add(sum)
			dev := next[i].Sub(correction[i]).Norm()
			denom := newtonian[i].Norm()
			if denom > 0 && dev/denom > maxDev {
				maxDev = dev / denom
			}
		}
		correction = next
		if maxDev < cfg.NewhallDevLimit {
			lastErr = nil
			break
		}
		if iter == cfg.GRMaxIterations-1 {
			lastErr = &posidonius.ConvergenceWarning{Formulation: "newhall1983", Iterations: cfg.GRMaxIterations, ParticleID: -1}
		}
	}

	for i := range u.Particles {
		u.Particles[i].GeneralRelativityAcceleration = correction[i]
	}
	return lastErr
}

func pow2(x float64) float64 { return x * x }
