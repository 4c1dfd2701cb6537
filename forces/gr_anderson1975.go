package forces

import (
	"github.com/EmelineBolmont/posidonius"
	"github.com/EmelineBolmont/posidonius/coords"
)

// Anderson1975 evaluates the REBOUNDx gr.c-based post-Newtonian correction.
// It works in Jacobi coordinates: the reconstructed Newtonian inertial
// accelerations (via ignoreGravityTerms) are Jacobi-transformed alongside
// position and velocity, then each Jacobi body's correction is solved
// independently by fixed-point iteration on
// factorA = (0.5*|v|^2 + 3*mu/r) / c^2, mu = host.MassG, capped at
// cfg.GRMaxIterations and stopped once |Δv|^2/|v|^2 < cfg.GRVelocityEpsilon2.
// The corrected Jacobi accelerations are then transformed back to the
// inertial frame. Grounded on calculate_anderson1975_general_relativity_acceleration
// and its anderson1975_general_relativity_inertial_to_jacobi_posvelacc /
// _jacobi_to_inertial_acc helpers in
// original_source/src/particles/general_relativity.rs. A miss returns a
// *ConvergenceWarning rather than an error the caller must treat as fatal,
// per the specification's severity tiers.
func Anderson1975(u *posidonius.Universe, ignoreGravityTerms coords.IgnoreGravityTerms, cfg posidonius.Config) error {
	host := u.Host()
	companions := u.Companions()
	companionMasses := make([]float64, len(companions))
	for i, c := range companions {
		companionMasses[i] = c.Mass
	}

	newtonian := newtonianInertialAccelerations(u, ignoreGravityTerms)

	comMass, _, jacobi := coords.ToJacobi(*host, companions)
	jacobiPositions := make([]posidonius.Axes, len(companions))
	jacobiVelocities := make([]posidonius.Axes, len(companions))
	for i, j := range jacobi {
		jacobiPositions[i], jacobiVelocities[i] = j.Position, j.Velocity
	}
	_, _, jacobiAccel := coords.ToJacobiVectors(host.Mass, newtonian[0], companionMasses, newtonian[1:])

	c2 := posidonius.SpeedOfLight2
	mu := host.MassG
	correctedAccel := make([]posidonius.Axes, len(companions))
	var warning error

	for i := range companions {
		ri := jacobiPositions[i].Norm()
		if ri == 0 {
			correctedAccel[i] = jacobiAccel[i]
			continue
		}
		origVel := jacobiVelocities[i]
		vi := origVel
		vi2 := vi.Norm2()
		factorA := (0.5*vi2 + 3*mu/ri) / c2

		converged := false
		for q := 0; q < cfg.GRMaxIterations; q++ {
			oldV := vi
			vi = origVel.Scale(1 / (1 - factorA))
			vi2 = vi.Norm2()
			factorA = (0.5*vi2 + 3*mu/ri) / c2
			dv := vi.Sub(oldV)
			if dv.Norm2()/vi2 < cfg.GRVelocityEpsilon2 {
				converged = true
				break
			}
		}
		if !converged && warning == nil {
			warning = &posidonius.ConvergenceWarning{Formulation: "anderson1975", Iterations: cfg.GRMaxIterations, ParticleID: companions[i].ID}
		}

		factorB := (mu/ri - 1.5*vi2) * mu / (ri * ri * ri) / c2
		rdotrdot := jacobiPositions[i].Dot(origVel)
		vidot := jacobiAccel[i].Add(jacobiPositions[i].Scale(factorB))
		vdotvdot := vi.Dot(vidot)
		factorD := (vdotvdot - 3*mu/(ri*ri*ri)*rdotrdot) / c2

		correctedAccel[i] = jacobiPositions[i].Scale(factorB * (1 - factorA)).
			Sub(jacobiAccel[i].Scale(factorA)).
			Sub(vi.Scale(factorD))
	}

	hostAccel, companionAccel := coords.FromJacobiVectors(comMass, companionMasses, correctedAccel)

	u.Particles[0].GeneralRelativityAcceleration = hostAccel
	for i := range companions {
		u.Particles[i+1].GeneralRelativityAcceleration = companionAccel[i]
	}
	return warning
}
