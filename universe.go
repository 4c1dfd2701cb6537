package posidonius

import "fmt"

// Universe aggregates the particle buffer, the simulation clock, the set
// of enabled additional-force categories, and the aggregate scalars used to
// monitor the energy/angular-momentum budget. Particle 0 is always the
// host; this invariant is enforced at construction and never revisited.
type Universe struct {
	Particles []Particle

	CurrentTime float64
	TimeLimit   float64

	ConsiderTides                bool
	ConsiderRotationalFlattening bool
	ConsiderDiskInteraction      bool
	ConsiderGeneralRelativity    GeneralRelativityModel

	// Disk parameters, consumed by forces.Disk.
	DiskInnerRadius     float64
	DiskOuterRadius     float64
	DiskDispersalTime   float64
	DiskSurfaceDensity  float64

	// Aggregate reference scalars. ComputeTotalEnergy /
	// ComputeTotalAngularMomentum do not write them; the caller stores
	// their first computed values here as the reference against which the
	// symplecticity invariant is judged.
	ReferenceEnergy         float64
	ReferenceAngularMomentum Axes

	// EscapeRadius bounds CheckBound: any body farther than this from the
	// host in the inertial frame is declared unbound.
	EscapeRadius float64
}

// New validates and returns a Universe over the given particles. Particle 0
// must be the host; there must be at least two bodies; MaxParticles bounds
// the buffer capacity per the fixed-capacity design note.
func New(particles []Particle, timeLimit float64) (*Universe, error) {
	if len(particles) < 2 {
		return nil, &ConfigError{Field: "particles", Reason: "at least two bodies (host + one companion) are required"}
	}
	if len(particles) > MaxParticles {
		return nil, &ConfigError{Field: "particles", Reason: fmt.Sprintf("exceeds MaxParticles=%d", MaxParticles)}
	}
	if particles[0].ID != 0 {
		return nil, &ConfigError{Field: "particles[0].ID", Reason: "host must be particle index 0"}
	}
	u := &Universe{
		Particles:    particles,
		TimeLimit:    timeLimit,
		EscapeRadius: 1000, // AU; generous default, overridable by the collaborator
	}
	u.HeliocentricToInertial()
	for i := range u.Particles {
		u.Particles[i].UpdateKinematicScalars()
	}
	return u, nil
}

// Host returns the always-present particle 0.
func (u *Universe) Host() *Particle { return &u.Particles[0] }

// Companions returns the particles after the host.
func (u *Universe) Companions() []Particle { return u.Particles[1:] }

// totalMass sums every particle's mass.
func (u *Universe) totalMass() float64 {
	var m float64
	for _, p := range u.Particles {
		m += p.Mass
	}
	return m
}

// HeliocentricToInertial materializes the inertial (barycentric) frame
// positions/velocities from the heliocentric ones: the host's heliocentric
// position is the origin by definition, so the center of mass is computed
// from the companions and subtracted off every body.
func (u *Universe) HeliocentricToInertial() {
	mtot := u.totalMass()
	var comPos, comVel Axes
	for _, p := range u.Particles {
		comPos = comPos.Add(p.Position.Scale(p.Mass))
		comVel = comVel.Add(p.Velocity.Scale(p.Mass))
	}
	comPos = comPos.Scale(1 / mtot)
	comVel = comVel.Scale(1 / mtot)
	for i := range u.Particles {
		p := &u.Particles[i]
		p.InertialPosition = p.Position.Sub(comPos)
		p.InertialVelocity = p.Velocity.Sub(comVel)
	}
}

// InertialToHeliocentric is the inverse: it recenters every particle's
// position/velocity on the host's inertial-frame state.
func (u *Universe) InertialToHeliocentric() {
	host := u.Host()
	hp, hv := host.InertialPosition, host.InertialVelocity
	for i := range u.Particles {
		p := &u.Particles[i]
		p.Position = p.InertialPosition.Sub(hp)
		p.Velocity = p.InertialVelocity.Sub(hv)
	}
}

// ComputeTotalEnergy returns the system's kinetic plus potential energy in
// the inertial frame.
func (u *Universe) ComputeTotalEnergy() float64 {
	var kinetic, potential float64
	for i := range u.Particles {
		p := &u.Particles[i]
		kinetic += 0.5 * p.Mass * p.InertialVelocity.Norm2()
		for j := i + 1; j < len(u.Particles); j++ {
			q := &u.Particles[j]
			d := p.InertialPosition.Sub(q.InertialPosition).Norm()
			potential -= G * p.Mass * q.Mass / d
		}
	}
	return kinetic + potential
}

// ComputeTotalAngularMomentum returns the total angular momentum vector in
// the inertial frame.
func (u *Universe) ComputeTotalAngularMomentum() Axes {
	var total Axes
	for i := range u.Particles {
		p := &u.Particles[i]
		orbital := p.InertialPosition.Cross(p.InertialVelocity).Scale(p.Mass)
		spin := p.Spin.Scale(p.MomentOfInertia)
		total = total.Add(orbital).Add(spin)
	}
	return total
}

// CheckBarycenter returns the barycenter-conservation residual
// ||sum m_i r_i|| / sum m_i ||r_i||, which must stay below 1e-12 per the
// specification's quantified invariant.
func (u *Universe) CheckBarycenter() float64 {
	var num Axes
	var den float64
	for _, p := range u.Particles {
		num = num.Add(p.InertialPosition.Scale(p.Mass))
		den += p.Mass * p.InertialPosition.Norm()
	}
	if den == 0 {
		return 0
	}
	return num.Norm() / den
}

// CheckCollisions reports the first pair of bodies whose separation is
// below the sum of their radii, a fatal condition per the error-handling
// design.
func (u *Universe) CheckCollisions() error {
	for i := range u.Particles {
		for j := i + 1; j < len(u.Particles); j++ {
			p, q := &u.Particles[i], &u.Particles[j]
			d := p.InertialPosition.Sub(q.InertialPosition).Norm()
			if d < p.Radius+q.Radius {
				return &IntegrationError{Time: u.CurrentTime, ParticleID: q.ID, Reason: fmt.Sprintf("collision with particle %d", p.ID)}
			}
		}
	}
	return nil
}

// CheckBound reports the first body whose distance from the host exceeds
// EscapeRadius, a fatal condition per the error-handling design.
func (u *Universe) CheckBound() error {
	host := u.Host()
	for i := 1; i < len(u.Particles); i++ {
		p := &u.Particles[i]
		if p.InertialPosition.Sub(host.InertialPosition).Norm() > u.EscapeRadius {
			return &IntegrationError{Time: u.CurrentTime, ParticleID: p.ID, Reason: "body exceeded escape radius, unbound"}
		}
	}
	return nil
}
