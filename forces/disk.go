package forces

import (
	"math"

	"github.com/EmelineBolmont/posidonius"
)

// Disk evaluates the protoplanetary-disk interaction: a Type-I-migration
// torque plus eccentricity/inclination damping for every companion that
// orbits within the disk's inner/outer radii and before the disk has
// dispersed. Outside that window (radially or temporally) a companion
// feels nothing, matching the specification's "vanishes outside the
// configured inner/outer radius or after dispersal time" edge case.
func Disk(u *posidonius.Universe) {
	if u.DiskSurfaceDensity == 0 || u.CurrentTime >= u.DiskDispersalTime {
		return
	}
	host := u.Host()
	var hostAccel posidonius.Axes

	for i := 1; i < len(u.Particles); i++ {
		p := &u.Particles[i]
		r := p.Position
		rn := r.Norm()
		if rn < u.DiskInnerRadius || rn > u.DiskOuterRadius {
			continue
		}
		v := p.Velocity

		surfaceDensity := u.DiskSurfaceDensity * math.Pow(rn/u.DiskInnerRadius, -0.5)
		migrationTimescale := (host.Mass / p.Mass) * (host.Mass / (surfaceDensity * rn * rn)) / math.Sqrt(rn)
		if migrationTimescale <= 0 {
			continue
		}
		dampingTimescale := migrationTimescale / 10

		radialVelocity := r.Dot(v) / rn
		vRadialVec := r.Scale(radialVelocity / rn)

		migrationAccel := v.Scale(-1 / (2 * migrationTimescale))
		eccentricityDamping := vRadialVec.Scale(-2 / dampingTimescale)
		inclinationDamping := posidonius.NewAxes(0, 0, -v.Z/dampingTimescale)

		accel := migrationAccel.Add(eccentricityDamping).Add(inclinationDamping)
		p.DiskInteractionAcceleration = accel
		hostAccel = hostAccel.Add(accel.Scale(p.Mass / host.Mass))
	}

	host.DiskInteractionAcceleration = hostAccel.Scale(-1)
}
