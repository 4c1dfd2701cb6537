package coords

import (
	"math"
	"testing"

	"github.com/EmelineBolmont/posidonius"
)

func sampleSystem() (posidonius.Particle, []posidonius.Particle) {
	host := posidonius.Particle{ID: 0, Mass: 1.0}
	host.InertialPosition = posidonius.NewAxes(-1e-3, 2e-4, 0)
	host.InertialVelocity = posidonius.NewAxes(1e-5, -2e-5, 0)
	host.InertialAcceleration = posidonius.NewAxes(1e-7, 2e-7, 0)

	earth := posidonius.Particle{ID: 1, Mass: 3e-6}
	earth.InertialPosition = posidonius.NewAxes(1.0, 0, 0)
	earth.InertialVelocity = posidonius.NewAxes(0, 0.0172, 0)
	earth.InertialAcceleration = posidonius.NewAxes(-3e-4, 0, 0)

	jupiter := posidonius.Particle{ID: 2, Mass: 9.5e-4}
	jupiter.InertialPosition = posidonius.NewAxes(0, 5.2, 0)
	jupiter.InertialVelocity = posidonius.NewAxes(-0.0075, 0, 0)
	jupiter.InertialAcceleration = posidonius.NewAxes(0, -1.1e-5, 0)

	return host, []posidonius.Particle{earth, jupiter}
}

func assertClose(t *testing.T, label string, got, want posidonius.Axes, tol float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("%s: got %+v, want %+v", label, got, want)
	}
}

func TestJacobiRoundTrip(t *testing.T) {
	host, companions := sampleSystem()
	comMass, com, jacobi := ToJacobi(host, companions)
	masses := make([]float64, len(companions))
	for i, c := range companions {
		masses[i] = c.Mass
	}
	_ = com
	hostBack, companionsBack := FromJacobi(comMass, masses, jacobi)
	assertClose(t, "host position", hostBack.Position, host.InertialPosition, 1e-13)
	assertClose(t, "host velocity", hostBack.Velocity, host.InertialVelocity, 1e-13)
	for i, c := range companions {
		assertClose(t, "companion position", companionsBack[i].Position, c.InertialPosition, 1e-13)
		assertClose(t, "companion velocity", companionsBack[i].Velocity, c.InertialVelocity, 1e-13)
	}
}

func TestDemocraticHeliocentricRoundTrip(t *testing.T) {
	host, companions := sampleSystem()
	hostState, companionStates := ToDemocraticHeliocentric(host, companions)
	hostBack, companionsBack := FromDemocraticHeliocentric(hostState, companionStates)
	assertClose(t, "host position", hostBack.Position, host.InertialPosition, 1e-13)
	for i, c := range companions {
		assertClose(t, "companion position", companionsBack[i].Position, c.InertialPosition, 1e-13)
		assertClose(t, "companion velocity", companionsBack[i].Velocity, c.InertialVelocity, 1e-13)
	}
}

func TestWHDSRoundTrip(t *testing.T) {
	host, companions := sampleSystem()
	masses := make([]float64, len(companions))
	for i, c := range companions {
		masses[i] = c.Mass
	}
	hostState, companionStates := ToWHDS(host, companions)
	hostBack, companionsBack := FromWHDS(host.Mass, masses, hostState, companionStates)
	assertClose(t, "host position", hostBack.Position, host.InertialPosition, 1e-13)
	for i, c := range companions {
		assertClose(t, "companion position", companionsBack[i].Position, c.InertialPosition, 1e-13)
		assertClose(t, "companion velocity", companionsBack[i].Velocity, c.InertialVelocity, 1e-13)
	}
}
