package kepler

import (
	"math"
	"testing"

	"github.com/ChristopherRabotin/ode"
	"github.com/EmelineBolmont/posidonius"
	"gonum.org/v1/gonum/floats"
)

// twoBody packages a Kepler problem as an ode.Integrable for the RK4
// cross-check in TestSolveAgainstRK4Oracle.
type twoBody struct {
	mu       float64
	state    []float64 // x, y, z, vx, vy, vz
	maxSteps uint64
}

func (t *twoBody) GetState() []float64            { return t.state }
func (t *twoBody) SetState(i uint64, s []float64) { t.state = s }
func (t *twoBody) Stop(i uint64) bool             { return i >= t.maxSteps }
func (t *twoBody) Func(time float64, f []float64) []float64 {
	r := math.Sqrt(f[0]*f[0] + f[1]*f[1] + f[2]*f[2])
	k := -t.mu / (r * r * r)
	return []float64{f[3], f[4], f[5], k * f[0], k * f[1], k * f[2]}
}

// TestSolveAgainstRK4Oracle exercises the ChristopherRabotin/ode RK4
// integrator as an independent numerical oracle for the analytic
// universal-variable propagator, grounded on src/integrator/rk4.go's
// Integrable/RK4 pattern from the teacher repo (reused here purely as a
// test oracle: WHFast's symplectic splitting is not itself an Integrable).
func TestSolveAgainstRK4Oracle(t *testing.T) {
	mu := 2.959122082855911e-4 * 1.0 // Sun mass in AU^3/day^2 units
	r0 := posidonius.NewAxes(1.0, 0.0, 0.0)
	v0 := posidonius.NewAxes(0.0, math.Sqrt(mu/1.0), 0.0) // circular orbit
	dt := 10.0

	r1, v1, err := Solve(r0, v0, mu, dt, 50, 1e-14)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	steps := uint64(20000)
	body := &twoBody{mu: mu, state: []float64{r0.X, r0.Y, r0.Z, v0.X, v0.Y, v0.Z}, maxSteps: steps}
	h := dt / float64(steps)
	ode.NewRK4(0, h, body).Solve()

	if !floats.EqualWithinAbs(r1.X, body.state[0], 1e-6) ||
		!floats.EqualWithinAbs(r1.Y, body.state[1], 1e-6) {
		t.Errorf("Solve diverges from RK4 oracle: analytic=(%g,%g) rk4=(%g,%g)", r1.X, r1.Y, body.state[0], body.state[1])
	}
	_ = v1
}

// TestSolveFullPeriod checks the specification's quantified invariant:
// after one full period the returned state matches the initial state to
// < 1e-10 relative.
func TestSolveFullPeriod(t *testing.T) {
	mu := 2.959122082855911e-4
	a := 1.0
	r0 := posidonius.NewAxes(a, 0, 0)
	v0 := posidonius.NewAxes(0, math.Sqrt(mu/a), 0)
	period := 2 * math.Pi * math.Sqrt(a*a*a/mu)

	r1, v1, err := Solve(r0, v0, mu, period, 50, 1e-14)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if math.Abs(r1.X-r0.X)/a > 1e-10 || math.Abs(r1.Y-r0.Y)/a > 1e-10 {
		t.Errorf("period round-trip mismatch: got (%g,%g), want (%g,%g)", r1.X, r1.Y, r0.X, r0.Y)
	}
	if math.Abs(v1.X-v0.X) > 1e-10 || math.Abs(v1.Y-v0.Y) > 1e-10 {
		t.Errorf("velocity period round-trip mismatch: got (%g,%g), want (%g,%g)", v1.X, v1.Y, v0.X, v0.Y)
	}
}

// TestStumpffIdentity samples psi across [-50, 50] and checks the defining
// Stumpff recursion c0(psi) = 1 - psi*c2(psi), per the specification's
// quantified invariant.
func TestStumpffIdentity(t *testing.T) {
	for psi := -50.0; psi <= 50.0; psi += 0.37 {
		lhs := C0(psi)
		rhs := 1 - psi*C2(psi)
		if math.Abs(lhs-rhs) > 1e-14 {
			t.Errorf("psi=%g: c0=%g, want 1-psi*c2=%g", psi, lhs, rhs)
		}
	}
}
