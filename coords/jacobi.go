package coords

import "github.com/EmelineBolmont/posidonius"

// jacobiForward runs the nested center-of-mass recursion shared by
// position, velocity and acceleration: eta_k = sum_{i<=k} m_i, with each
// companion's Jacobi quantity taken relative to the running mass-weighted
// sum of everything before it. Grounded on
// anderson1975_general_relativity_inertial_to_jacobi_posvelacc in
// original_source/src/particles/general_relativity.rs, generalized from
// acceleration-only to any one of position/velocity/acceleration so the
// integrator can reuse it for all three.
func jacobiForward(hostMass float64, hostQ posidonius.Axes, companionMasses []float64, companionQ []posidonius.Axes) (comMass float64, com posidonius.Axes, jacobi []posidonius.Axes) {
	eta := hostMass
	s := hostQ.Scale(eta)
	jacobi = make([]posidonius.Axes, len(companionQ))
	for k, q := range companionQ {
		ei := 1 / eta
		eta += companionMasses[k]
		pme := eta * ei
		jacobi[k] = q.Sub(s.Scale(ei))
		s = s.Scale(pme).Add(jacobi[k].Scale(companionMasses[k]))
	}
	comMass = eta
	com = s.Scale(1 / eta)
	return
}

// jacobiInverse is the reverse traversal of jacobiForward: it recovers
// each companion's inertial-frame quantity (and the host's) from the
// Jacobi-frame quantities, working from the outermost body inward.
func jacobiInverse(comMass float64, companionMasses []float64, jacobi []posidonius.Axes) (hostQ posidonius.Axes, companionQ []posidonius.Axes) {
	n := len(jacobi)
	companionQ = make([]posidonius.Axes, n)
	eta := comMass
	var s posidonius.Axes
	for k := n - 1; k >= 0; k-- {
		ei := 1 / eta
		s = s.Sub(jacobi[k].Scale(companionMasses[k])).Scale(ei)
		companionQ[k] = jacobi[k].Add(s)
		eta -= companionMasses[k]
		s = s.Scale(eta)
	}
	hostQ = s.Scale(1 / eta)
	return
}

// ToJacobi transforms the host and its companions' position, velocity and
// acceleration into Jacobi coordinates.
func ToJacobi(host posidonius.Particle, companions []posidonius.Particle) (comMass float64, com State, jacobi []State) {
	masses := make([]float64, len(companions))
	pos := make([]posidonius.Axes, len(companions))
	vel := make([]posidonius.Axes, len(companions))
	acc := make([]posidonius.Axes, len(companions))
	for i, c := range companions {
		masses[i] = c.Mass
		pos[i], vel[i], acc[i] = c.InertialPosition, c.InertialVelocity, c.InertialAcceleration
	}
	var comPos, comVel, comAcc posidonius.Axes
	var jp, jv, ja []posidonius.Axes
	comMass, comPos, jp = jacobiForward(host.Mass, host.InertialPosition, masses, pos)
	_, comVel, jv = jacobiForward(host.Mass, host.InertialVelocity, masses, vel)
	_, comAcc, ja = jacobiForward(host.Mass, host.InertialAcceleration, masses, acc)
	com = State{Position: comPos, Velocity: comVel, Acceleration: comAcc}
	jacobi = make([]State, len(companions))
	for i := range companions {
		jacobi[i] = State{Position: jp[i], Velocity: jv[i], Acceleration: ja[i]}
	}
	return
}

// ToJacobiVectors Jacobi-transforms an arbitrary per-body vector field (not
// necessarily Position/Velocity/InertialAcceleration) using the same nested
// center-of-mass recursion as ToJacobi. Anderson1975 uses this to transform
// the reconstructed Newtonian inertial accelerations, which during a GR
// evaluation are not the same as each particle's stored InertialAcceleration.
func ToJacobiVectors(hostMass float64, hostVal posidonius.Axes, companionMasses []float64, companionVals []posidonius.Axes) (comMass float64, com posidonius.Axes, jacobi []posidonius.Axes) {
	return jacobiForward(hostMass, hostVal, companionMasses, companionVals)
}

// FromJacobiVectors is the inverse of ToJacobiVectors.
func FromJacobiVectors(comMass float64, companionMasses []float64, jacobi []posidonius.Axes) (hostVal posidonius.Axes, companionVals []posidonius.Axes) {
	return jacobiInverse(comMass, companionMasses, jacobi)
}

// FromJacobi is the inverse of ToJacobi.
func FromJacobi(comMass float64, companionMasses []float64, jacobi []State) (host State, companions []State) {
	pos := make([]posidonius.Axes, len(jacobi))
	vel := make([]posidonius.Axes, len(jacobi))
	acc := make([]posidonius.Axes, len(jacobi))
	for i, j := range jacobi {
		pos[i], vel[i], acc[i] = j.Position, j.Velocity, j.Acceleration
	}
	hostPos, compPos := jacobiInverse(comMass, companionMasses, pos)
	hostVel, compVel := jacobiInverse(comMass, companionMasses, vel)
	hostAcc, compAcc := jacobiInverse(comMass, companionMasses, acc)
	host = State{Position: hostPos, Velocity: hostVel, Acceleration: hostAcc}
	companions = make([]State, len(jacobi))
	for i := range jacobi {
		companions[i] = State{Position: compPos[i], Velocity: compVel[i], Acceleration: compAcc[i]}
	}
	return
}
