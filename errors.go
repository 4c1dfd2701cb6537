package posidonius

import "fmt"

// IntegrationError reports a fatal failure of the integration step: the
// Kepler solver failed to converge, two bodies collided, or a body became
// unbound. The step that triggered it is never committed to core state.
type IntegrationError struct {
	Time       float64
	ParticleID int
	Reason     string
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failed at t=%g (particle %d): %s", e.Time, e.ParticleID, e.Reason)
}

// ConvergenceWarning is the Tier 2 condition from a GR fixed-point solver
// that exhausted its iteration budget. It is not returned as a failure: the
// caller logs it once and keeps the best iterate.
type ConvergenceWarning struct {
	Formulation string
	Iterations  int
	ParticleID  int
}

func (w *ConvergenceWarning) Error() string {
	return fmt.Sprintf("%s: %d iterations failed to converge for particle %d", w.Formulation, w.Iterations, w.ParticleID)
}

// ConfigError reports a Tier 4 configuration-validity failure, checked
// before the first step.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
}

// ErrChecksumMismatch and ErrTruncatedSnapshot are returned by the recovery
// snapshot reader (output package) on the I/O failure tier; they are typed
// here so callers across packages can compare with errors.Is.
var (
	ErrChecksumMismatch = fmt.Errorf("recovery snapshot: checksum mismatch")
	ErrTruncatedSnapshot = fmt.Errorf("recovery snapshot: truncated payload")
)
