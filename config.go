package posidonius

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/viper"
)

// MaxParticles is the fixed upper bound on the number of bodies a Universe
// may hold. Scratch buffers throughout the core (pairwise separations,
// per-particle accelerations) are sized to this constant instead of
// growing on the heap, keeping layout and iteration order stable.
const MaxParticles = 22

const (
	// SpeedOfLight in AU/day, matching the source's internal unit system.
	SpeedOfLight = 173.14463267424034
	// SpeedOfLight2 is (speed of light)^2, used throughout the GR layer.
	SpeedOfLight2 = SpeedOfLight * SpeedOfLight
	// G is the gravitational constant in AU^3 / (Msun day^2).
	G = 2.959122082855911e-4
)

// Config holds the core's numerical tuning parameters: iteration caps and
// convergence epsilons for the Kepler solver and the two iterative GR
// formulations. These are not scenario data (particle masses, orbital
// elements, simulation duration remain the CLI collaborator's concern) —
// they are the kind of build-time constant the teacher reads from
// `conf.toml` via `smdConfig()`. Posidonius reads the same kind of overlay,
// through the same viper API, from an optional `posidonius-tuning.toml`.
type Config struct {
	KeplerMaxIterations int
	KeplerEpsilon       float64
	GRMaxIterations     int
	GRVelocityEpsilon2  float64
	NewhallDevLimit     float64
}

// DefaultConfig matches the quantified invariants in the specification:
// a Newton-Halley solver converging near machine epsilon, and the ~10
// iteration cap shared by both iterative GR formulations.
func DefaultConfig() Config {
	return Config{
		KeplerMaxIterations: 50,
		KeplerEpsilon:       1e-14,
		GRMaxIterations:     10,
		GRVelocityEpsilon2:  2.220446049250313e-16 * 2.220446049250313e-16,
		NewhallDevLimit:     1e-30,
	}
}

var (
	tuningOnce sync.Once
	tuning     Config
)

// TuningConfig returns the process-wide tuning configuration, loading a
// `posidonius-tuning.toml` overlay the first time it is called if
// `$POSIDONIUS_CONFIG` points at a directory containing one. Unlike the
// teacher's `smdConfig()`, a missing file is not fatal here: these are
// tuning knobs with sane defaults, not required scenario input.
func TuningConfig() Config {
	tuningOnce.Do(func() {
		tuning = DefaultConfig()
		confPath := os.Getenv("POSIDONIUS_CONFIG")
		if confPath == "" {
			return
		}
		viper.SetConfigName("posidonius-tuning")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "[posidonius] no tuning overlay at %s, using defaults: %s\n", confPath, err)
			return
		}
		if v := viper.GetInt("kepler.max_iterations"); v > 0 {
			tuning.KeplerMaxIterations = v
		}
		if v := viper.GetFloat64("kepler.epsilon"); v > 0 {
			tuning.KeplerEpsilon = v
		}
		if v := viper.GetInt("general_relativity.max_iterations"); v > 0 {
			tuning.GRMaxIterations = v
		}
		if v := viper.GetFloat64("general_relativity.dev_limit"); v > 0 {
			tuning.NewhallDevLimit = v
		}
	})
	return tuning
}
