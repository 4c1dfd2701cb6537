// Command posidonius is the CLI collaborator around the core: it reads a
// case configuration, builds the Universe, drives the WHFast integrator to
// time_limit, and writes the historic and recovery snapshot files. This is
// not part of the core's public surface; it is one way to implement the
// EXTERNAL INTERFACES the core documents.
package main

import (
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/EmelineBolmont/posidonius"
	kitlog "github.com/go-kit/kit/log"

	"github.com/EmelineBolmont/posidonius/coords"
	"github.com/EmelineBolmont/posidonius/integrator"
	"github.com/EmelineBolmont/posidonius/output"
)

const defaultCase = "~~unset~~"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "start":
		runStart(os.Args[2:])
	case "resume":
		runResume(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: posidonius start <case> <snapshot_out> <history_out> [--no-verify-integrity] [--silent]")
	fmt.Fprintln(os.Stderr, "       posidonius resume <snapshot_in> <history_out> [--no-verify-integrity] [--silent]")
}

func runStart(args []string) {
	fs := flag.NewFlagSet("start", flag.ExitOnError)
	noVerify := fs.Bool("no-verify-integrity", false, "skip recovery-snapshot integrity verification")
	silent := fs.Bool("silent", false, "suppress progress logging")
	fs.Parse(args)
	_ = noVerify
	rest := fs.Args()
	if len(rest) != 3 {
		usage()
		os.Exit(2)
	}
	caseName, snapshotOut, historyOut := rest[0], rest[1], rest[2]

	logger := newLogger(*silent)
	u, cfg, coordType, dt, err := loadCase(caseName)
	if err != nil {
		logger.Log("level", "fatal", "err", err)
		os.Exit(1)
	}
	os.Exit(drive(u, cfg, coordType, dt, snapshotOut, historyOut, logger))
}

func runResume(args []string) {
	fs := flag.NewFlagSet("resume", flag.ExitOnError)
	noVerify := fs.Bool("no-verify-integrity", false, "skip recovery-snapshot integrity verification")
	silent := fs.Bool("silent", false, "suppress progress logging")
	fs.Parse(args)
	rest := fs.Args()
	if len(rest) != 2 {
		usage()
		os.Exit(2)
	}
	snapshotIn, historyOut := rest[0], rest[1]

	logger := newLogger(*silent)
	f, err := os.Open(snapshotIn)
	if err != nil {
		logger.Log("level", "fatal", "err", err)
		os.Exit(1)
	}
	defer f.Close()

	var snap *output.RecoverySnapshot
	if *noVerify {
		logger.Log("level", "warn", "msg", "skipping recovery-snapshot integrity verification per --no-verify-integrity")
		var data []byte
		if data, err = io.ReadAll(f); err == nil {
			if len(data) < sha256.Size {
				err = posidonius.ErrTruncatedSnapshot
			} else {
				snap = new(output.RecoverySnapshot)
				err = json.Unmarshal(data[:len(data)-sha256.Size], snap)
			}
		}
	} else {
		snap, err = output.ReadRecovery(f)
	}
	if err != nil {
		logger.Log("level", "fatal", "err", err)
		os.Exit(1)
	}
	u, err := output.Restore(snap)
	if err != nil {
		logger.Log("level", "fatal", "err", err)
		os.Exit(1)
	}
	cfg := posidonius.TuningConfig()
	os.Exit(drive(u, cfg, coords.Jacobi, 0.08, snapshotIn, historyOut, logger))
}

func newLogger(silent bool) kitlog.Logger {
	if silent {
		return kitlog.NewNopLogger()
	}
	return posidonius.NewLogger("posidonius")
}

// loadCase reads a TOML case file (the collaborator's configuration input
// per the specification's EXTERNAL INTERFACES section) via the same
// viper-by-scenario-name pattern the teacher's mission runner uses.
func loadCase(caseName string) (*posidonius.Universe, posidonius.Config, coords.Type, float64, error) {
	caseName = strings.TrimSuffix(caseName, ".toml")
	viper.AddConfigPath(".")
	viper.SetConfigName(caseName)
	if err := viper.ReadInConfig(); err != nil {
		return nil, posidonius.Config{}, 0, 0, fmt.Errorf("./%s.toml: %w", caseName, err)
	}

	n := viper.GetInt("particles.count")
	particles := make([]posidonius.Particle, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("particles.%d.", i)
		particles[i] = posidonius.Particle{
			ID:     i,
			Mass:   viper.GetFloat64(key + "mass"),
			Radius: viper.GetFloat64(key + "radius"),
		}
		particles[i].MassG = posidonius.G * particles[i].Mass
		particles[i].Position = posidonius.NewAxes(viper.GetFloat64(key+"position.x"), viper.GetFloat64(key+"position.y"), viper.GetFloat64(key+"position.z"))
		particles[i].Velocity = posidonius.NewAxes(viper.GetFloat64(key+"velocity.x"), viper.GetFloat64(key+"velocity.y"), viper.GetFloat64(key+"velocity.z"))
	}

	timeLimit := viper.GetFloat64("mission.time_limit")
	u, err := posidonius.New(particles, timeLimit)
	if err != nil {
		return nil, posidonius.Config{}, 0, 0, err
	}
	u.ConsiderTides = viper.GetBool("mission.consider_tides")
	u.ConsiderRotationalFlattening = viper.GetBool("mission.consider_rotational_flattening")
	u.ConsiderDiskInteraction = viper.GetBool("mission.consider_disk_interaction")
	switch viper.GetString("mission.consider_general_relativity") {
	case "Kidder1995":
		u.ConsiderGeneralRelativity = posidonius.GRKidder1995
	case "Anderson1975":
		u.ConsiderGeneralRelativity = posidonius.GRAnderson1975
	case "Newhall1983":
		u.ConsiderGeneralRelativity = posidonius.GRNewhall1983
	}

	coordType := coords.Jacobi
	switch viper.GetString("mission.alternative_coordinates_type") {
	case "DemocraticHeliocentric":
		coordType = coords.DemocraticHeliocentric
	case "WHDS":
		coordType = coords.WHDS
	}

	dt := viper.GetFloat64("mission.time_step")
	if dt <= 0 {
		return nil, posidonius.Config{}, 0, 0, &posidonius.ConfigError{Field: "mission.time_step", Reason: "must be > 0"}
	}
	return u, posidonius.TuningConfig(), coordType, dt, nil
}

// drive runs the WHFast loop to u.TimeLimit, writing historic records every
// step and a recovery snapshot periodically, and returns the process exit
// code: 0 on reaching time_limit, non-zero on any fatal core error.
func drive(u *posidonius.Universe, cfg posidonius.Config, coordType coords.Type, dt float64, snapshotOut, historyOut string, logger kitlog.Logger) int {
	historyFile, err := os.Create(historyOut)
	if err != nil {
		logger.Log("level", "fatal", "err", err)
		return 1
	}
	defer historyFile.Close()
	historic := output.NewHistoricWriter(historyFile, len(u.Particles))
	epoch := time.Now()

	w := &integrator.WHFast{CoordType: coordType, Cfg: cfg, RecoverySnapshotEvery: 1000}

	for u.CurrentTime < u.TimeLimit {
		warnings, err := w.Step(u, dt)
		for _, warn := range warnings {
			logger.Log("level", "warn", "err", warn)
		}
		if err != nil {
			logger.Log("level", "fatal", "err", err)
			return 1
		}
		if err := historic.WriteStep(u, epoch); err != nil {
			logger.Log("level", "warn", "subsys", "historic", "err", err)
		}
		if w.RecoveryDue() {
			if err := writeRecoverySnapshot(u, snapshotOut); err != nil {
				logger.Log("level", "fatal", "subsys", "recovery", "err", err)
				return 1
			}
		}
	}
	if err := writeRecoverySnapshot(u, snapshotOut); err != nil {
		logger.Log("level", "fatal", "subsys", "recovery", "err", err)
		return 1
	}
	return 0
}

func writeRecoverySnapshot(u *posidonius.Universe, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return output.WriteRecovery(f, u)
}
