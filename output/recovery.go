package output

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	"github.com/EmelineBolmont/posidonius"
)

// RecoverySnapshot is a self-describing dump of everything needed to resume
// a run: the full particle buffer, the simulation clock, and the enabled
// additional-force categories. Standard library encoding/json and
// crypto/sha256 are used for this format rather than a third-party codec:
// the teacher's own export.go serializes its snapshot state with the
// standard library too, so this follows the same ambient convention rather
// than introducing a new one for a single format.
type RecoverySnapshot struct {
	CurrentTime                 float64
	TimeLimit                   float64
	ConsiderTides                bool
	ConsiderRotationalFlattening bool
	ConsiderDiskInteraction      bool
	ConsiderGeneralRelativity    posidonius.GeneralRelativityModel
	Particles                   []posidonius.Particle
}

func snapshotFrom(u *posidonius.Universe) RecoverySnapshot {
	return RecoverySnapshot{
		CurrentTime:                  u.CurrentTime,
		TimeLimit:                    u.TimeLimit,
		ConsiderTides:                u.ConsiderTides,
		ConsiderRotationalFlattening: u.ConsiderRotationalFlattening,
		ConsiderDiskInteraction:      u.ConsiderDiskInteraction,
		ConsiderGeneralRelativity:    u.ConsiderGeneralRelativity,
		Particles:                    u.Particles,
	}
}

// WriteRecovery serializes the Universe's current state as JSON followed by
// a trailing 32-byte SHA-256 checksum of the JSON payload, so a truncated
// or corrupted file is detectable on read without a separate manifest.
func WriteRecovery(w io.Writer, u *posidonius.Universe) error {
	payload, err := json.Marshal(snapshotFrom(u))
	if err != nil {
		return fmt.Errorf("output: marshal recovery snapshot: %w", err)
	}
	sum := sha256.Sum256(payload)
	if _, err := w.Write(payload); err != nil {
		return err
	}
	_, err = w.Write(sum[:])
	return err
}

// ReadRecovery decodes a recovery snapshot previously written by
// WriteRecovery, verifying the trailing checksum before restoring any
// Universe state. It returns posidonius.ErrTruncatedSnapshot if the payload
// is shorter than a checksum, and posidonius.ErrChecksumMismatch if the
// checksum does not match; cmd/posidonius treats both as fatal.
func ReadRecovery(r io.Reader) (*RecoverySnapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < sha256.Size {
		return nil, posidonius.ErrTruncatedSnapshot
	}
	payload, gotSum := data[:len(data)-sha256.Size], data[len(data)-sha256.Size:]
	wantSum := sha256.Sum256(payload)
	if !bytes.Equal(gotSum, wantSum[:]) {
		return nil, posidonius.ErrChecksumMismatch
	}
	var snap RecoverySnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("output: unmarshal recovery snapshot: %w", err)
	}
	return &snap, nil
}

// Restore rebuilds a *posidonius.Universe from a decoded recovery snapshot.
func Restore(snap *RecoverySnapshot) (*posidonius.Universe, error) {
	u, err := posidonius.New(snap.Particles, snap.TimeLimit)
	if err != nil {
		return nil, err
	}
	u.CurrentTime = snap.CurrentTime
	u.ConsiderTides = snap.ConsiderTides
	u.ConsiderRotationalFlattening = snap.ConsiderRotationalFlattening
	u.ConsiderDiskInteraction = snap.ConsiderDiskInteraction
	u.ConsiderGeneralRelativity = snap.ConsiderGeneralRelativity
	u.Particles = snap.Particles
	return u, nil
}
