package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/EmelineBolmont/posidonius"
)

func sampleUniverse(t *testing.T) *posidonius.Universe {
	t.Helper()
	host := posidonius.Particle{ID: 0, Mass: 1.0}
	planet := posidonius.Particle{ID: 1, Mass: 3e-6}
	planet.Position = posidonius.NewAxes(1, 0, 0)
	planet.Velocity = posidonius.NewAxes(0, 0.0172, 0)
	u, err := posidonius.New([]posidonius.Particle{host, planet}, 365.25)
	if err != nil {
		t.Fatalf("New: %s", err)
	}
	return u
}

func TestHistoricWriteReadRoundTrip(t *testing.T) {
	u := sampleUniverse(t)
	var buf bytes.Buffer
	w := NewHistoricWriter(&buf, len(u.Particles))
	epoch := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if err := w.WriteStep(u, epoch); err != nil {
		t.Fatalf("WriteStep: %s", err)
	}
	if buf.Len() != w.RecordSize {
		t.Fatalf("record size mismatch: wrote %d bytes, want %d", buf.Len(), w.RecordSize)
	}

	rec, err := ReadHistoricRecord(&buf, len(u.Particles))
	if err != nil {
		t.Fatalf("ReadHistoricRecord: %s", err)
	}
	if rec.Positions[1] != u.Particles[1].Position {
		t.Errorf("position round-trip mismatch: got %+v, want %+v", rec.Positions[1], u.Particles[1].Position)
	}
}

func TestRecoveryRoundTrip(t *testing.T) {
	u := sampleUniverse(t)
	u.CurrentTime = 42.5
	u.ConsiderTides = true

	var buf bytes.Buffer
	if err := WriteRecovery(&buf, u); err != nil {
		t.Fatalf("WriteRecovery: %s", err)
	}

	snap, err := ReadRecovery(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadRecovery: %s", err)
	}
	restored, err := Restore(snap)
	if err != nil {
		t.Fatalf("Restore: %s", err)
	}
	if restored.CurrentTime != u.CurrentTime {
		t.Errorf("CurrentTime mismatch: got %g, want %g", restored.CurrentTime, u.CurrentTime)
	}
	if !restored.ConsiderTides {
		t.Error("ConsiderTides did not survive the round trip")
	}
	if restored.Particles[1].Position != u.Particles[1].Position {
		t.Errorf("particle position mismatch after restore")
	}
}

func TestRecoveryDetectsChecksumMismatch(t *testing.T) {
	u := sampleUniverse(t)
	var buf bytes.Buffer
	if err := WriteRecovery(&buf, u); err != nil {
		t.Fatalf("WriteRecovery: %s", err)
	}
	corrupted := buf.Bytes()
	corrupted[0] ^= 0xFF

	if _, err := ReadRecovery(bytes.NewReader(corrupted)); err != posidonius.ErrChecksumMismatch {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestRecoveryDetectsTruncation(t *testing.T) {
	if _, err := ReadRecovery(bytes.NewReader([]byte{1, 2, 3})); err != posidonius.ErrTruncatedSnapshot {
		t.Errorf("expected ErrTruncatedSnapshot, got %v", err)
	}
}
