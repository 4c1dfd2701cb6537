// Package output implements the two on-disk snapshot formats: a fixed-size
// binary historic record written every step for post-hoc analysis, and a
// self-describing, checksummed recovery snapshot written periodically so an
// interrupted run can resume.
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/soniakeys/meeus/julian"

	"github.com/EmelineBolmont/posidonius"
)

// fieldsPerParticle is the count of float64 values HistoricWriter emits per
// body: heliocentric position (3), velocity (3), spin (3).
const fieldsPerParticle = 9

// HistoricWriter appends fixed-size binary snapshot records to an
// io.Writer. RecordSize is computed once from the particle count so callers
// can pre-size the destination file or seek to a known offset.
type HistoricWriter struct {
	w          io.Writer
	numBodies  int
	RecordSize int
}

// NewHistoricWriter returns a writer for a Universe with the given number
// of bodies; the record size (1 time field plus fieldsPerParticle per body,
// each an 8-byte float64) is fixed for the writer's lifetime.
func NewHistoricWriter(w io.Writer, numBodies int) *HistoricWriter {
	return &HistoricWriter{
		w:          w,
		numBodies:  numBodies,
		RecordSize: 8 * (1 + fieldsPerParticle*numBodies),
	}
}

// WriteStep appends one fixed-size record for the Universe's current state,
// timestamped as a Julian date derived from epoch plus the simulation's
// current time (interpreted as days).
func (h *HistoricWriter) WriteStep(u *posidonius.Universe, epoch time.Time) error {
	if len(u.Particles) != h.numBodies {
		return fmt.Errorf("output: historic writer configured for %d bodies, got %d", h.numBodies, len(u.Particles))
	}
	jd := julian.TimeToJD(epoch.Add(time.Duration(u.CurrentTime * float64(24*time.Hour))))

	values := make([]float64, 0, 1+fieldsPerParticle*h.numBodies)
	values = append(values, jd)
	for i := range u.Particles {
		p := &u.Particles[i]
		values = append(values,
			p.Position.X, p.Position.Y, p.Position.Z,
			p.Velocity.X, p.Velocity.Y, p.Velocity.Z,
			p.Spin.X, p.Spin.Y, p.Spin.Z,
		)
	}
	return binary.Write(h.w, binary.LittleEndian, values)
}

// HistoricRecord is one decoded historic snapshot record.
type HistoricRecord struct {
	JulianDate float64
	Positions  []posidonius.Axes
	Velocities []posidonius.Axes
	Spins      []posidonius.Axes
}

// ReadHistoricRecord decodes one fixed-size record from r for a Universe of
// numBodies particles. It returns io.EOF once the source is exhausted.
func ReadHistoricRecord(r io.Reader, numBodies int) (*HistoricRecord, error) {
	values := make([]float64, 1+fieldsPerParticle*numBodies)
	if err := binary.Read(r, binary.LittleEndian, values); err != nil {
		return nil, err
	}
	rec := &HistoricRecord{
		JulianDate: values[0],
		Positions:  make([]posidonius.Axes, numBodies),
		Velocities: make([]posidonius.Axes, numBodies),
		Spins:      make([]posidonius.Axes, numBodies),
	}
	for i := 0; i < numBodies; i++ {
		off := 1 + i*fieldsPerParticle
		rec.Positions[i] = posidonius.NewAxes(values[off], values[off+1], values[off+2])
		rec.Velocities[i] = posidonius.NewAxes(values[off+3], values[off+4], values[off+5])
		rec.Spins[i] = posidonius.NewAxes(values[off+6], values[off+7], values[off+8])
	}
	return rec, nil
}
