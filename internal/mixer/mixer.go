// Package mixer implements the six-degree-of-freedom multirotor
// control allocator: it projects a desired body-frame command onto the
// feasible output polytope of a fixed rotor geometry, with lexicographic
// priority on axis groups, then maps through an optional quadratic
// thrust model, clamps, slew-limits, and reports per-axis saturation.
package mixer

import "errors"

// ErrUnknownGeometry is returned by New when geometryKey does not name
// a compiled-in airframe.
var ErrUnknownGeometry = errors.New("mixer: unknown geometry")

// ErrCapacity describes a caller output buffer too small to hold one
// entry per rotor. Mix does not return it: Mix reports that case by
// writing nothing and returning 0.
var ErrCapacity = errors.New("mixer: output buffer too small")

// controlledAxisThreshold is the minimum summed squared rotor scale
// along an axis for that axis to be considered controllable.
const controlledAxisThreshold = 1e-6

// Multirotor6DoFMixer is the capability set described in spec.md §4.7:
// mix, groups-required, and the simple setters, implemented by one
// concrete multirotor-6dof value. No inheritance, just composition of
// the package's pure functions over an owned geometry and state.
type Multirotor6DoFMixer struct {
	reader ControlReader
	scales AxisScales

	rotors []RotorDescriptor
	count  int

	outMin float32
	outMax float32

	deltaOutMax    float32
	thrustFactor   float32
	controlledAxes [6]bool

	outputsPrev      [MaxRotors]float32
	saturationStatus uint16
}

// New constructs a mixer for the named geometry. idleSpeed must be in
// [0, 1] and becomes both outMin and the seed value for outputsPrev
// (filled element-wise, per spec.md §9 open question 1 — never a
// byte-wise fill of the shifted representation).
func New(geometryKey string, scales AxisScales, idleSpeed float32, reader ControlReader) (*Multirotor6DoFMixer, error) {
	geom, ok := FindGeometry(geometryKey)
	if !ok {
		return nil, ErrUnknownGeometry
	}

	m := &Multirotor6DoFMixer{
		reader: reader,
		scales: scales,
		rotors: geom.Rotors,
		count:  len(geom.Rotors),
		outMin: idleSpeed,
		outMax: 1.0,
	}

	for i := 0; i < m.count; i++ {
		m.outputsPrev[i] = idleSpeed
	}

	for j := 0; j < 6; j++ {
		var norm2 float32
		for i := 0; i < m.count; i++ {
			s := m.rotors[i].Scale[j]
			norm2 += s * s
		}
		m.controlledAxes[j] = norm2 > controlledAxisThreshold
	}

	return m, nil
}

// Count returns the rotor count of the mixer's geometry.
func (m *Multirotor6DoFMixer) Count() int { return m.count }

// Mix runs the full pipeline — command assembly, feasibility
// projection, output transform, slew limiting, and saturation
// reporting — and writes one output per rotor into out. It returns the
// number of rotors written, or 0 if out is too small to hold them all.
func (m *Multirotor6DoFMixer) Mix(out []float32) int {
	if len(out) < m.count {
		return 0
	}

	raw := assembleCommand(m.reader, m.scales)

	desired := raw
	for j := 0; j < 6; j++ {
		if !m.controlledAxes[j] {
			desired[j] = 0
		}
	}

	command := clipCommand(desired, m.rotors, m.outMin, m.outMax)

	status := baseSaturationStatus(m.controlledAxes)

	for i := 0; i < m.count; i++ {
		output := transformOutput(command, m.rotors[i], m.thrustFactor, m.outMin, m.outMax)

		clippingHigh := output > 0.99
		clippingLow := output < m.outMin+0.01

		limited, slewHigh, slewLow := slewLimit(output, m.outputsPrev[i], m.deltaOutMax)
		output = limited
		clippingHigh = clippingHigh || slewHigh
		clippingLow = clippingLow || slewLow

		m.outputsPrev[i] = output
		out[i] = output

		status = updateSaturationStatus(status, m.rotors[i], clippingHigh, clippingLow)
	}

	status |= statusValid
	m.saturationStatus = status

	// Callers must re-arm slew limiting every tick.
	m.deltaOutMax = 0

	return m.count
}

// GroupsRequired ORs in the bit for control group 0, the only group
// this mixer reads from.
func (m *Multirotor6DoFMixer) GroupsRequired(groups *uint32) {
	*groups |= 1 << 0
}

// SaturationStatus returns the packed status word from the most recent
// Mix call. Safe to read from another thread only if the reader
// tolerates a torn 16-bit value or uses a relaxed atomic load; the
// producer tick writes it once per tick with no interior lock.
func (m *Multirotor6DoFMixer) SaturationStatus() uint16 {
	return m.saturationStatus
}

// SetThrustFactor sets the quadratic PWM-to-thrust model coefficient,
// expected in [0, 1).
func (m *Multirotor6DoFMixer) SetThrustFactor(f float32) {
	m.thrustFactor = f
}

// SetDeltaOutMax arms per-tick slew-rate limiting for the next Mix
// call only; Mix resets it to 0 once consumed.
func (m *Multirotor6DoFMixer) SetDeltaOutMax(d float32) {
	m.deltaOutMax = d
}

// ControlledAxes reports which of the six command axes this geometry
// has authority over.
func (m *Multirotor6DoFMixer) ControlledAxes() [6]bool {
	return m.controlledAxes
}
