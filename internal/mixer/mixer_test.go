package mixer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedReader is a ControlReader that always returns the same six
// values, mirroring WingFC's test-only mockUART pattern for simple
// deterministic inputs.
type fixedReader struct {
	values [6]float32
}

func (f fixedReader) ControlValue(group uint8, index ControlIndex) float32 {
	return f.values[index]
}

func newReader(roll, pitch, yaw, x, y, z float32) fixedReader {
	return fixedReader{values: [6]float32{roll, pitch, yaw, x, y, z}}
}

func TestNewUnknownGeometry(t *testing.T) {
	_, err := New("does_not_exist", AxisScales{}, 0.1, newReader(0, 0, 0, 0, 0, 0))
	require.ErrorIs(t, err, ErrUnknownGeometry)
}

// Scenario A — neutral hover, hex geometry.
func TestScenarioA_NeutralHoverHex(t *testing.T) {
	scales := AxisScales{Roll: 1, Pitch: 1, Yaw: 1, X: 1, Y: 1, Z: 1}
	reader := newReader(0, 0, 0, 0, 0, 0.5)
	m, err := New("hex_+", scales, 0.1, reader)
	require.NoError(t, err)

	out := make([]float32, m.Count())
	n := m.Mix(out)
	require.Equal(t, m.Count(), n)

	for i, v := range out {
		require.InDelta(t, out[0], v, 1e-5, "rotor %d should match the others on a symmetric hex", i)
		require.Greater(t, v, m.outMin)
		require.Less(t, v, m.outMax)
	}

	status := m.SaturationStatus()
	require.NotZero(t, status&statusValid, "valid bit must be set")
	require.Zero(t, status&statusZThrustPos, "neutral hover should not report z-thrust saturation")
}

// Scenario C — uncontrolled x-axis leaves outputs unchanged and clears
// x_thrust_valid.
func TestScenarioC_UncontrolledXAxis(t *testing.T) {
	scales := AxisScales{Roll: 1, Pitch: 1, Yaw: 1, X: 1, Y: 1, Z: 1}

	zeroXReader := newReader(0, 0, 0, 0, 0, 0)
	m, err := New("quad_x", scales, 0.1, zeroXReader)
	require.NoError(t, err)
	require.False(t, m.ControlledAxes()[3], "quad_x has no x-thrust authority")

	baseline := make([]float32, m.Count())
	m.Mix(baseline)

	commandedXReader := newReader(0, 0, 0, 1, 0, 0)
	m2, err := New("quad_x", scales, 0.1, commandedXReader)
	require.NoError(t, err)

	withX := make([]float32, m2.Count())
	m2.Mix(withX)

	require.Equal(t, baseline, withX, "uncontrolled axis must not change outputs")
	require.Zero(t, m2.SaturationStatus()&statusXYZValid)
}

// Scenario B — saturation on yaw. A geometry whose yaw authority is
// weak relative to the demanded z-thrust baseline still saturates at
// least one rotor, and z-thrust is delivered in full since it belongs
// to the priority group handed to the projector before yaw.
func TestScenarioB_YawSaturation(t *testing.T) {
	geom, ok := FindGeometry("quad_+")
	require.True(t, ok)

	desired := Command{0, 0, 1.0, 0, 0, 0.5}
	got := clipCommand(desired, geom.Rotors, 0, 1.0)
	require.InDelta(t, 0.5, got[5], 1e-5, "z-thrust must be delivered ahead of yaw priority")

	scales := AxisScales{Roll: 1, Pitch: 1, Yaw: 1, X: 1, Y: 1, Z: 1}
	reader := newReader(0, 0, 1.0, 0, 0, 0.5)
	m, err := New("quad_+", scales, 0.0, reader)
	require.NoError(t, err)

	out := make([]float32, m.Count())
	m.Mix(out)

	atOutMax := false
	for _, v := range out {
		if v > 0.99 {
			atOutMax = true
		}
	}
	require.True(t, atOutMax, "expected at least one rotor driven to out_max under yaw saturation")

	status := m.SaturationStatus()
	require.NotZero(t, status&(statusYawPos|statusYawNeg), "expected a yaw saturation flag")
}

// Scenario D — slew limiting. Every output is bounded to prev + delta,
// and since the clamp itself is what triggers the clip, the directional
// flags per rotor scale sign are set exactly as for any other clip.
func TestScenarioD_SlewLimit(t *testing.T) {
	geom, ok := FindGeometry("quad_+")
	require.True(t, ok)

	scales := AxisScales{Roll: 1, Pitch: 1, Yaw: 1, X: 1, Y: 1, Z: 1}
	reader := newReader(0, 0, 0, 0, 0, 1.0)
	m, err := New("quad_+", scales, 0.1, reader)
	require.NoError(t, err)

	for i := 0; i < m.Count(); i++ {
		m.outputsPrev[i] = 0.5
	}

	m.SetDeltaOutMax(0.1)
	out := make([]float32, m.Count())
	m.Mix(out)

	for i, v := range out {
		require.InDelta(t, 0.6, v, 1e-5, "rotor %d should be slew-limited to 0.6", i)
	}

	status := m.SaturationStatus()
	for i, r := range geom.Rotors {
		for j, sign := range r.Scale {
			pos, neg := axisPosNeg[j][0], axisPosNeg[j][1]
			switch {
			case sign > 0:
				require.NotZero(t, status&pos, "rotor %d axis %d: positive scale should set its pos flag under clip", i, j)
			case sign < 0:
				require.NotZero(t, status&neg, "rotor %d axis %d: negative scale should set its neg flag under clip", i, j)
			}
		}
	}
	require.Zero(t, status&(statusXThrustPos|statusXThrustNeg|statusYThrustPos|statusYThrustNeg),
		"quad_+ has no lateral-thrust authority; those flags must stay clear")
}

// Scenario E — quadratic thrust inversion.
func TestScenarioE_ThrustFactor(t *testing.T) {
	scales := AxisScales{Z: 1}
	reader := newReader(0, 0, 0, 0, 0, 1.0)
	m, err := New("hex_+", scales, 0.0, reader)
	require.NoError(t, err)
	m.SetThrustFactor(0.5)

	// Build a single synthetic rotor matching the scenario exactly,
	// bypassing the compiled-in geometry's multi-rotor contention.
	rotor := RotorDescriptor{Scale: [6]float32{0, 0, 0, 0, 0, 1}}
	command := Command{0, 0, 0, 0, 0, 1.0}
	o := transformOutput(command, rotor, 0.5, 0.0, 1.0)
	require.InDelta(t, 1.0, o, 1e-6)
}

// Re-arm: delta_out_max resets to 0 after every Mix call.
func TestSlewReArm(t *testing.T) {
	scales := AxisScales{Z: 1}
	reader := newReader(0, 0, 0, 0, 0, 1.0)
	m, err := New("quad_+", scales, 0.1, reader)
	require.NoError(t, err)

	m.SetDeltaOutMax(0.05)
	out := make([]float32, m.Count())
	m.Mix(out)
	require.Zero(t, m.deltaOutMax)

	// Second call with no re-arm must not slew-limit.
	m.Mix(out)
	for _, v := range out {
		require.InDelta(t, 1.0, v, 1e-5)
	}
}

func TestMixInsufficientCapacity(t *testing.T) {
	scales := AxisScales{Z: 1}
	reader := newReader(0, 0, 0, 0, 0, 0.5)
	m, err := New("hex_+", scales, 0.1, reader)
	require.NoError(t, err)

	out := make([]float32, m.Count()-1)
	n := m.Mix(out)
	require.Zero(t, n)
}

func TestIdleSeedIsElementWise(t *testing.T) {
	scales := AxisScales{Z: 1}
	reader := newReader(0, 0, 0, 0, 0, 0)
	m, err := New("hex_+", scales, 0.2, reader)
	require.NoError(t, err)

	for i := 0; i < m.Count(); i++ {
		require.Equal(t, float32(0.2), m.outputsPrev[i])
	}
}
