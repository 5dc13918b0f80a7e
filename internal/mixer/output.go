package mixer

import "math"

// invertThrust solves o = (1-f)*p + f*p^2 for p, the quadratic
// PWM-to-thrust model's inverse. The sqrt argument clamps o to
// max(o, 0); the outside offset -(1-f)/(2f) is retained unclamped, so
// commanded negative thrust maps to exactly 0 (see open question 2 in
// DESIGN.md on this being intentional, not a bug).
func invertThrust(o, f float32) float32 {
	if f <= 0 {
		return o
	}
	clamped := o
	if clamped < 0 {
		clamped = 0
	}
	offset := -(1 - f) / (2 * f)
	return offset + float32(math.Sqrt(float64((1-f)*(1-f)/(4*f*f)+clamped/f)))
}

func clampRange(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// transformOutput maps a projected command through the rotor's scale,
// applies the quadratic thrust inversion if enabled, and clamps to
// [outMin, outMax].
func transformOutput(command Command, rotor RotorDescriptor, thrustFactor, outMin, outMax float32) float32 {
	o := command.Dot(rotor.Scale)
	if thrustFactor > 0 {
		o = invertThrust(o, thrustFactor)
	}
	return clampRange(o, outMin, outMax)
}
