package main

import "machine"

// rotorPWM bundles a PWM peripheral, channel, and the fixed period (in
// nanoseconds) used to convert a pulse width in microseconds into a
// duty-cycle value — the same conversion WingFC's helpers.go does for
// two servos and one ESC, generalized here to MaxRotors outputs.
type rotorPWM struct {
	pwm      *machine.PWM
	channel  uint8
	periodNs uint64
}

// setPulse sets the duty cycle for a pulse width given in microseconds.
func (r rotorPWM) setPulse(pulseUS uint32) {
	top := r.pwm.Top()
	duty := uint32(uint64(pulseUS) * 1000 * uint64(top) / r.periodNs)
	r.pwm.Set(r.channel, duty)
}

// outputToPulse converts a mixer output in [idleSpeed, 1.0] into a
// pulse width in microseconds in [minPulseWidthUS, maxPulseWidthUS].
func outputToPulse(output float32) uint32 {
	pulse := mapRange(output, float32(idleSpeed), 1.0, float32(minPulseWidthUS), float32(maxPulseWidthUS))
	return uint32(constrain(pulse, float32(minPulseWidthUS), float32(maxPulseWidthUS)))
}
