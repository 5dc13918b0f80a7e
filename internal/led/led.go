// Package led drives a single status LED through the firmware's flight
// states, adapted from WingFC's pattern state machine.
package led

import "time"

// Pattern names the supported blink patterns.
type Pattern int

const (
	Off Pattern = iota
	On
	SlowFlash
	FastFlash
	Alternate
)

// Pin is the minimal interface this package needs from a GPIO pin,
// matching machine.Pin's High/Low methods without importing "machine"
// (so this package stays host-testable).
type Pin interface {
	High()
	Low()
}

// State drives one LED through a Pattern, toggling on a schedule.
type State struct {
	pin        Pin
	pattern    Pattern
	isOn       bool
	lastToggle time.Time
	now        func() time.Time
}

// New creates a State for the given pin, initially Off.
func New(pin Pin) *State {
	return &State{pin: pin, pattern: Off, now: time.Now, lastToggle: time.Now()}
}

// SetPattern changes the active blink pattern.
func (s *State) SetPattern(p Pattern) {
	s.pattern = p
}

func (s *State) period() time.Duration {
	switch s.pattern {
	case SlowFlash:
		return 250 * time.Millisecond
	case FastFlash:
		return 50 * time.Millisecond
	case Alternate:
		return 500 * time.Millisecond
	default:
		return 0
	}
}

// Update advances the pattern state machine by one tick. Call this
// from the main loop at whatever rate the caller drives LEDs at.
func (s *State) Update() {
	switch s.pattern {
	case Off:
		s.pin.Low()
		s.isOn = false
		return
	case On:
		s.pin.High()
		s.isOn = true
		return
	}

	now := s.now()
	if now.Sub(s.lastToggle) < s.period() {
		return
	}
	if s.isOn {
		s.pin.Low()
	} else {
		s.pin.High()
	}
	s.isOn = !s.isOn
	s.lastToggle = now
}
