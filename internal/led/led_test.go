package led

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePin struct {
	high bool
}

func (f *fakePin) High() { f.high = true }
func (f *fakePin) Low()  { f.high = false }

func TestOffHoldsLow(t *testing.T) {
	pin := &fakePin{high: true}
	s := New(pin)
	s.Update()
	require.False(t, pin.high)
}

func TestOnHoldsHigh(t *testing.T) {
	pin := &fakePin{}
	s := New(pin)
	s.SetPattern(On)
	s.Update()
	require.True(t, pin.high)
}

func TestSlowFlashToggles(t *testing.T) {
	pin := &fakePin{}
	s := New(pin)
	s.SetPattern(SlowFlash)

	t0 := time.Now()
	s.now = func() time.Time { return t0 }
	s.lastToggle = t0
	s.Update()
	require.False(t, pin.high, "should not toggle before the period elapses")

	s.now = func() time.Time { return t0.Add(300 * time.Millisecond) }
	s.Update()
	require.True(t, pin.high, "should toggle once the period elapses")
}
