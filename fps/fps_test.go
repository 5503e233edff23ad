package fps

import (
	"math"
	"testing"
	"time"
)

// fakeClock steps through a fixed schedule of instants.
type fakeClock struct {
	times []time.Time
	i     int
}

func (c *fakeClock) now() time.Time {
	t := c.times[c.i]
	if c.i < len(c.times)-1 {
		c.i++
	}
	return t
}

func TestMeterUpdate(t *testing.T) {
	base := time.Unix(1000, 0)
	clock := &fakeClock{times: []time.Time{
		base,
		base.Add(100 * time.Millisecond),
		base.Add(150 * time.Millisecond),
	}}
	m := &Meter{now: clock.now}
	m.prev = m.now()

	if got := m.Update(); math.Abs(got-10) > 1e-9 {
		t.Errorf("Update() after 100ms = %v, want 10", got)
	}
	if got := m.Update(); math.Abs(got-20) > 1e-9 {
		t.Errorf("Update() after 50ms = %v, want 20", got)
	}
}

func TestMeterZeroInterval(t *testing.T) {
	base := time.Unix(1000, 0)
	clock := &fakeClock{times: []time.Time{base, base}}
	m := &Meter{now: clock.now}
	m.prev = m.now()

	if got := m.Update(); got != 0 {
		t.Errorf("Update() within clock resolution = %v, want 0", got)
	}
}

func TestMeterWallClock(t *testing.T) {
	if testing.Short() {
		t.Skip("sleep-based")
	}
	m := NewMeter()
	const d = 50 * time.Millisecond
	time.Sleep(d)
	got := m.Update()
	want := 1 / d.Seconds()
	// generous tolerance, sleep overshoots
	if got <= 0 || got > want*1.5 {
		t.Errorf("Update() after sleeping %v = %v, want about %v", d, got, want)
	}
}

func TestCounterWindow(t *testing.T) {
	base := time.Unix(2000, 0)
	times := make([]time.Time, 0, 22)
	for i := 0; i < 22; i++ {
		times = append(times, base.Add(time.Duration(i)*100*time.Millisecond))
	}
	clock := &fakeClock{times: times}

	fc := NewCounter(time.Second)
	fc.now = clock.now

	var last float64
	for i := 0; i < 22; i++ {
		last = fc.Count()
	}
	// 10 frames per second of fake time once the first window closed
	if math.Abs(last-10) > 1 {
		t.Errorf("Count() = %v, want about 10", last)
	}
}
