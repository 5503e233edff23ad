// Package timing provides wall-clock helpers for comparing the cost of
// code sections: a sample-collecting stopwatch, a scoped region timer
// and a function wrapper that reports call durations.
package timing

import (
	"errors"
	"time"
)

// ErrNoSamples is returned by Avg and Total before any Stop call.
var ErrNoSamples = errors.New("timing: no samples recorded")

// Stopwatch collects elapsed-time samples. Start is implicit on
// construction; every Stop appends one sample.
type Stopwatch struct {
	start   time.Time
	samples []time.Duration
	now     func() time.Time
}

func NewStopwatch() *Stopwatch {
	sw := &Stopwatch{now: time.Now}
	sw.Start()
	return sw
}

// Start resets the reference time. Samples already collected are kept.
func (sw *Stopwatch) Start() {
	sw.start = sw.now()
}

// Stop appends the time elapsed since the last Start and returns the
// new sample. The reference time is left alone, so back-to-back Stops
// measure from the same Start.
func (sw *Stopwatch) Stop() time.Duration {
	d := sw.now().Sub(sw.start)
	sw.samples = append(sw.samples, d)
	return d
}

// Len returns the number of samples collected so far.
func (sw *Stopwatch) Len() int { return len(sw.samples) }

// Total returns the sum of all samples. It fails with ErrNoSamples
// when Stop was never called.
func (sw *Stopwatch) Total() (time.Duration, error) {
	if len(sw.samples) == 0 {
		return 0, ErrNoSamples
	}
	var total time.Duration
	for _, d := range sw.samples {
		total += d
	}
	return total, nil
}

// Avg returns the arithmetic mean of all samples. It fails with
// ErrNoSamples when Stop was never called.
func (sw *Stopwatch) Avg() (time.Duration, error) {
	total, err := sw.Total()
	if err != nil {
		return 0, err
	}
	return total / time.Duration(len(sw.samples)), nil
}

// Cumsum returns the running partial sums of the samples, aligned with
// sample order: Cumsum()[i] is the sum of samples 0..i.
func (sw *Stopwatch) Cumsum() []time.Duration {
	sums := make([]time.Duration, len(sw.samples))
	var acc time.Duration
	for i, d := range sw.samples {
		acc += d
		sums[i] = acc
	}
	return sums
}
