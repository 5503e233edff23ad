package timing

import (
	"bytes"
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// scheduleClock returns successive instants from a schedule of offsets.
func scheduleClock(base time.Time, offsets ...time.Duration) func() time.Time {
	i := 0
	return func() time.Time {
		off := offsets[i]
		if i < len(offsets)-1 {
			i++
		}
		return base.Add(off)
	}
}

func TestStopwatchSamples(t *testing.T) {
	base := time.Unix(0, 0)
	sw := &Stopwatch{now: scheduleClock(base,
		0,                    // initial Start
		10*time.Millisecond,  // Stop -> 10ms
		10*time.Millisecond,  // Start
		40*time.Millisecond,  // Stop -> 30ms
		40*time.Millisecond,  // Start
		100*time.Millisecond, // Stop -> 60ms
	)}
	sw.Start()

	for i := 0; i < 3; i++ {
		sw.Stop()
		sw.Start()
	}

	if sw.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sw.Len())
	}

	total, err := sw.Total()
	if err != nil {
		t.Fatalf("Total() error: %v", err)
	}
	if total != 100*time.Millisecond {
		t.Errorf("Total() = %v, want 100ms", total)
	}

	avg, err := sw.Avg()
	if err != nil {
		t.Fatalf("Avg() error: %v", err)
	}
	if want := total / 3; avg != want {
		t.Errorf("Avg() = %v, want %v", avg, want)
	}

	want := []time.Duration{
		10 * time.Millisecond,
		40 * time.Millisecond,
		100 * time.Millisecond,
	}
	if diff := cmp.Diff(want, sw.Cumsum()); diff != "" {
		t.Errorf("Cumsum() mismatch (-want +got):\n%s", diff)
	}

	cumsum := sw.Cumsum()
	if cumsum[len(cumsum)-1] != total {
		t.Errorf("last cumsum %v != total %v", cumsum[len(cumsum)-1], total)
	}
}

func TestStopwatchNoSamples(t *testing.T) {
	sw := NewStopwatch()

	if _, err := sw.Avg(); !errors.Is(err, ErrNoSamples) {
		t.Errorf("Avg() error = %v, want ErrNoSamples", err)
	}
	if _, err := sw.Total(); !errors.Is(err, ErrNoSamples) {
		t.Errorf("Total() error = %v, want ErrNoSamples", err)
	}
	if got := sw.Cumsum(); len(got) != 0 {
		t.Errorf("Cumsum() = %v, want empty", got)
	}
}

func TestRegionReport(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	func() {
		defer Begin("inference").End()
		time.Sleep(time.Millisecond)
	}()

	got := buf.String()
	re := regexp.MustCompile(`^inference: \d+\.\d{7} sec\n$`)
	if !re.MatchString(got) {
		t.Errorf("report %q does not match %q", got, re)
	}
}

func TestRegionDefaultDescription(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Begin("").End()

	if !strings.HasPrefix(buf.String(), "Done: ") {
		t.Errorf("report %q, want prefix %q", buf.String(), "Done: ")
	}
}

func TestRegionEndOnce(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	r := Begin("once")
	r.End()
	r.End()

	if n := strings.Count(buf.String(), "once:"); n != 1 {
		t.Errorf("End() reported %d times, want 1", n)
	}
}

func TestRegionReportsOnPanic(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	func() {
		defer func() { _ = recover() }()
		defer Begin("crashed").End()
		panic("boom")
	}()

	if !strings.Contains(buf.String(), "crashed:") {
		t.Errorf("no report after panic, output %q", buf.String())
	}
}

func TestTimed(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	wrapped := Timed(5, func() int {
		time.Sleep(time.Millisecond)
		return 42
	})

	if got := wrapped(); got != 42 {
		t.Fatalf("wrapped() = %d, want 42", got)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d report lines, want 2: %q", len(lines), buf.String())
	}
	// entry line is the bare function name, exit line carries the duration
	if strings.Contains(lines[0], "delta time") {
		t.Errorf("entry line %q should not carry a duration", lines[0])
	}
	re := regexp.MustCompile(`delta time \(s\) = \d+\.\d{5}$`)
	if !re.MatchString(lines[1]) {
		t.Errorf("exit line %q does not match %q", lines[1], re)
	}
}
