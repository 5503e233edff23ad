package timing

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

var (
	outMu sync.Mutex
	out   io.Writer = os.Stdout
)

// SetOutput redirects where Region and Timed reports are written.
func SetOutput(w io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	out = w
}

func report(format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, format, args...)
}

// Region measures a scoped section of code:
//
//	defer timing.Begin("inference").End()
//
// End stops the clock and prints the elapsed time tagged with the
// description, exactly once.
type Region struct {
	desc  string
	sw    *Stopwatch
	ended bool
}

// Begin starts a region. An empty description reports as "Done".
func Begin(desc string) *Region {
	if desc == "" {
		desc = "Done"
	}
	return &Region{desc: desc, sw: NewStopwatch()}
}

// End stops the region and prints "<desc>: <seconds> sec" with seven
// decimal places. Further calls are no-ops.
func (r *Region) End() {
	if r.ended {
		return
	}
	r.ended = true
	report("%s: %.7f sec\n", r.desc, r.sw.Stop().Seconds())
}

// Timed wraps fn so every call prints the function's name on entry and
// its name plus elapsed wall-clock time, to the given number of decimal
// places, on exit. The wrapped result is returned unchanged and panics
// propagate as they would from fn itself.
func Timed[R any](decimals int, fn func() R) func() R {
	name := funcName(fn)
	return func() R {
		report("%s\n", name)
		sw := NewStopwatch()
		defer func() {
			report("%s delta time (s) = %.*f\n", name, decimals, sw.Stop().Seconds())
		}()
		return fn()
	}
}

func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "func"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
