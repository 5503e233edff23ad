// Package stats samples the current process's resource usage so demos
// can overlay it next to the frame rate.
package stats

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"gocv.io/x/gocv"
)

// Snapshot is one resource sample.
type Snapshot struct {
	CPUPercent float64
	RSS        uint64
	When       time.Time
}

// ProcMonitor samples CPU and memory usage of this process.
type ProcMonitor struct {
	proc *process.Process
}

func NewProcMonitor() (*ProcMonitor, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to open own process: %w", err)
	}
	return &ProcMonitor{proc: proc}, nil
}

// Sample reads the current CPU percentage and resident set size. CPU
// is measured since the previous Sample call, so the first reading
// reports 0.
func (m *ProcMonitor) Sample(ctx context.Context) (Snapshot, error) {
	cpu, err := m.proc.PercentWithContext(ctx, 0)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read cpu percent: %w", err)
	}
	mem, err := m.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read memory info: %w", err)
	}
	return Snapshot{
		CPUPercent: cpu,
		RSS:        mem.RSS,
		When:       time.Now(),
	}, nil
}

// DrawOn stamps the snapshot onto img at pos.
func DrawOn(img *gocv.Mat, snap Snapshot, pos image.Point) {
	gocv.PutText(img,
		fmt.Sprintf("CPU %.1f%%  RSS %dMiB", snap.CPUPercent, snap.RSS>>20),
		pos, gocv.FontHersheyPlain,
		2, color.RGBA{G: 255}, 2,
	)
}
