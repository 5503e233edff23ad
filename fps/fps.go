// Package fps estimates frame rates for capture/display loops and can
// stamp the value onto a frame.
package fps

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"
)

// Overlay controls how the FPS value is drawn onto a frame.
type Overlay struct {
	Position  image.Point
	Color     color.RGBA
	Scale     float64
	Thickness int
}

// DefaultOverlay returns the usual top-left blue stamp.
func DefaultOverlay() Overlay {
	return Overlay{
		Position:  image.Pt(20, 50),
		Color:     color.RGBA{B: 255},
		Scale:     3,
		Thickness: 3,
	}
}

// Meter reports the instantaneous frame rate, derived only from the
// interval since the previous Update call. No history is kept.
type Meter struct {
	prev time.Time
	now  func() time.Time
}

func NewMeter() *Meter {
	m := &Meter{now: time.Now}
	m.prev = m.now()
	return m
}

// Update returns 1/elapsed since the previous call and resets the
// reference time. Two calls within clock resolution yield 0.
func (m *Meter) Update() float64 {
	now := m.now()
	elapsed := now.Sub(m.prev)
	m.prev = now
	if elapsed <= 0 {
		return 0
	}
	return 1 / elapsed.Seconds()
}

// UpdateDraw updates the meter and stamps "FPS: <n>" onto img.
func (m *Meter) UpdateDraw(img *gocv.Mat, style Overlay) float64 {
	fps := m.Update()
	gocv.PutText(img,
		fmt.Sprintf("FPS: %d", int(fps)),
		style.Position, gocv.FontHersheyPlain,
		style.Scale, style.Color, style.Thickness,
	)
	return fps
}
