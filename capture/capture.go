// Package capture provides frame sources for the toolkit: video
// devices/files through gocv and display capture through the portable
// screenshot API. Both deliver BGR Mats ready for processing.
package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"gocv.io/x/gocv"

	"github.com/Miuzarte/GoCVKit/logging"
)

var log = logging.New("capture")

// Video wraps a gocv video capture opened from a device index or a
// file/URL.
type Video struct {
	cap *gocv.VideoCapture
}

// OpenVideo opens a capture source. Device indices and paths/URLs are
// both accepted.
func OpenVideo[T int | string](source T) (*Video, error) {
	cap, err := gocv.OpenVideoCapture(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open video source %v: %w", source, err)
	}
	return &Video{cap: cap}, nil
}

// Read grabs the next frame into dst.
func (v *Video) Read(dst *gocv.Mat) error {
	if !v.cap.Read(dst) {
		return fmt.Errorf("failed to read frame")
	}
	if dst.Empty() {
		return fmt.Errorf("read an empty frame")
	}
	return nil
}

// Size reports the source frame dimensions.
func (v *Video) Size() (width, height int) {
	return int(v.cap.Get(gocv.VideoCaptureFrameWidth)),
		int(v.cap.Get(gocv.VideoCaptureFrameHeight))
}

func (v *Video) Close() error {
	return v.cap.Close()
}

// Screen captures one display.
type Screen struct {
	FramesElapsed int

	displayIndex int
	bounds       image.Rectangle
}

// NewScreen validates the display index against the active displays
// and returns a capturer for it.
func NewScreen(displayIndex int) (*Screen, error) {
	numDisplays := screenshot.NumActiveDisplays()
	if numDisplays <= 0 {
		return nil, fmt.Errorf("no active displays")
	}
	log.Debug().Int("numDisplays", numDisplays).Msg("enumerated displays")
	if displayIndex < 0 || displayIndex >= numDisplays {
		return nil, fmt.Errorf("display index [%d] out of bounds: %d", displayIndex, numDisplays)
	}

	return &Screen{
		displayIndex: displayIndex,
		bounds:       screenshot.GetDisplayBounds(displayIndex),
	}, nil
}

func (s *Screen) Bounds() image.Rectangle {
	return s.bounds
}

// Read captures the display into dst as a BGR Mat.
func (s *Screen) Read(dst *gocv.Mat) error {
	img, err := screenshot.CaptureRect(s.bounds)
	if err != nil {
		return fmt.Errorf("failed to capture display %d: %w", s.displayIndex, err)
	}
	s.FramesElapsed++
	return ImageToMat(img, dst)
}
