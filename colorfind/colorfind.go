// Package colorfind derives binary masks from images using adjustable
// HSV thresholds, with named presets and an optional trackbar panel for
// tuning the bounds at runtime.
package colorfind

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"github.com/Miuzarte/GoCVKit/logging"
)

var log = logging.New("colorfind")

var (
	// ErrNoTrackbars is returned when trackbar values are requested
	// from a detector constructed without a trackbar panel.
	ErrNoTrackbars = errors.New("colorfind: trackbars not initialized")
	// ErrNoColorSpec is returned by Update when no color spec is given
	// and the detector has no trackbar panel to fall back on.
	ErrNoColorSpec = errors.New("colorfind: no color spec and trackbars disabled")
)

// Hue is limited to [0,179] and saturation/value to [0,255],
// matching the 8-bit HSV convention of the underlying library.
const (
	HueMax = 179
	SatMax = 255
	ValMax = 255
)

// HSV is one hue-saturation-value triple.
type HSV struct {
	H int `json:"h"`
	S int `json:"s"`
	V int `json:"v"`
}

func (c HSV) scalar() gocv.Scalar {
	return gocv.NewScalar(float64(c.H), float64(c.S), float64(c.V), 0)
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Bounds is an inclusive lower/upper HSV range.
type Bounds struct {
	Lower HSV `json:"lower"`
	Upper HSV `json:"upper"`
}

// Clamp limits each channel to its legal range.
func (b Bounds) Clamp() Bounds {
	b.Lower = HSV{clamp(b.Lower.H, HueMax), clamp(b.Lower.S, SatMax), clamp(b.Lower.V, ValMax)}
	b.Upper = HSV{clamp(b.Upper.H, HueMax), clamp(b.Upper.S, SatMax), clamp(b.Upper.V, ValMax)}
	return b
}

// ColorSpec selects the HSV range for Detector.Update: explicit Bounds,
// a Preset name, or a PresetStore lookup.
type ColorSpec interface {
	bounds() (Bounds, error)
}

func (b Bounds) bounds() (Bounds, error) { return b, nil }

// ApplyMask converts img (BGR) to HSV, thresholds every channel against
// the inclusive bounds into a binary {0,255} mask, and computes the
// masked color image as img AND img under the mask. The caller owns
// both returned Mats and must Close them.
func ApplyMask(img gocv.Mat, b Bounds) (masked, mask gocv.Mat) {
	b = b.Clamp()

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	mask = gocv.NewMat()
	gocv.InRangeWithScalar(hsv, b.Lower.scalar(), b.Upper.scalar(), &mask)

	masked = gocv.NewMat()
	gocv.BitwiseAndWithMask(img, img, &masked, mask)
	return masked, mask
}

// ProtectRegion zeroes rect in the mask in place, excluding that area
// from detection. The rectangle is clipped to the mask extent; a fully
// outside or empty rectangle leaves the mask unchanged.
func ProtectRegion(mask *gocv.Mat, rect image.Rectangle) {
	rect = rect.Canon().Intersect(image.Rect(0, 0, mask.Cols(), mask.Rows()))
	if rect.Empty() {
		return
	}
	region := mask.Region(rect)
	defer region.Close()
	region.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// Detector finds color ranges in images. Bounds either come from an
// on-screen trackbar panel (fixed at construction) or are supplied per
// Update call.
type Detector struct {
	window    *gocv.Window
	trackbars bool

	hueMin, hueMax int
	satMin, satMax int
	valMin, valMax int
}

// NewDetector returns a detector whose bounds are supplied per call.
func NewDetector() *Detector {
	return &Detector{}
}

// NewDetectorWithTrackbars returns a detector driven by a 640x240
// window with six range trackbars, defaulted to the widest legal
// range. Must run on the main thread like any highgui call.
func NewDetectorWithTrackbars(name string) *Detector {
	d := &Detector{
		trackbars: true,
		hueMax:    HueMax,
		satMax:    SatMax,
		valMax:    ValMax,
	}
	d.window = gocv.NewWindow(name)
	d.window.ResizeWindow(640, 240)
	d.window.CreateTrackbarWithValue("Hue Min", &d.hueMin, HueMax)
	d.window.CreateTrackbarWithValue("Hue Max", &d.hueMax, HueMax)
	d.window.CreateTrackbarWithValue("Sat Min", &d.satMin, SatMax)
	d.window.CreateTrackbarWithValue("Sat Max", &d.satMax, SatMax)
	d.window.CreateTrackbarWithValue("Val Min", &d.valMin, ValMax)
	d.window.CreateTrackbarWithValue("Val Max", &d.valMax, ValMax)
	return d
}

// TrackbarBounds reads the current trackbar positions.
func (d *Detector) TrackbarBounds() (Bounds, error) {
	if !d.trackbars {
		return Bounds{}, ErrNoTrackbars
	}
	return Bounds{
		Lower: HSV{d.hueMin, d.satMin, d.valMin},
		Upper: HSV{d.hueMax, d.satMax, d.valMax},
	}, nil
}

// Update masks img with the bounds selected by the detector mode: a
// trackbar detector ignores spec and reads the panel, otherwise spec
// supplies the bounds. The caller owns the returned Mats.
func (d *Detector) Update(img gocv.Mat, spec ColorSpec) (masked, mask gocv.Mat, err error) {
	var b Bounds
	switch {
	case d.trackbars:
		b, err = d.TrackbarBounds()
	case spec == nil:
		err = ErrNoColorSpec
	default:
		b, err = spec.bounds()
	}
	if err != nil {
		return gocv.Mat{}, gocv.Mat{}, err
	}
	masked, mask = ApplyMask(img, b)
	return masked, mask, nil
}

// Close releases the trackbar window, if any.
func (d *Detector) Close() error {
	if d.window == nil {
		return nil
	}
	return d.window.Close()
}
