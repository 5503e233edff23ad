package capture

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// ImageToMat converts an image.Image into a BGR Mat. RGBA images take
// a fast path over the raw pixel buffer.
func ImageToMat(img image.Image, dst *gocv.Mat) error {
	bounds := img.Bounds()
	x := bounds.Dx()
	y := bounds.Dy()

	if m, ok := img.(*image.RGBA); ok && img.ColorModel() == color.RGBAModel {
		src, err := gocv.NewMatFromBytes(y, x, gocv.MatTypeCV8UC4, m.Pix)
		if err != nil {
			return err
		}
		defer src.Close()
		gocv.CvtColor(src, dst, gocv.ColorRGBAToBGR)
		return nil
	}

	data := make([]byte, 0, x*y*3)
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			r, g, b, _ := img.At(i, j).RGBA()
			data = append(data, byte(b>>8), byte(g>>8), byte(r>>8))
		}
	}
	src, err := gocv.NewMatFromBytes(y, x, gocv.MatTypeCV8UC3, data)
	if err != nil {
		return err
	}
	defer src.Close()
	src.CopyTo(dst)
	return nil
}
