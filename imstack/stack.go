// Package imstack composes several images into one scaled grid, so a
// source frame, its mask and the masked result can be shown in a
// single window.
package imstack

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Stack lays rows of images out as a grid. Every cell is resized to
// the first cell's size multiplied by scale, and single-channel images
// are promoted to BGR so masks can sit next to color frames. All rows
// must have the same number of cells. The caller owns the returned Mat.
func Stack(scale float64, rows [][]gocv.Mat) (gocv.Mat, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return gocv.Mat{}, fmt.Errorf("imstack: empty grid")
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return gocv.Mat{}, fmt.Errorf("imstack: row %d has %d cells, want %d", i, len(row), width)
		}
	}

	base := rows[0][0]
	cellW := int(float64(base.Cols()) * scale)
	cellH := int(float64(base.Rows()) * scale)
	if cellW <= 0 || cellH <= 0 {
		return gocv.Mat{}, fmt.Errorf("imstack: scale %v collapses %dx%d cells", scale, base.Cols(), base.Rows())
	}

	var stacked gocv.Mat
	for i, row := range rows {
		rowMat := concatRow(row, cellW, cellH)
		if i == 0 {
			stacked = rowMat
			continue
		}
		combined := gocv.NewMat()
		gocv.Vconcat(stacked, rowMat, &combined)
		stacked.Close()
		rowMat.Close()
		stacked = combined
	}
	return stacked, nil
}

func concatRow(row []gocv.Mat, cellW, cellH int) gocv.Mat {
	var rowMat gocv.Mat
	for i, cell := range row {
		prepared := prepareCell(cell, cellW, cellH)
		if i == 0 {
			rowMat = prepared
			continue
		}
		combined := gocv.NewMat()
		gocv.Hconcat(rowMat, prepared, &combined)
		rowMat.Close()
		prepared.Close()
		rowMat = combined
	}
	return rowMat
}

func prepareCell(m gocv.Mat, cellW, cellH int) gocv.Mat {
	out := gocv.NewMat()
	if m.Channels() == 1 {
		gocv.CvtColor(m, &out, gocv.ColorGrayToBGR)
	} else {
		m.CopyTo(&out)
	}

	if out.Cols() == cellW && out.Rows() == cellH {
		return out
	}
	resized := gocv.NewMat()
	gocv.Resize(out, &resized, image.Pt(cellW, cellH), 0, 0, gocv.InterpolationLinear)
	out.Close()
	return resized
}
