package depth

import (
	"fmt"
	"math"
)

// TrimBorder removes a fraction p of the rows and columns from each edge.
//
// With trimH = floor(H*p) and trimW = floor(W*p) the result is the window
// [trimH, H-trimH) x [trimW, W-trimW). Fractions outside [0, 0.5), and any
// fraction that would leave an empty result, fail with ErrDegenerateTrim.
func TrimBorder(img *Image, p float64) (*Image, error) {
	if math.IsNaN(p) || p < 0 || p >= 0.5 {
		return nil, fmt.Errorf("%w: trim fraction %v outside [0, 0.5)", ErrDegenerateTrim, p)
	}

	rows, cols := img.Dims()
	trimH := int(math.Floor(float64(rows) * p))
	trimW := int(math.Floor(float64(cols) * p))

	box := BoundingBox{MinRow: trimH, MinCol: trimW, MaxRow: rows - trimH, MaxCol: cols - trimW}
	if box.Height() <= 0 || box.Width() <= 0 {
		return nil, fmt.Errorf("%w: trimming %v of %dx%d leaves %dx%d",
			ErrDegenerateTrim, p, rows, cols, box.Height(), box.Width())
	}
	return img.sub(box), nil
}
