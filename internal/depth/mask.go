package depth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MaskOutside zeroes every sample of crop that lies outside box.
//
// A mask of the crop's shape is filled with ones inside the box and zeros
// elsewhere, then multiplied element-wise with the crop. Samples inside the
// box keep their original depth.
func MaskOutside(crop *Image, box BoundingBox) (*Image, error) {
	rows, cols := crop.Dims()
	if !box.Valid(rows, cols) {
		return nil, fmt.Errorf("%w: box %+v does not fit %dx%d crop", ErrShapeMismatch, box, rows, cols)
	}

	mask := mat.NewDense(rows, cols, nil)
	for r := box.MinRow; r < box.MaxRow; r++ {
		row := mask.RawRowView(r)
		for c := box.MinCol; c < box.MaxCol; c++ {
			row[c] = 1
		}
	}

	var out mat.Dense
	out.MulElem(crop.m, mask)
	return newImageFrom(&out), nil
}
