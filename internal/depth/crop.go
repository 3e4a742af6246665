package depth

import "fmt"

// CropWindow computes the window of radius r around center in a grid of the
// given shape.
//
// The window spans rows [max(0, row-r), row+r] and columns [max(0, col-r), col+r],
// i.e. at most 2r+1 samples per side. Only the lower bound is clamped; the
// upper bound is truncated by the grid's extent and the window is never
// shifted to compensate, so windows near the bottom or right border are
// smaller than those near the top or left. Any radius r >= 0 is accepted;
// radii larger than the grid select the whole extent.
func CropWindow(rows, cols int, center Coordinate, r int) BoundingBox {
	// Bound r by the distance to each edge before adding so that huge radii
	// cannot overflow.
	return BoundingBox{
		MinRow: center.Row - min(r, center.Row),
		MinCol: center.Col - min(r, center.Col),
		MaxRow: center.Row + min(r, rows-1-center.Row) + 1,
		MaxCol: center.Col + min(r, cols-1-center.Col) + 1,
	}
}

// Crop extracts the square window of radius r centered on center.
//
// Returns the cropped samples as a new image together with the window in
// source coordinates.
func Crop(img *Image, center Coordinate, r int) (*Image, BoundingBox, error) {
	rows, cols := img.Dims()
	if !center.In(rows, cols) {
		return nil, BoundingBox{}, fmt.Errorf("%w: center (%d,%d) outside %dx%d image",
			ErrOutOfBounds, center.Row, center.Col, rows, cols)
	}
	if r < 0 {
		return nil, BoundingBox{}, fmt.Errorf("%w: crop radius %d is negative", ErrInvalidConfig, r)
	}

	window := CropWindow(rows, cols, center, r)
	return img.sub(window), window, nil
}
