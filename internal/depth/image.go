package depth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Image is an immutable 2D grid of depth samples.
//
// The zero value is not usable; construct images with NewImage or FromRows.
// Every stage in this package returns a new Image backed by its own buffer.
type Image struct {
	m *mat.Dense
}

// NewImage creates an image of the given shape from row-major samples.
// The data slice is copied.
func NewImage(rows, cols int, data []float64) (*Image, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: shape %dx%d", ErrInvalidImage, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: %d samples for shape %dx%d", ErrShapeMismatch, len(data), rows, cols)
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Image{m: mat.NewDense(rows, cols, buf)}, nil
}

// FromRows creates an image from a slice of equal-length rows.
func FromRows(rows [][]float64) (*Image, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidImage)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrShapeMismatch, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return &Image{m: mat.NewDense(len(rows), cols, data)}, nil
}

// newImageFrom takes ownership of a dense matrix produced by a stage.
func newImageFrom(m *mat.Dense) *Image {
	return &Image{m: m}
}

// Dims returns the number of rows and columns.
func (im *Image) Dims() (rows, cols int) {
	return im.m.Dims()
}

// At returns the sample at (row, col). It panics if the coordinate is out of range.
func (im *Image) At(row, col int) float64 {
	return im.m.At(row, col)
}

// Data returns a row-major copy of the samples.
func (im *Image) Data() []float64 {
	rows, cols := im.m.Dims()
	out := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		out = append(out, im.m.RawRowView(r)...)
	}
	return out
}

// Equal reports whether both images have the same shape and identical samples.
func (im *Image) Equal(other *Image) bool {
	if im == nil || other == nil {
		return im == other
	}
	return mat.Equal(im.m, other.m)
}

// sub returns an owned copy of the half-open window [r0,r1) x [c0,c1).
func (im *Image) sub(box BoundingBox) *Image {
	view := im.m.Slice(box.MinRow, box.MaxRow, box.MinCol, box.MaxCol)
	return newImageFrom(mat.DenseCopyOf(view))
}

// Coordinate is a (row, col) index into an image.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// In reports whether the coordinate lies inside a grid of the given shape.
func (c Coordinate) In(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// BoundingBox is an axis-aligned rectangle, half-open on the max side.
type BoundingBox struct {
	MinRow int `json:"min_row"`
	MinCol int `json:"min_col"`
	MaxRow int `json:"max_row"` // exclusive
	MaxCol int `json:"max_col"` // exclusive
}

// Height returns MaxRow - MinRow.
func (b BoundingBox) Height() int { return b.MaxRow - b.MinRow }

// Width returns MaxCol - MinCol.
func (b BoundingBox) Width() int { return b.MaxCol - b.MinCol }

// Area returns the number of cells the box covers.
func (b BoundingBox) Area() int { return b.Height() * b.Width() }

// Valid reports whether the box is non-empty and lies within a grid of the given shape.
func (b BoundingBox) Valid(rows, cols int) bool {
	return b.MinRow >= 0 && b.MinCol >= 0 &&
		b.MinRow < b.MaxRow && b.MinCol < b.MaxCol &&
		b.MaxRow <= rows && b.MaxCol <= cols
}
