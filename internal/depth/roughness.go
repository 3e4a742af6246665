package depth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// gaussianTruncate is the kernel half-width in standard deviations.
const gaussianTruncate = 4.0

// RoughnessMap holds per-sample local texture strength for a crop.
// It has the same shape as the crop it was computed from and every value is >= 0.
type RoughnessMap struct {
	Image
}

// Roughness computes the magnitude-of-deviation map |I - GaussianBlur(I, sigma)|.
//
// This is sometimes called a "standard deviation filter", but it is not a
// local standard deviation: it is the absolute difference between each sample
// and its Gaussian-weighted neighbourhood. Flat areas map to values near zero
// and edges or curved surface map to larger values.
func Roughness(crop *Image, sigma float64) (*RoughnessMap, error) {
	blurred, err := GaussianBlur(crop, sigma)
	if err != nil {
		return nil, err
	}

	var diff mat.Dense
	diff.Sub(crop.m, blurred.m)
	diff.Apply(func(_, _ int, v float64) float64 { return math.Abs(v) }, &diff)

	return &RoughnessMap{Image: Image{m: &diff}}, nil
}

// GaussianBlur smooths an image with a separable Gaussian kernel.
//
// The kernel extends int(4*sigma + 0.5) samples either side of the center,
// capped at the larger image dimension. Samples beyond the border replicate
// the nearest edge value. The output keeps the value range of the input.
func GaussianBlur(img *Image, sigma float64) (*Image, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: smoothing sigma %v must be positive", ErrInvalidConfig, sigma)
	}
	rows, cols := img.Dims()
	kernel := gaussianKernel(sigma, max(rows, cols))
	radius := len(kernel) / 2

	horizontal := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		src := img.m.RawRowView(r)
		dst := horizontal.RawRowView(r)
		for c := 0; c < cols; c++ {
			var sum float64
			for k, w := range kernel {
				sum += src[clamp(c+k-radius, 0, cols-1)] * w
			}
			dst[c] = sum
		}
	}

	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		dst := out.RawRowView(r)
		for k, w := range kernel {
			src := horizontal.RawRowView(clamp(r+k-radius, 0, rows-1))
			for c := range dst {
				dst[c] += src[c] * w
			}
		}
	}
	return newImageFrom(out), nil
}

// gaussianKernel returns a normalised 1D Gaussian kernel of odd length whose
// radius is at most maxRadius.
func gaussianKernel(sigma float64, maxRadius int) []float64 {
	radius := maxRadius
	// Compare in float64 so that very large sigmas cannot overflow int.
	if r := math.Floor(gaussianTruncate*sigma + 0.5); r < float64(maxRadius) {
		radius = int(r)
	}
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-0.5 * x * x / (sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// clamp constrains an integer value to the range [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
