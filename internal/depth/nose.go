package depth

import (
	"fmt"
	"math"
)

// LocateNoseTip finds the closest valid sample in a depth image.
//
// The nose tip is the minimum among samples greater than zero. When several
// samples share that minimum, the first one in row-major scan order wins;
// no centrality heuristic is applied. Non-finite samples are skipped.
//
// Returns the coordinate and its depth, or ErrNoDepthData if the image holds
// no positive sample.
func LocateNoseTip(img *Image) (Coordinate, float64, error) {
	rows, cols := img.Dims()

	best := math.Inf(1)
	tip := Coordinate{Row: -1, Col: -1}
	for r := 0; r < rows; r++ {
		for c, v := range img.m.RawRowView(r) {
			if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			// Strict comparison keeps the earliest occurrence.
			if v < best {
				best = v
				tip = Coordinate{Row: r, Col: c}
			}
		}
	}

	if tip.Row < 0 {
		return Coordinate{}, 0, fmt.Errorf("%w: all %d samples are zero", ErrNoDepthData, rows*cols)
	}
	return tip, best, nil
}
