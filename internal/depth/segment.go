package depth

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Region is a maximal 8-connected set of foreground samples.
type Region struct {
	// Label is the 1-based discovery order of the region in a row-major scan.
	Label int `json:"label"`

	// Area is the number of samples in the region.
	Area int `json:"area"`

	// Box is the smallest bounding box containing every sample of the region.
	Box BoundingBox `json:"box"`
}

// neighbours8 lists the row/col offsets of the 8-connected neighbourhood.
var neighbours8 = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// SegmentFace selects the face region from a roughness map.
//
// Samples strictly above the map's arithmetic mean are foreground. Foreground
// samples are grouped into 8-connected regions and the region with the largest
// area is returned. Equal areas are resolved in favour of the region found
// first in row-major order.
//
// Returns ErrNoRegionFound if no sample lies above the mean, which is always
// the case for a uniform map.
func SegmentFace(m *RoughnessMap) (Region, error) {
	data := m.Data()
	// A uniform map has nothing above its mean; checking exactly avoids
	// rounding in the mean marking every sample as foreground.
	if floats.Min(data) == floats.Max(data) {
		return Region{}, fmt.Errorf("%w: roughness map is uniform", ErrNoRegionFound)
	}
	threshold := stat.Mean(data, nil)

	rows, cols := m.Dims()
	foreground := make([]bool, len(data))
	found := false
	for i, v := range data {
		if v > threshold {
			foreground[i] = true
			found = true
		}
	}
	if !found {
		return Region{}, fmt.Errorf("%w: no sample above mean %g", ErrNoRegionFound, threshold)
	}

	regions := LabelRegions(foreground, rows, cols)
	best := regions[0]
	for _, r := range regions[1:] {
		if r.Area > best.Area {
			best = r
		}
	}
	return best, nil
}

// LabelRegions groups foreground cells of a row-major rows x cols mask into
// 8-connected regions.
//
// Regions are labelled 1, 2, ... in the order their first cell is met by a
// row-major scan, and are returned in label order.
func LabelRegions(foreground []bool, rows, cols int) []Region {
	seen := make([]bool, rows*cols)
	regions := make([]Region, 0)
	queue := make([]int, 0)

	for start := range foreground {
		if !foreground[start] || seen[start] {
			continue
		}

		r0, c0 := start/cols, start%cols
		region := Region{
			Label: len(regions) + 1,
			Box:   BoundingBox{MinRow: r0, MinCol: c0, MaxRow: r0 + 1, MaxCol: c0 + 1},
		}

		seen[start] = true
		queue = append(queue[:0], start)
		for k := 0; k < len(queue); k++ {
			idx := queue[k]
			r, c := idx/cols, idx%cols
			region.Area++
			region.Box.MinRow = min(region.Box.MinRow, r)
			region.Box.MinCol = min(region.Box.MinCol, c)
			region.Box.MaxRow = max(region.Box.MaxRow, r+1)
			region.Box.MaxCol = max(region.Box.MaxCol, c+1)

			for _, d := range neighbours8 {
				nr, nc := r+d[0], c+d[1]
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				n := nr*cols + nc
				if foreground[n] && !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
		regions = append(regions, region)
	}
	return regions
}
