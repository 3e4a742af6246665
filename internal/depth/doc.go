// Package depth implements face-region extraction from single-channel depth images.
//
// The package is the pure core of the project: every function takes owned
// inputs, allocates its own output and never mutates its arguments. There is
// no package-level mutable state, so independent extractions may run
// concurrently without coordination.
//
// # Coordinate System
//
// Grids are indexed as (row, col) with (0,0) at the top-left corner. Regions
// and windows are half-open on their maximum side: a BoundingBox
// {MinRow: 2, MinCol: 3, MaxRow: 5, MaxCol: 7} covers rows 2-4 and columns 3-6.
//
// # Depth Values
//
// A sample value of 0 means "no reading". Every other value is a distance
// from the sensor, with smaller values being closer.
//
// # Pipeline
//
// Extract chains the stages in a fixed order:
//
//  1. LocateNoseTip: closest nonzero sample, first in row-major order on ties
//  2. Crop: square window of radius CropRadius around the nose tip
//  3. Roughness: |I - GaussianBlur(I)|, a magnitude-of-deviation map
//  4. SegmentFace: largest 8-connected region above the map's mean
//  5. MaskOutside: zero everything outside the region's bounding box
//  6. TrimBorder: strip TrimPercent of rows and columns from every edge
//
// Any failing stage aborts the run; no partial result is returned.
//
// # Error Handling
//
// Failures are reported with sentinel errors (ErrNoDepthData,
// ErrNoRegionFound, ErrDegenerateTrim, ...) wrapped with context. Extract
// wraps them further in a *StageError naming the stage that failed. Use
// errors.Is to test for a specific condition.
package depth
