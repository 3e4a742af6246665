package depth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImage reports an unreadable or empty source raster.
	ErrInvalidImage = errors.New("invalid image")

	// ErrNoDepthData reports a depth image whose samples are all zero.
	ErrNoDepthData = errors.New("no depth data")

	// ErrNoRegionFound reports a roughness map with no sample above its mean.
	ErrNoRegionFound = errors.New("no region found")

	// ErrDegenerateTrim reports a trim fraction that leaves nothing behind.
	ErrDegenerateTrim = errors.New("degenerate trim")

	// ErrInvalidConfig reports an out-of-range configuration value.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrShapeMismatch reports a box or grid that does not fit the image it is applied to.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrOutOfBounds reports a coordinate outside the image it indexes.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// StageError records the pipeline stage at which an extraction failed.
type StageError struct {
	// Stage is the stage that could not be completed.
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
