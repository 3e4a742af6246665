package depth

import "fmt"

// Default configuration values.
const (
	DefaultCropRadius     = 100
	DefaultSmoothingSigma = 3.0
	DefaultTrimPercent    = 0.1
)

// Config holds the tunable constants of an extraction.
type Config struct {
	// CropRadius is the half-width of the window cut around the nose tip.
	CropRadius int `json:"crop_radius"`

	// SmoothingSigma is the Gaussian standard deviation used by the roughness map.
	SmoothingSigma float64 `json:"smoothing_sigma"`

	// TrimPercent is the fraction of rows and columns removed from each edge
	// of the masked face. Must be below 0.5.
	TrimPercent float64 `json:"trim_percent"`
}

// DefaultConfig returns the standard extraction settings.
func DefaultConfig() Config {
	return Config{
		CropRadius:     DefaultCropRadius,
		SmoothingSigma: DefaultSmoothingSigma,
		TrimPercent:    DefaultTrimPercent,
	}
}

// Validate checks the radius and sigma. TrimPercent is checked by TrimBorder
// so that unusable fractions are reported as ErrDegenerateTrim.
func (c Config) Validate() error {
	if c.CropRadius < 0 {
		return fmt.Errorf("%w: crop radius %d is negative", ErrInvalidConfig, c.CropRadius)
	}
	if !(c.SmoothingSigma > 0) {
		return fmt.Errorf("%w: smoothing sigma %v must be positive", ErrInvalidConfig, c.SmoothingSigma)
	}
	return nil
}

// Stage identifies a step of the extraction state machine.
type Stage int

const (
	StageLoaded Stage = iota
	StageNoseLocated
	StageCropped
	StageRoughnessComputed
	StageSegmented
	StageMasked
	StageTrimmed
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageLoaded:            "loaded",
	StageNoseLocated:       "nose-located",
	StageCropped:           "cropped",
	StageRoughnessComputed: "roughness-computed",
	StageSegmented:         "segmented",
	StageMasked:            "masked",
	StageTrimmed:           "trimmed",
	StageDone:              "done",
	StageFailed:            "failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Result carries the final face and every intermediate product of an extraction.
type Result struct {
	// NoseTip is the coordinate of the closest sample in the source image.
	NoseTip Coordinate `json:"nose_tip"`

	// NoseDepth is the depth value at NoseTip.
	NoseDepth float64 `json:"nose_depth"`

	// Window is the crop window in source coordinates.
	Window BoundingBox `json:"window"`

	// Face is the selected region, in crop coordinates.
	Face Region `json:"face"`

	// Stage is the last stage reached; StageDone for a returned Result.
	Stage Stage `json:"-"`

	Crop      *Image        `json:"-"`
	Roughness *RoughnessMap `json:"-"`
	Masked    *Image        `json:"-"`
	Refined   *Image        `json:"-"`
}

// Extract runs the full face extraction on a depth image.
//
// The stages run strictly in order and each consumes the complete output of
// the previous one. If a stage fails, Extract returns a *StageError naming
// the stage that failed and no Result.
func Extract(src *Image, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &StageError{Stage: StageLoaded, Err: err}
	}

	res := &Result{Stage: StageLoaded}
	fail := func(err error) (*Result, error) {
		return nil, &StageError{Stage: res.Stage + 1, Err: err}
	}

	tip, tipDepth, err := LocateNoseTip(src)
	if err != nil {
		return fail(err)
	}
	res.NoseTip, res.NoseDepth, res.Stage = tip, tipDepth, StageNoseLocated

	crop, window, err := Crop(src, tip, cfg.CropRadius)
	if err != nil {
		return fail(err)
	}
	res.Crop, res.Window, res.Stage = crop, window, StageCropped

	rough, err := Roughness(crop, cfg.SmoothingSigma)
	if err != nil {
		return fail(err)
	}
	res.Roughness, res.Stage = rough, StageRoughnessComputed

	face, err := SegmentFace(rough)
	if err != nil {
		return fail(err)
	}
	res.Face, res.Stage = face, StageSegmented

	masked, err := MaskOutside(crop, face.Box)
	if err != nil {
		return fail(err)
	}
	res.Masked, res.Stage = masked, StageMasked

	refined, err := TrimBorder(masked, cfg.TrimPercent)
	if err != nil {
		return fail(err)
	}
	res.Refined, res.Stage = refined, StageTrimmed

	res.Stage = StageDone
	return res, nil
}
