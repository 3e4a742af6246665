package imaging

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/depth-face-mcp/internal/depth"
)

// NoseTipResult reports the closest valid sample of a depth raster.
type NoseTipResult struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Depth float64 `json:"depth"`
}

// FaceResult summarises a face extraction.
type FaceResult struct {
	// NoseTip is the anchor of the crop, in source coordinates.
	NoseTip NoseTipResult `json:"nose_tip"`

	// Window is the crop window in source coordinates.
	Window depth.BoundingBox `json:"window"`

	// Face is the selected region in crop coordinates.
	Face depth.Region `json:"face"`

	// CropWidth and CropHeight give the size of the crop before masking.
	CropWidth  int `json:"crop_width"`
	CropHeight int `json:"crop_height"`

	// OutputPath is where the refined face was written, if requested.
	OutputPath string `json:"output_path,omitempty"`

	// Refined is the refined face as a base64 PNG. Its width and height are
	// the final output shape.
	Refined *RasterResult `json:"refined"`
}

// RoughnessResult reports the roughness map of the crop around the nose tip.
type RoughnessResult struct {
	Window  depth.BoundingBox `json:"window"`
	Mean    float64           `json:"mean"`
	Max     float64           `json:"max"`
	Preview *RasterResult     `json:"preview"`
}

// PanelsResult describes a rendered diagnostic view.
type PanelsResult struct {
	Panels     []string      `json:"panels"`
	OutputPath string        `json:"output_path,omitempty"`
	Image      *RasterResult `json:"image,omitempty"`
}

// LocateNoseTip finds the nose tip of a loaded depth raster.
func LocateNoseTip(src *Source) (*NoseTipResult, error) {
	tip, d, err := depth.LocateNoseTip(src.Depth)
	if err != nil {
		return nil, err
	}
	return &NoseTipResult{Row: tip.Row, Col: tip.Col, Depth: d}, nil
}

// ExtractFace runs the extraction pipeline on src and, when outputPath is
// not empty, writes the refined face there at the source's bit depth.
func ExtractFace(src *Source, cfg depth.Config, outputPath string) (*FaceResult, *depth.Result, error) {
	res, err := depth.Extract(src.Depth, cfg)
	if err != nil {
		return nil, nil, err
	}

	if outputPath != "" {
		if err := SaveRaster(outputPath, res.Refined, src.Info.BitDepth); err != nil {
			return nil, nil, err
		}
	}

	refined, err := EncodePNG(ToRaster(res.Refined, src.Info.BitDepth))
	if err != nil {
		return nil, nil, err
	}

	cropRows, cropCols := res.Crop.Dims()
	return &FaceResult{
		NoseTip:    NoseTipResult{Row: res.NoseTip.Row, Col: res.NoseTip.Col, Depth: res.NoseDepth},
		Window:     res.Window,
		Face:       res.Face,
		CropWidth:  cropCols,
		CropHeight: cropRows,
		OutputPath: outputPath,
		Refined:    refined,
	}, res, nil
}

// Roughness computes the roughness map of the crop around the nose tip
// without segmenting it.
func Roughness(src *Source, cfg depth.Config) (*RoughnessResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tip, _, err := depth.LocateNoseTip(src.Depth)
	if err != nil {
		return nil, err
	}
	crop, window, err := depth.Crop(src.Depth, tip, cfg.CropRadius)
	if err != nil {
		return nil, err
	}
	m, err := depth.Roughness(crop, cfg.SmoothingSigma)
	if err != nil {
		return nil, err
	}

	data := m.Data()
	preview, err := EncodePNG(Normalize(&m.Image))
	if err != nil {
		return nil, err
	}
	return &RoughnessResult{
		Window:  window,
		Mean:    stat.Mean(data, nil),
		Max:     floats.Max(data),
		Preview: preview,
	}, nil
}

// Visualize runs the pipeline and renders the six-panel diagnostic view.
// The view is written to outputPath when set, otherwise returned inline.
func Visualize(src *Source, cfg depth.Config, outputPath string, tile int) (*PanelsResult, error) {
	res, err := depth.Extract(src.Depth, cfg)
	if err != nil {
		return nil, err
	}
	view, err := RenderPanels(src.Depth, res, tile)
	if err != nil {
		return nil, err
	}

	result := &PanelsResult{Panels: PanelTitles()}
	if outputPath != "" {
		if err := SavePanels(outputPath, view); err != nil {
			return nil, err
		}
		result.OutputPath = outputPath
		return result, nil
	}

	result.Image, err = EncodePNG(view)
	if err != nil {
		return nil, fmt.Errorf("failed to encode panels: %w", err)
	}
	return result, nil
}
