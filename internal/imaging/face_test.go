package imaging

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ironsheep/depth-face-mcp/internal/depth"
)

func TestLocateNoseTip(t *testing.T) {
	src, err := LoadDepth(writeTestImage(t, coneGray16(50, 40, 12, 31)))
	if err != nil {
		t.Fatalf("LoadDepth failed: %v", err)
	}
	tip, err := LocateNoseTip(src)
	if err != nil {
		t.Fatalf("LocateNoseTip failed: %v", err)
	}
	want := &NoseTipResult{Row: 31, Col: 12, Depth: 500}
	if diff := cmp.Diff(want, tip); diff != "" {
		t.Errorf("nose tip mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFace_WritesOutput(t *testing.T) {
	src, err := LoadDepth(writeTestImage(t, coneGray16(300, 300, 150, 150)))
	if err != nil {
		t.Fatalf("LoadDepth failed: %v", err)
	}
	out := filepath.Join(t.TempDir(), "face.png")

	result, res, err := ExtractFace(src, depth.DefaultConfig(), out)
	if err != nil {
		t.Fatalf("ExtractFace failed: %v", err)
	}
	if result.CropWidth != 201 || result.CropHeight != 201 {
		t.Errorf("crop: got %dx%d, want 201x201", result.CropWidth, result.CropHeight)
	}
	if result.Refined.Width != 161 || result.Refined.Height != 161 {
		t.Errorf("refined: got %dx%d, want 161x161", result.Refined.Width, result.Refined.Height)
	}

	written, err := LoadDepth(out)
	if err != nil {
		t.Fatalf("LoadDepth(output) failed: %v", err)
	}
	if !written.Depth.Equal(res.Refined) {
		t.Error("written raster differs from the refined face")
	}
}

func TestExtractFace_NoDepth(t *testing.T) {
	src, err := LoadDepth(writeTestImage(t, image.NewGray16(image.Rect(0, 0, 10, 10))))
	if err != nil {
		t.Fatalf("LoadDepth failed: %v", err)
	}
	out := filepath.Join(t.TempDir(), "face.png")

	_, _, err = ExtractFace(src, depth.DefaultConfig(), out)
	if !errors.Is(err, depth.ErrNoDepthData) {
		t.Fatalf("error: got %v, want ErrNoDepthData", err)
	}
	if _, statErr := LoadDepth(out); statErr == nil {
		t.Error("output written despite failed extraction")
	}
}

func TestRoughness(t *testing.T) {
	src, err := LoadDepth(writeTestImage(t, coneGray16(80, 80, 40, 40)))
	if err != nil {
		t.Fatalf("LoadDepth failed: %v", err)
	}
	result, err := Roughness(src, depth.Config{CropRadius: 20, SmoothingSigma: 3, TrimPercent: 0.1})
	if err != nil {
		t.Fatalf("Roughness failed: %v", err)
	}
	if result.Preview.Width != 41 || result.Preview.Height != 41 {
		t.Errorf("preview: got %dx%d, want 41x41", result.Preview.Width, result.Preview.Height)
	}
	if result.Mean < 0 || result.Max < result.Mean {
		t.Errorf("statistics out of order: mean %v max %v", result.Mean, result.Max)
	}
}

func TestVisualize(t *testing.T) {
	src, err := LoadDepth(writeTestImage(t, coneGray16(90, 90, 45, 45)))
	if err != nil {
		t.Fatalf("LoadDepth failed: %v", err)
	}
	cfg := depth.Config{CropRadius: 20, SmoothingSigma: 2, TrimPercent: 0.1}

	inline, err := Visualize(src, cfg, "", 64)
	if err != nil {
		t.Fatalf("Visualize failed: %v", err)
	}
	if inline.Image == nil || len(inline.Panels) != 6 {
		t.Fatalf("inline result incomplete: %+v", inline)
	}

	path := filepath.Join(t.TempDir(), "panels.png")
	saved, err := Visualize(src, cfg, path, 64)
	if err != nil {
		t.Fatalf("Visualize to file failed: %v", err)
	}
	if saved.OutputPath != path || saved.Image != nil {
		t.Errorf("file result: got path %q image %v", saved.OutputPath, saved.Image != nil)
	}
}
