package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConeDepth writes a 16-bit cone-shaped depth raster with its closest
// point at (apexX, apexY) and returns its path.
func writeConeDepth(t *testing.T, width, height, apexX, apexY int) string {
	t.Helper()
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			dx, dy := float64(x-apexX), float64(y-apexY)
			img.SetGray16(x, y, color.Gray16{Y: uint16(600 + 5*math.Sqrt(dx*dx+dy*dy))})
		}
	}

	path := filepath.Join(t.TempDir(), "depth.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("failed to decode %s: %v", path, err)
	}
	return img
}

func TestRunExtract(t *testing.T) {
	in := writeConeDepth(t, 80, 70, 40, 30)
	dir := t.TempDir()
	out := filepath.Join(dir, "face.png")
	panels := filepath.Join(dir, "panels.png")

	err := runExtract([]string{
		"-in", in,
		"-out", out,
		"-panels", panels,
		"-panel-size", "40",
		"-radius", "15",
		"-sigma", "2",
		"-trim", "0",
	})
	if err != nil {
		t.Fatalf("runExtract failed: %v", err)
	}

	face := decodePNG(t, out)
	if _, ok := face.(*image.Gray16); !ok {
		t.Errorf("face raster: got %T, want *image.Gray16", face)
	}
	// With no trimming the refined face is the full 31x31 window.
	if b := face.Bounds(); b.Dx() != 31 || b.Dy() != 31 {
		t.Errorf("face size: got %dx%d, want 31x31", b.Dx(), b.Dy())
	}

	view := decodePNG(t, panels)
	if b := view.Bounds(); b.Dx() <= 3*40 || b.Dy() <= 2*40 {
		t.Errorf("panels size: got %dx%d, want larger than 120x80", b.Dx(), b.Dy())
	}
}

func TestRunExtract_Errors(t *testing.T) {
	in := writeConeDepth(t, 40, 40, 20, 20)
	out := filepath.Join(t.TempDir(), "face.png")

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"missing in", []string{"-out", out}, "-in and -out are required"},
		{"missing out", []string{"-in", in}, "-in and -out are required"},
		{"missing file", []string{"-in", "/nonexistent/depth.png", "-out", out}, "invalid image"},
		{"half trim", []string{"-in", in, "-out", out, "-trim", "0.5"}, "degenerate trim"},
		{"zero sigma", []string{"-in", in, "-out", out, "-sigma", "0"}, "invalid config"},
		{"bad format", []string{"-in", in, "-out", filepath.Join(t.TempDir(), "face.bmp")}, "unsupported output format"},
		{"bad flag", []string{"-in", in, "-out", out, "-radius", "wide"}, "invalid value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runExtract(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error: got %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRunExtract_Help(t *testing.T) {
	if err := runExtract([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error: got %v, want %v", err, flag.ErrHelp)
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	for _, want := range []string{"extract", "DEPTH_FACE_LOG_LEVEL"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("usage missing %q:\n%s", want, buf.String())
		}
	}
}
