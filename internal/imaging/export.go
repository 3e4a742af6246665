package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/depth-face-mcp/internal/depth"
)

// jpegQuality is the encoder quality used for .jpg/.jpeg output.
const jpegQuality = 95

// RasterResult contains an encoded raster returned to MCP clients.
type RasterResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// ToRaster converts a depth grid to a grayscale image without rescaling.
//
// With bitDepth 16 the result is an *image.Gray16; otherwise an *image.Gray.
// Samples are rounded to the nearest integer and clamped to the range of the
// pixel type.
func ToRaster(img *depth.Image, bitDepth int) image.Image {
	rows, cols := img.Dims()
	rect := image.Rect(0, 0, cols, rows)

	if bitDepth == 16 {
		out := image.NewGray16(rect)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				out.SetGray16(c, r, color.Gray16{Y: uint16(clampRound(img.At(r, c), math.MaxUint16))})
			}
		}
		return out
	}

	out := image.NewGray(rect)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.SetGray(c, r, color.Gray{Y: uint8(clampRound(img.At(r, c), math.MaxUint8))})
		}
	}
	return out
}

// Normalize stretches a grid's sample range onto 0-255 for display.
//
// The minimum maps to black and the maximum to white. A constant grid maps
// entirely to black.
func Normalize(img *depth.Image) *image.Gray {
	rows, cols := img.Dims()
	data := img.Data()
	lo, hi := floats.Min(data), floats.Max(data)

	out := image.NewGray(image.Rect(0, 0, cols, rows))
	if hi <= lo {
		return out
	}
	scale := 255 / (hi - lo)
	for i, v := range data {
		out.Pix[(i/cols)*out.Stride+i%cols] = uint8(math.Round((v - lo) * scale))
	}
	return out
}

// SaveRaster writes a depth grid to path as a single grayscale raster.
//
// The encoder is chosen by extension: ".png" keeps 8- or 16-bit samples,
// ".jpg"/".jpeg" accepts 8-bit samples only.
func SaveRaster(path string, img *depth.Image, bitDepth int) error {
	var encoder imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		encoder = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		if bitDepth == 16 {
			return fmt.Errorf("cannot write 16-bit depth to %s: use a .png output", path)
		}
		encoder = imgio.JPEGEncoder(jpegQuality)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}

	if err := imgio.Save(path, ToRaster(img, bitDepth), encoder); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EncodePNG encodes an image as a base64 PNG result.
func EncodePNG(img image.Image) (*RasterResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &RasterResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

func clampRound(v, hi float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	v = math.Round(v)
	if v > hi {
		return hi
	}
	return v
}
