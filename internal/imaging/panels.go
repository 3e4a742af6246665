package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/depth-face-mcp/internal/depth"
)

const (
	// DefaultPanelSize is the edge length in pixels of one diagnostic panel.
	DefaultPanelSize = 320
	// MaxPanelSize is the largest accepted panel edge length.
	MaxPanelSize = 2048
)

const (
	panelColumns = 3
	panelRows    = 2
	panelGap     = 8
)

// Panel order, left to right and top to bottom.
var panelTitles = [panelColumns * panelRows]string{
	"original depth image",
	"cropped face",
	"roughness map",
	"masked face",
	"refined face",
	"nose tip",
}

// roughnessStops are the colormap anchors for the roughness panel, low to high.
var roughnessStops = []string{"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"}

const markerHex = "#e41a1c"

// PanelTitles returns the captions of the diagnostic panels in layout order.
func PanelTitles() []string {
	titles := make([]string, len(panelTitles))
	copy(titles, panelTitles[:])
	return titles
}

// RenderPanels draws the six-panel diagnostic view of an extraction.
//
// Panels are laid out in a 3x2 grid: original depth image, cropped face,
// roughness map, masked face, refined face, and the original image with the
// nose tip marked. Each panel is min-max normalised and scaled to fit a
// tile x tile cell with its aspect ratio preserved. A tile of zero or less
// selects DefaultPanelSize; one above MaxPanelSize is rejected.
func RenderPanels(src *depth.Image, res *depth.Result, tile int) (*image.NRGBA, error) {
	if res == nil {
		return nil, fmt.Errorf("no extraction result to render")
	}
	if tile <= 0 {
		tile = DefaultPanelSize
	}
	if tile > MaxPanelSize {
		return nil, fmt.Errorf("%w: panel size %d exceeds %d", depth.ErrInvalidConfig, tile, MaxPanelSize)
	}

	heat, err := roughnessColormap()
	if err != nil {
		return nil, err
	}
	marker, err := colorful.Hex(markerHex)
	if err != nil {
		return nil, err
	}

	panels := []image.Image{
		fitTile(Normalize(src), tile),
		fitTile(Normalize(res.Crop), tile),
		fitTile(colorize(Normalize(&res.Roughness.Image), heat), tile),
		fitTile(Normalize(res.Masked), tile),
		fitTile(Normalize(res.Refined), tile),
	}

	overlay := fitTile(Normalize(src), tile)
	rows, cols := src.Dims()
	scale := float64(overlay.Bounds().Dx()) / float64(cols)
	if sy := float64(overlay.Bounds().Dy()) / float64(rows); sy < scale {
		scale = sy
	}
	drawDisc(overlay,
		int((float64(res.NoseTip.Col)+0.5)*scale),
		int((float64(res.NoseTip.Row)+0.5)*scale),
		max(3, tile/80), marker)
	panels = append(panels, overlay)

	width := panelColumns*tile + (panelColumns+1)*panelGap
	height := panelRows*tile + (panelRows+1)*panelGap
	canvas := imaging.New(width, height, color.White)

	for i, p := range panels {
		col, row := i%panelColumns, i/panelColumns
		cellX := panelGap + col*(tile+panelGap)
		cellY := panelGap + row*(tile+panelGap)
		// Center the panel inside its cell.
		pos := image.Pt(cellX+(tile-p.Bounds().Dx())/2, cellY+(tile-p.Bounds().Dy())/2)
		canvas = imaging.Paste(canvas, p, pos)
	}
	return canvas, nil
}

// SavePanels writes a rendered diagnostic view to path as PNG.
func SavePanels(path string, panels image.Image) error {
	if err := imgio.Save(path, panels, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write panels to %s: %w", path, err)
	}
	return nil
}

// fitTile scales img to fit within a tile x tile square, keeping its aspect ratio.
func fitTile(img image.Image, tile int) *image.RGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scale := math.Min(float64(tile)/float64(w), float64(tile)/float64(h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	filter := transform.Linear
	if scale > 1 {
		// Keep sample boundaries visible when enlarging small crops.
		filter = transform.NearestNeighbor
	}
	return transform.Resize(img, nw, nh, filter)
}

// roughnessColormap builds a 256-entry palette blending roughnessStops in CIE-Lab.
func roughnessColormap() ([256]color.RGBA, error) {
	var lut [256]color.RGBA
	stops := make([]colorful.Color, len(roughnessStops))
	for i, hex := range roughnessStops {
		c, err := colorful.Hex(hex)
		if err != nil {
			return lut, fmt.Errorf("invalid colormap stop %q: %w", hex, err)
		}
		stops[i] = c
	}

	segments := float64(len(stops) - 1)
	for i := range lut {
		t := float64(i) / 255 * segments
		k := min(int(t), len(stops)-2)
		c := stops[k].BlendLab(stops[k+1], t-float64(k)).Clamped()
		r, g, b := c.RGB255()
		lut[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return lut, nil
}

// colorize maps gray levels through a palette.
func colorize(gray *image.Gray, lut [256]color.RGBA) *image.RGBA {
	bounds := gray.Bounds()
	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetRGBA(x, y, lut[gray.GrayAt(x, y).Y])
		}
	}
	return out
}

// drawDisc fills a circle of radius r centered on (cx, cy), clipped to the image.
func drawDisc(img *image.RGBA, cx, cy, r int, c colorful.Color) {
	cr, cg, cb := c.RGB255()
	fill := color.RGBA{R: cr, G: cg, B: cb, A: 255}
	bounds := img.Bounds()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			p := image.Pt(cx+dx, cy+dy)
			if p.In(bounds) {
				img.SetRGBA(p.X, p.Y, fill)
			}
		}
	}
}
