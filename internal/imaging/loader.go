package imaging

import (
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/depth-face-mcp/internal/depth"
)

// Source is a decoded depth raster together with metadata about its file.
type Source struct {
	// Depth holds one sample per pixel at the file's native precision.
	Depth *depth.Image

	// Info describes the file the samples were read from.
	Info SourceInfo
}

// SourceInfo contains metadata about a loaded depth raster.
type SourceInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the detected image format: "png", "jpeg", "gif", or "unknown".
	// Detection is based on file extension, not file contents.
	Format string `json:"format"`

	// BitDepth is 16 for 16-bit grayscale rasters and 8 otherwise.
	BitDepth int `json:"bit_depth"`

	// Channels is the channel count of the decoded image before reduction to
	// depth: 1 for grayscale, 3 for opaque color, 4 for color with transparency.
	// Paletted images count as grayscale when every palette entry is gray,
	// with one more channel if any entry is translucent. The count is inferred
	// from the decoded color model, so a gray-with-alpha PNG (decoded as NRGBA)
	// reports 4.
	Channels int `json:"channels"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// DepthCache provides thread-safe caching of decoded depth rasters keyed by path.
//
// Cached sources are immutable, so a cached *Source may be handed to several
// extractions at once.
type DepthCache struct {
	mu      sync.RWMutex
	sources map[string]*Source
}

// NewDepthCache creates and initializes a new empty depth cache.
func NewDepthCache() *DepthCache {
	return &DepthCache{
		sources: make(map[string]*Source),
	}
}

// Load retrieves a depth raster from the cache or decodes it from disk.
//
// The source is cached using the exact path string provided. Different paths
// to the same file (e.g., relative vs absolute) result in separate entries.
func (c *DepthCache) Load(path string) (*Source, error) {
	c.mu.RLock()
	if src, ok := c.sources[path]; ok {
		c.mu.RUnlock()
		return src, nil
	}
	c.mu.RUnlock()

	src, err := LoadDepth(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sources[path] = src
	c.mu.Unlock()

	return src, nil
}

// Clear removes all sources from the cache.
func (c *DepthCache) Clear() {
	c.mu.Lock()
	c.sources = make(map[string]*Source)
	c.mu.Unlock()
}

// Evict removes a specific source from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *DepthCache) Evict(path string) {
	c.mu.Lock()
	delete(c.sources, path)
	c.mu.Unlock()
}

// LoadDepth reads a raster file and reduces it to a single-channel depth grid.
//
// Supported formats are PNG, JPEG, and GIF. Grayscale files keep their native
// 8- or 16-bit values. Color files are converted to luminance using ITU-R
// BT.601 weights (0.299*R + 0.587*G + 0.114*B) and yield 8-bit samples.
//
// Unreadable, undecodable, or empty files fail with depth.ErrInvalidImage.
func LoadDepth(path string) (*Source, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", depth.ErrInvalidImage, err)
	}

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", depth.ErrInvalidImage, path, err)
	}

	grid, bitDepth, channels, err := DepthFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rows, cols := grid.Dims()
	return &Source{
		Depth: grid,
		Info: SourceInfo{
			Width:         cols,
			Height:        rows,
			Format:        formatFromExt(path),
			BitDepth:      bitDepth,
			Channels:      channels,
			FileSizeBytes: stat.Size(),
		},
	}, nil
}

// LoadDepthInfo loads a depth raster through the cache and returns its metadata.
func LoadDepthInfo(cache *DepthCache, path string) (*SourceInfo, error) {
	src, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	info := src.Info
	return &info, nil
}

// DepthFromImage converts a decoded image into a depth grid.
//
// Returns the grid, the bit depth of its samples, and the channel count of
// the input.
func DepthFromImage(img image.Image) (*depth.Image, int, int, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, 0, 0, fmt.Errorf("%w: empty raster", depth.ErrInvalidImage)
	}

	data := make([]float64, 0, width*height)
	bitDepth, channels := 8, 1

	switch src := img.(type) {
	case *image.Gray16:
		bitDepth = 16
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				data = append(data, float64(src.Gray16At(x, y).Y))
			}
		}
	case *image.Gray:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				data = append(data, float64(src.GrayAt(x, y).Y))
			}
		}
	default:
		channels = colorChannels(img)
		// Grayscale returns an NRGBA image anchored at (0,0) with R=G=B.
		gray := imaging.Grayscale(img)
		for y := 0; y < height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width*4]
			for x := 0; x < width; x++ {
				data = append(data, float64(row[x*4]))
			}
		}
	}

	grid, err := depth.NewImage(height, width, data)
	if err != nil {
		return nil, 0, 0, err
	}
	return grid, bitDepth, channels, nil
}

// colorChannels estimates the channel count of a non-grayscale image model.
// Paletted images are classified by their palette; other models report 3,
// plus one when the image is not fully opaque.
func colorChannels(img image.Image) int {
	if p, ok := img.(*image.Paletted); ok {
		gray, alpha := true, false
		for _, c := range p.Palette {
			r, g, b, a := c.RGBA()
			if r != g || g != b {
				gray = false
			}
			if a != 0xffff {
				alpha = true
			}
		}
		channels := 3
		if gray {
			channels = 1
		}
		if alpha {
			channels++
		}
		return channels
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && !o.Opaque() {
		return 4
	}
	return 3
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	}
	return "unknown"
}
