package world

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"voxelterrain/internal/block"
)

const (
	previewAmbientLight = 0.35
	previewMaxPixels    = 4096 * 4096
)

var previewBackground = color.NRGBA{R: 10, G: 10, B: 18, A: 255}

// RenderAreaPreview draws a top-down map of the area, one pixel per column.
// Each pixel takes the color of the surface block shaded by its height.
// Columns with no resident chunk keep the background color.
func RenderAreaPreview(w *World, area Area) (*image.NRGBA, error) {
	if w == nil {
		return nil, fmt.Errorf("world is nil")
	}
	if area.Width() <= 0 || area.Depth() <= 0 {
		return nil, fmt.Errorf("invalid preview area: %+v", area)
	}
	if area.Width()*area.Depth() > previewMaxPixels {
		return nil, fmt.Errorf("preview area %dx%d too large", area.Width(), area.Depth())
	}

	img := image.NewNRGBA(image.Rect(0, 0, area.Width(), area.Depth()))
	draw.Draw(img, img.Bounds(), &image.Uniform{previewBackground}, image.Point{}, draw.Src)

	for _, c := range w.InArea(area) {
		for lx := 0; lx < ChunkWidth; lx++ {
			for lz := 0; lz < ChunkDepth; lz++ {
				px, pz := c.x+lx-area.MinX, c.z+lz-area.MinZ
				if px < 0 || pz < 0 || px >= area.Width() || pz >= area.Depth() {
					continue
				}
				h := c.SurfaceHeight(lx, lz)
				if h < 0 {
					continue
				}
				base := resolveBlockColor(c.Block(lx, h, lz))
				img.SetNRGBA(px, pz, applyLighting(base, previewAmbientLight+(1-previewAmbientLight)*float64(h)/float64(ChunkHeight-1)))
			}
		}
	}
	return img, nil
}

// SaveAreaPreview renders the area and writes it as
// terrain_<minX>_<minZ>.png under outputDir, returning the file path.
func SaveAreaPreview(w *World, area Area, outputDir string) (string, error) {
	img, err := RenderAreaPreview(w, area)
	if err != nil {
		return "", err
	}
	if err := ensurePreviewDir(outputDir); err != nil {
		return "", err
	}
	path := filepath.Join(outputDir, fmt.Sprintf("terrain_%d_%d.png", area.MinX, area.MinZ))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create preview: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encode preview: %w", err)
	}
	return path, nil
}

func resolveBlockColor(t block.Type) color.NRGBA {
	if appearance, ok := block.Appearances[t]; ok {
		if col, ok := parseHexColor(appearance.Color); ok {
			return col
		}
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}

func parseHexColor(value string) (color.NRGBA, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 {
		return color.NRGBA{}, false
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
}

func applyLighting(base color.NRGBA, factor float64) color.NRGBA {
	factor = clamp(factor, 0, 1)
	r := uint8(math.Round(float64(base.R) * factor))
	g := uint8(math.Round(float64(base.G) * factor))
	b := uint8(math.Round(float64(base.B) * factor))
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func ensurePreviewDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory is empty")
	}
	return os.MkdirAll(dir, 0o755)
}
