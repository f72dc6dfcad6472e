package world

import (
	"image/color"
	"os"
	"testing"

	"voxelterrain/internal/block"
)

func TestRenderAreaPreviewShadesSurface(t *testing.T) {
	w := New()
	c := NewChunk(0, 0)
	for y := 0; y <= 200; y++ {
		c.SetBlock(2, y, 3, block.Stone)
	}
	c.SetBlock(4, 10, 4, block.Grass)
	w.Insert(c)

	img, err := RenderAreaPreview(w, Area{MinX: 0, MinZ: 0, MaxX: 32, MaxZ: 16})
	if err != nil {
		t.Fatalf("render preview: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 16 {
		t.Fatalf("unexpected bounds %v", b)
	}

	high := img.NRGBAAt(2, 3)
	low := img.NRGBAAt(4, 4)
	if high == previewBackground || low == previewBackground {
		t.Fatalf("expected surface pixels to be painted")
	}
	if high.R <= 0x40 {
		t.Fatalf("high stone should be bright, got %v", high)
	}
	if got := img.NRGBAAt(20, 5); got != previewBackground {
		t.Fatalf("missing chunk should keep background, got %v", got)
	}
	if got := img.NRGBAAt(8, 8); got != previewBackground {
		t.Fatalf("empty column should keep background, got %v", got)
	}
}

func TestSaveAreaPreviewWritesPNG(t *testing.T) {
	w := New()
	w.Insert(NewChunk(0, 0))
	dir := t.TempDir()

	path, err := SaveAreaPreview(w, Area{MaxX: 16, MaxZ: 16}, dir)
	if err != nil {
		t.Fatalf("save preview: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat preview: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty png")
	}
}

func TestRenderAreaPreviewRejectsEmptyArea(t *testing.T) {
	if _, err := RenderAreaPreview(New(), Area{MinX: 5, MaxX: 5, MaxZ: 10}); err == nil {
		t.Fatalf("expected error for zero-width area")
	}
}

func TestParseHexColor(t *testing.T) {
	got, ok := parseHexColor("#5d9b3d")
	if !ok || got != (color.NRGBA{R: 0x5d, G: 0x9b, B: 0x3d, A: 255}) {
		t.Fatalf("parseHexColor = %v, %v", got, ok)
	}
	if _, ok := parseHexColor("zzz"); ok {
		t.Fatalf("expected invalid color to fail")
	}
}
