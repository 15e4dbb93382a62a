package imageprep

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestSniffExtension(t *testing.T) {
	ext, err := SniffExtension(pngBytes(t, 4, 4))
	if err != nil {
		t.Fatalf("SniffExtension() unexpected error: %v", err)
	}
	if ext != ".png" {
		t.Fatalf("expected .png, got %q", ext)
	}

	if _, err := SniffExtension([]byte("#!/bin/sh\nrm -rf /")); err == nil {
		t.Fatal("expected rejection for non-image content")
	}
}

func TestThumbnail_BoundsWidth(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	if err := os.WriteFile(src, pngBytes(t, 64, 16), 0o644); err != nil {
		t.Fatalf("failed to write source image: %v", err)
	}

	out, err := Thumbnail(src, 32)
	if err != nil {
		t.Fatalf("Thumbnail() unexpected error: %v", err)
	}
	if !strings.HasSuffix(out, "_thumb.png") {
		t.Fatalf("unexpected thumbnail path: %q", out)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("failed to open thumbnail: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("failed to decode thumbnail: %v", err)
	}
	if cfg.Width != 32 {
		t.Fatalf("expected width 32, got %d", cfg.Width)
	}
}
