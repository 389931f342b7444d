package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func fill(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func createTestJPEG(w, h int) []byte {
	var buf bytes.Buffer
	jpeg.Encode(&buf, fill(w, h, color.RGBA{255, 0, 0, 255}), &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, fill(w, h, color.RGBA{0, 0, 255, 255}))
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestProcessJPEG(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestJPEG(100, 100)))
	if err != nil {
		t.Fatalf("Process JPEG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", result.MIME)
	}
	if len(result.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestProcessPNG(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestPNG(100, 100)))
	if err != nil {
		t.Fatalf("Process PNG: %v", err)
	}
	if result.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg (always outputs JPEG), got %s", result.MIME)
	}
}

func TestProcessDownscalePortrait(t *testing.T) {
	// Clothing photos are usually taken upright.
	result, err := Process(bytes.NewReader(createTestJPEG(1200, 2400)))
	if err != nil {
		t.Fatalf("Process large image: %v", err)
	}

	w, h := decodeSize(t, result.Data)
	if w != 512 || h != 1024 {
		t.Errorf("expected 512x1024, got %dx%d", w, h)
	}
	if result.Width != w || result.Height != h {
		t.Errorf("reported %dx%d, decoded %dx%d", result.Width, result.Height, w, h)
	}
}

func TestProcessWithOptions(t *testing.T) {
	result, err := ProcessWith(bytes.NewReader(createTestPNG(400, 200)), Options{MaxDimension: 100, Quality: 70})
	if err != nil {
		t.Fatalf("ProcessWith: %v", err)
	}
	w, h := decodeSize(t, result.Data)
	if w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %dx%d", w, h)
	}
}

func TestProcessSmallImageNotUpscaled(t *testing.T) {
	result, err := Process(bytes.NewReader(createTestJPEG(50, 50)))
	if err != nil {
		t.Fatalf("Process small image: %v", err)
	}
	if w, h := decodeSize(t, result.Data); w != 50 || h != 50 {
		t.Errorf("small image should not be resized: got %dx%d", w, h)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		w, h, size int
		want       int
	}{
		{800, 1200, 256, 256},
		{1200, 800, 256, 256},
		{100, 300, 256, 100},
	}

	for _, tt := range tests {
		result, err := Thumbnail(bytes.NewReader(createTestJPEG(tt.w, tt.h)), tt.size)
		if err != nil {
			t.Fatalf("Thumbnail(%dx%d): %v", tt.w, tt.h, err)
		}
		w, h := decodeSize(t, result.Data)
		if w != tt.want || h != tt.want {
			t.Errorf("Thumbnail(%dx%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.size, w, h, tt.want, tt.want)
		}
	}
}

func TestProcessInvalidFormat(t *testing.T) {
	_, err := Process(bytes.NewReader([]byte("not an image")))
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessGIFRejected(t *testing.T) {
	// GIF magic bytes.
	_, err := Process(bytes.NewReader([]byte("GIF89a...")))
	if err == nil {
		t.Error("expected error for GIF")
	}
}

func TestProcessTooLarge(t *testing.T) {
	data := make([]byte, MaxUploadBytes+10)
	_, err := Process(bytes.NewReader(data))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}
