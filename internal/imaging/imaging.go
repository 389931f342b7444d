// Package imaging normalizes clothing photos before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxUploadBytes caps how much of a photo upload is read.
const MaxUploadBytes = 8 << 20

// ErrTooLarge is returned when the input exceeds MaxUploadBytes.
var ErrTooLarge = errors.New("image too large")

// Options control how photos are re-encoded.
type Options struct {
	MaxDimension int // longest side after downscaling
	Quality      int // JPEG quality, 1-100
}

// DefaultOptions suit a phone-sized wardrobe grid.
var DefaultOptions = Options{MaxDimension: 1024, Quality: 85}

// allowedMIME lists the accepted input MIME types.
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Result is an encoded photo.
type Result struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Process normalizes a photo with DefaultOptions.
func Process(r io.Reader) (*Result, error) {
	return ProcessWith(r, DefaultOptions)
}

// ProcessWith validates the format by sniffing bytes, downscales the image
// so neither side exceeds opts.MaxDimension and re-encodes it as JPEG.
func ProcessWith(r io.Reader, opts Options) (*Result, error) {
	img, err := decode(r)
	if err != nil {
		return nil, err
	}
	return encode(fit(img, opts.MaxDimension), opts.Quality)
}

// Thumbnail center-crops the photo to a square and scales it to size×size.
// Smaller photos are cropped but not upscaled.
func Thumbnail(r io.Reader, size int) (*Result, error) {
	img, err := decode(r)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	crop := image.Rect(0, 0, side, side).Add(image.Pt(
		b.Min.X+(b.Dx()-side)/2,
		b.Min.Y+(b.Dy()-side)/2,
	))

	out := min(side, size)
	dst := image.NewRGBA(image.Rect(0, 0, out, out))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, crop, draw.Over, nil)
	return encode(dst, DefaultOptions.Quality)
}

func decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, ErrTooLarge
	}

	// Sniff the real type; client-supplied headers are not trusted.
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

func encode(img image.Image, quality int) (*Result, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	b := img.Bounds()
	return &Result{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// fit resizes the image so neither dimension exceeds maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
