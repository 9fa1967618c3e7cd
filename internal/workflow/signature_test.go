package workflow_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/kitelabs/kite/internal/workflow"
)

func TestBBoxValid(t *testing.T) {
	tests := []struct {
		name string
		box  workflow.BBox
		want bool
	}{
		{"valid box", workflow.BBox{0.6, 0.7, 0.9, 0.95}, true},
		{"full image", workflow.BBox{0, 0, 1, 1}, true},
		{"zero area", workflow.BBox{0.5, 0.5, 0.5, 0.9}, false},
		{"inverted x", workflow.BBox{0.9, 0.1, 0.2, 0.5}, false},
		{"negative coordinate", workflow.BBox{-0.1, 0.1, 0.5, 0.5}, false},
		{"out of range", workflow.BBox{0.1, 0.1, 1.2, 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBoxAbsolute(t *testing.T) {
	t.Run("padding applied", func(t *testing.T) {
		box := workflow.BBox{0.2, 0.2, 0.4, 0.4}
		rect := box.Absolute(1000, 500)

		// box is 200x100 px at (200,100)-(400,200);
		// pad x = 20 px, pad y = 15 px
		want := image.Rect(180, 85, 420, 215)
		if rect != want {
			t.Errorf("Absolute() = %v, want %v", rect, want)
		}
	})

	t.Run("clamped to image bounds", func(t *testing.T) {
		box := workflow.BBox{0, 0, 1, 1}
		rect := box.Absolute(800, 400)

		want := image.Rect(0, 0, 800, 400)
		if rect != want {
			t.Errorf("Absolute() = %v, want %v", rect, want)
		}
	})
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestCropSignature(t *testing.T) {
	t.Run("crops padded region", func(t *testing.T) {
		data := testPNG(t, 1000, 500)

		cropped, err := workflow.CropSignature(data, workflow.BBox{0.6, 0.7, 0.9, 0.9})
		if err != nil {
			t.Fatalf("CropSignature() error = %v", err)
		}

		img, err := png.Decode(bytes.NewReader(cropped))
		if err != nil {
			t.Fatalf("decode cropped image: %v", err)
		}

		// box 300x100 px, pad x = 30, pad y = 15
		bounds := img.Bounds()
		if bounds.Dx() != 360 || bounds.Dy() != 130 {
			t.Errorf("cropped size = %dx%d, want 360x130", bounds.Dx(), bounds.Dy())
		}
	})

	t.Run("invalid box rejected", func(t *testing.T) {
		data := testPNG(t, 100, 100)

		_, err := workflow.CropSignature(data, workflow.BBox{0.9, 0.1, 0.2, 0.5})
		if !errors.Is(err, workflow.ErrInvalidBBox) {
			t.Errorf("CropSignature() error = %v, want ErrInvalidBBox", err)
		}
	})

	t.Run("undecodable data rejected", func(t *testing.T) {
		_, err := workflow.CropSignature([]byte("not an image"), workflow.BBox{0.1, 0.1, 0.5, 0.5})
		if err == nil {
			t.Error("CropSignature() error = nil, want decode error")
		}
	})
}
