package workflow

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg"
)

// Signature crop padding as fractions of the detected box dimensions.
// Horizontal padding is narrower than vertical because signatures extend
// further above and below the baseline than past their endpoints.
const (
	padFractionX = 0.10
	padFractionY = 0.15
)

// ErrInvalidBBox indicates the model returned a degenerate bounding box.
var ErrInvalidBBox = errors.New("invalid signature bounding box")

// BBox is a relative bounding box [x_min, y_min, x_max, y_max] with each
// coordinate expressed as a fraction of image width (x) or height (y).
type BBox [4]float64

// Valid reports whether the box has positive area within the unit square.
func (b BBox) Valid() bool {
	for _, v := range b {
		if v < 0 || v > 1 {
			return false
		}
	}
	return b[0] < b[2] && b[1] < b[3]
}

// Absolute converts the relative box to padded, clamped pixel coordinates
// for an image of the given dimensions.
func (b BBox) Absolute(width, height int) image.Rectangle {
	x0 := b[0] * float64(width)
	y0 := b[1] * float64(height)
	x1 := b[2] * float64(width)
	y1 := b[3] * float64(height)

	padX := (x1 - x0) * padFractionX
	padY := (y1 - y0) * padFractionY

	return image.Rect(
		clamp(int(x0-padX), 0, width),
		clamp(int(y0-padY), 0, height),
		clamp(int(x1+padX), 0, width),
		clamp(int(y1+padY), 0, height),
	)
}

// CropSignature decodes a cheque image, crops the padded signature region,
// and re-encodes it as PNG for model comparison.
func CropSignature(data []byte, box BBox) ([]byte, error) {
	if !box.Valid() {
		return nil, ErrInvalidBBox
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cheque image: %w", err)
	}

	bounds := img.Bounds()
	region := box.Absolute(bounds.Dx(), bounds.Dy()).Add(bounds.Min)
	if region.Empty() {
		return nil, ErrInvalidBBox
	}

	sub, ok := img.(interface {
		SubImage(image.Rectangle) image.Image
	})
	if !ok {
		return nil, fmt.Errorf("image type %T does not support cropping", img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, sub.SubImage(region)); err != nil {
		return nil, fmt.Errorf("encode signature crop: %w", err)
	}

	return buf.Bytes(), nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
