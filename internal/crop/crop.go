package crop

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var ErrInvalidImage = errors.New("invalid image")

// Tag names one of the two fixed screenshot regions.
type Tag string

const (
	BaselineRegion  Tag = "baseline-region"
	MaterialsRegion Tag = "materials-region"
)

// Region is one cropped slice of the screenshot, re-encoded for upload.
type Region struct {
	Tag  Tag
	Rect image.Rectangle
	JPEG []byte
}

// Rects returns the two fixed fractional rectangles for a w×h screenshot:
// the left-half band at [15%,30%] of height carries the baseline score, the
// full-width band at [75%,87%] the four box counts.
func Rects(w, h int) (baseline, materials image.Rectangle) {
	baseline = image.Rect(0, int(float64(h)*0.15), int(float64(w)*0.5), int(float64(h)*0.30))
	materials = image.Rect(0, int(float64(h)*0.75), w, int(float64(h)*0.87))
	return baseline, materials
}

// Extract decodes a screenshot and crops both regions. Pure function of the
// image bytes; the same input always yields the same rectangles and output.
func Extract(data []byte) (baseline, materials Region, err error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Region{}, Region{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return Region{}, Region{}, fmt.Errorf("%w: zero dimensions", ErrInvalidImage)
	}

	baseRect, matRect := Rects(w, h)
	baseline, err = encode(BaselineRegion, img, baseRect)
	if err != nil {
		return Region{}, Region{}, err
	}
	materials, err = encode(MaterialsRegion, img, matRect)
	if err != nil {
		return Region{}, Region{}, err
	}
	return baseline, materials, nil
}

func encode(tag Tag, img image.Image, rect image.Rectangle) (Region, error) {
	cropped := imaging.Crop(img, rect)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return Region{}, fmt.Errorf("encode %s: %w", tag, err)
	}
	return Region{Tag: tag, Rect: rect, JPEG: buf.Bytes()}, nil
}
