// Package images probes dimensions of embedded image payloads and
// rasterizes vector payloads the destination cannot display natively.
package images

import (
	"bytes"
	"image"
	"math"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/srwiley/oksvg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Dimensions returns pixel width and height of a binary image payload.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// SVGDimensions returns the intrinsic viewbox size of an SVG payload,
// rounded up to whole pixels. Zero dimensions mean the document does not
// declare a usable viewbox.
func SVGDimensions(data []byte) (int, int, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h, nil
}
