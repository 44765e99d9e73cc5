package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// defaultSVGSize is used when the SVG viewBox carries no usable size.
const defaultSVGSize = 1024

// RasterizeSVGToPNG renders an SVG payload to a PNG bitmap at its intrinsic
// size. maxDim clamps the larger output dimension, preserving aspect ratio,
// so an enormous viewBox cannot allocate unbounded buffers.
func RasterizeSVGToPNG(svgData []byte, maxDim int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 {
		w = defaultSVGSize
	}
	if h <= 0 {
		h = defaultSVGSize
	}

	if maxDim > 0 && (w > maxDim || h > maxDim) {
		s := min(float64(maxDim)/float64(w), float64(maxDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, dst, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
