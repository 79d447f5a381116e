// Package svg rasterizes SVG assets into images for sprite components.
package svg

import (
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/go-tide/tide/pkg/errors"
)

// Rasterize parses an SVG document and renders it into an RGBA image of the
// given dimensions.
func Rasterize(r io.Reader, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Configf("svg.Rasterize", "invalid raster size %dx%d", width, height)
	}

	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, errors.Loadf("svg.Rasterize", "parse svg: %v", err)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1.0)
	return img, nil
}
