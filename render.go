package cityroads

import (
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

const renderPadding = 0.05

// RenderMap draws the given geometries as blue polylines on a white canvas and
// saves the result as PNG. Lon/lat are projected linearly onto pixels with
// independent per-axis scaling, the same way the original maps were plotted.
// An empty geometry set produces a blank canvas rather than an error.
func RenderMap(path string, geometries []Geometry, width int, height int) error {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	bound, err := boundOf(geometries)
	if err == nil {
		spanX := bound.Right() - bound.Left()
		spanY := bound.Top() - bound.Bottom()
		if spanX == 0 {
			spanX = 1
		}
		if spanY == 0 {
			spanY = 1
		}
		padX := float64(width) * renderPadding
		padY := float64(height) * renderPadding
		scaleX := (float64(width) - 2*padX) / spanX
		scaleY := (float64(height) - 2*padY) / spanY

		dc.SetRGB(0, 0, 0.8)
		dc.SetLineWidth(1)
		for _, geometry := range geometries {
			for i, pt := range geometry.Points {
				px := padX + (pt.X()-bound.Left())*scaleX
				// Pixel rows grow downwards, latitude grows upwards.
				py := float64(height) - padY - (pt.Y()-bound.Bottom())*scaleY
				if i == 0 {
					dc.MoveTo(px, py)
				} else {
					dc.LineTo(px, py)
				}
			}
			dc.Stroke()
		}
	}

	if err := dc.SavePNG(path); err != nil {
		return errors.Wrapf(err, "Can't save map to '%s'", path)
	}
	return nil
}
