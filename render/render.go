// Package render rasterizes pie charts into images. The chart engine only
// maintains wedge geometry; this package turns a snapshot of it into pixels
// with the x/image vector rasterizer.
//
// Wedge paths are in chart coordinates, so configure the chart with a Size
// matching the image dimensions.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sort"

	"golang.org/x/image/vector"

	"github.com/wedgelab/pie"
)

// Image rasterizes the chart's current wedges into a new RGBA image.
// Wedges paint back to front: removed wedges first, then unselected wedges
// in index order, then the selected wedge. Mid-animation snapshots render
// the live interpolated geometry.
func Image(c *pie.Chart, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	Draw(dst, c)
	return dst
}

// Draw rasterizes the chart's current wedges onto an existing image.
func Draw(dst draw.Image, c *pie.Chart) {
	views := c.Wedges()
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Layer < views[j].Layer
	})

	b := dst.Bounds()
	for _, v := range views {
		if v.Opacity <= 0 {
			continue
		}
		r := vector.NewRasterizer(b.Dx(), b.Dy())
		if !rasterizePath(r, v.Path) {
			continue
		}
		src := image.NewUniform(withOpacity(v.Color, v.Opacity))
		r.Draw(dst, b, src, image.Point{})
	}
}

// EncodePNG renders the chart and writes it as PNG.
func EncodePNG(w io.Writer, c *pie.Chart, width, height int) error {
	return png.Encode(w, Image(c, width, height))
}

// rasterizePath walks a wedge path into the rasterizer. Returns false for
// an empty path.
func rasterizePath(r *vector.Rasterizer, p *pie.Path) bool {
	elems := p.Elements()
	if len(elems) == 0 {
		return false
	}
	for _, e := range elems {
		switch el := e.(type) {
		case pie.MoveTo:
			r.MoveTo(float32(el.Point.X), float32(el.Point.Y))
		case pie.LineTo:
			r.LineTo(float32(el.Point.X), float32(el.Point.Y))
		case pie.CubicTo:
			r.CubeTo(
				float32(el.Control1.X), float32(el.Control1.Y),
				float32(el.Control2.X), float32(el.Control2.Y),
				float32(el.Point.X), float32(el.Point.Y),
			)
		case pie.Close:
			r.ClosePath()
		}
	}
	return true
}

// withOpacity scales a color's alpha by a wedge's live opacity.
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity >= 1 {
		return c
	}
	if opacity < 0 {
		opacity = 0
	}
	c.A = uint8(float64(c.A) * opacity)
	return c
}
