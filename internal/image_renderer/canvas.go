package image_renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"letteravatar/internal/avatar"
)

// kappa places cubic Bézier control points so that four curves approximate
// a quarter ellipse each.
const kappa = 0.5522847498

// canvas is the drawing surface of a single render. It lives for the
// duration of one draw call and is discarded once encoded.
type canvas struct {
	img  *image.RGBA
	size int
}

func newCanvas(size int) *canvas {
	return &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, size, size)),
		size: size,
	}
}

func (c *canvas) fillBackground(shape avatar.Shape, bg color.Color) {
	if shape == avatar.ShapeCircle {
		c.fillEllipse(bg)
		return
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// fillEllipse fills the ellipse inscribed in the canvas bounds, anti-aliased.
func (c *canvas) fillEllipse(fill color.Color) {
	r := float32(c.size) / 2
	cx, cy := r, r
	k := float32(kappa) * r

	z := vector.NewRasterizer(c.size, c.size)
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(fill), image.Point{})
}

// drawText draws text so that its ink bounding box is centered on the canvas.
func (c *canvas) drawText(f *opentype.Font, text string, size float64, fill color.Color) error {
	if text == "" {
		return nil
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, text)
	textWidth := bounds.Max.X - bounds.Min.X
	textHeight := bounds.Max.Y - bounds.Min.Y
	if textWidth <= 0 || textHeight <= 0 {
		// Nothing visible to draw, e.g. a glyph missing from the font.
		return nil
	}

	canvasSize := fixed.I(c.size)
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(fill),
		Face: face,
		Dot: fixed.Point26_6{
			X: (canvasSize-textWidth)/2 - bounds.Min.X,
			Y: (canvasSize-textHeight)/2 - bounds.Min.Y,
		},
	}
	d.DrawString(text)
	return nil
}
