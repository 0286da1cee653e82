package output

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionPadding = 3

// DrawCaption stamps text in the lower-left corner of img on a dark band.
// Text wider than the image is clipped.
func DrawCaption(img draw.Image, text string) {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	bounds := img.Bounds()

	textWidth := font.MeasureString(face, text).Ceil()
	bandHeight := metrics.Height.Ceil() + 2*captionPadding
	band := image.Rect(
		bounds.Min.X,
		bounds.Max.Y-bandHeight,
		bounds.Min.X+textWidth+2*captionPadding,
		bounds.Max.Y,
	).Intersect(bounds)

	draw.Draw(img, band, image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(bounds.Min.X + captionPadding),
			Y: fixed.I(bounds.Max.Y-captionPadding) - metrics.Descent,
		},
	}
	d.DrawString(text)
}
