package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageSink collects pixels into an RGBA image and encodes it on End
type ImageSink struct {
	w       io.Writer
	format  Format
	caption string
	img     *image.RGBA
	x, y    int
}

// NewImageSink creates a sink encoding to format. PPM is not an image format here; use NewPPMSink.
func NewImageSink(w io.Writer, format Format) (*ImageSink, error) {
	switch format {
	case FormatPNG, FormatBMP, FormatTIFF:
	default:
		return nil, fmt.Errorf("%w: %q is not an image format", ErrUnknownFormat, format)
	}
	return &ImageSink{w: w, format: format}, nil
}

// SetCaption sets text stamped into the lower-left corner before encoding
func (s *ImageSink) SetCaption(caption string) {
	s.caption = caption
}

// Begin allocates the image
func (s *ImageSink) Begin(width, height int) error {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.x, s.y = 0, 0
	return nil
}

// WritePixel stores the next pixel in row-major order
func (s *ImageSink) WritePixel(p Pixel) error {
	if s.img == nil {
		return fmt.Errorf("%s: WritePixel called before Begin", s.format)
	}
	bounds := s.img.Bounds()
	if s.y >= bounds.Dy() {
		return fmt.Errorf("%s: pixel beyond %dx%d image", s.format, bounds.Dx(), bounds.Dy())
	}
	s.img.SetRGBA(s.x, s.y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
	s.x++
	if s.x == bounds.Dx() {
		s.x = 0
		s.y++
	}
	return nil
}

// End stamps the caption and encodes the image
func (s *ImageSink) End() error {
	if s.img == nil {
		return fmt.Errorf("%s: End called before Begin", s.format)
	}
	if s.y != s.img.Bounds().Dy() {
		return fmt.Errorf("%s: image incomplete, stopped at row %d", s.format, s.y)
	}
	if s.caption != "" {
		DrawCaption(s.img, s.caption)
	}
	return Encode(s.w, s.img, s.format)
}

// Image returns the collected image
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}

// Encode writes img to w in format
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatBMP:
		err = bmp.Encode(w, img)
	case FormatTIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatPPM:
		err = EncodePPM(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}
