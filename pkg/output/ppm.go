package output

import (
	"bufio"
	"fmt"
	"image"
	"io"
)

// PPMSink streams pixels as plain-text PPM (P3)
type PPMSink struct {
	w             *bufio.Writer
	width, height int
	written       int
}

// NewPPMSink creates a sink writing to w
func NewPPMSink(w io.Writer) *PPMSink {
	return &PPMSink{w: bufio.NewWriter(w)}
}

// Begin writes the three-line header
func (s *PPMSink) Begin(width, height int) error {
	s.width, s.height, s.written = width, height, 0
	if _, err := fmt.Fprintf(s.w, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}
	return nil
}

// WritePixel writes one "r g b" line
func (s *PPMSink) WritePixel(p Pixel) error {
	if s.written >= s.width*s.height {
		return fmt.Errorf("ppm: pixel %d exceeds %dx%d image", s.written+1, s.width, s.height)
	}
	if _, err := fmt.Fprintf(s.w, "%d %d %d\n", p.R, p.G, p.B); err != nil {
		return fmt.Errorf("failed to write ppm pixel: %w", err)
	}
	s.written++
	return nil
}

// End flushes buffered output
func (s *PPMSink) End() error {
	if s.written != s.width*s.height {
		return fmt.Errorf("ppm: wrote %d of %d pixels", s.written, s.width*s.height)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush ppm output: %w", err)
	}
	return nil
}

// EncodePPM writes img as plain-text PPM, ignoring alpha
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	sink := NewPPMSink(w)
	if err := sink.Begin(bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if err := sink.WritePixel(Pixel{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}); err != nil {
				return err
			}
		}
	}
	return sink.End()
}
