// Package output receives quantized pixels from the renderer and encodes them.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnknownFormat is returned for an unsupported output format name
var ErrUnknownFormat = errors.New("unknown output format")

// Pixel is a quantized color with channels in [0, 255]
type Pixel struct {
	R, G, B uint8
}

// Sink receives pixels in row-major order, top row first
type Sink interface {
	// Begin is called once before any pixel with the image dimensions
	Begin(width, height int) error
	// WritePixel is called exactly width*height times
	WritePixel(p Pixel) error
	// End flushes and finalizes the output
	End() error
}

// Format names an output encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatPPM, FormatPNG, FormatBMP, FormatTIFF}
}

// ParseFormat resolves a case-insensitive format name or file extension
func ParseFormat(name string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(name), ".") {
	case "ppm", "p3":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// NewSink creates the sink for format writing to w.
// Caption is stamped onto image formats and ignored for PPM.
func NewSink(w io.Writer, format Format, caption string) (Sink, error) {
	if format == FormatPPM {
		return NewPPMSink(w), nil
	}
	sink, err := NewImageSink(w, format)
	if err != nil {
		return nil, err
	}
	sink.SetCaption(caption)
	return sink, nil
}
