package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of camera rays traced
	SamplesPerPixel int           // Samples taken for every pixel
	MaxDepth        int           // Bounce budget per sample
	Elapsed         time.Duration // Wall time spent rendering
}

// AverageSamples returns the mean samples per rendered pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Color // Sum of sample colors
	SampleCount int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}
