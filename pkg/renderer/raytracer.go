package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/output"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate reports the first non-positive field
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// HeightForAspect returns the image height for width at aspectRatio, at least 1
func HeightForAspect(width int, aspectRatio float64) int {
	return max(1, int(math.Round(float64(width)/aspectRatio)))
}

// Raytracer renders a world through a camera, one pixel at a time
type Raytracer struct {
	world      core.Hittable
	camera     *geometry.Camera
	config     SamplingConfig
	integrator integrator.Integrator
	sampler    core.Sampler
	logger     *slog.Logger
}

// NewRaytracer creates a new raytracer using path tracing with the default background
func NewRaytracer(world core.Hittable, camera *geometry.Camera, config SamplingConfig, sampler core.Sampler) *Raytracer {
	return &Raytracer{
		world:  world,
		camera: camera,
		config: config,
		integrator: integrator.NewPathTracingIntegrator(integrator.Config{
			MaxDepth:   config.MaxDepth,
			Background: integrator.DefaultBackground(),
		}),
		sampler: sampler,
		logger:  core.NopLogger(),
	}
}

// SetLogger sets the logger for progress output; nil silences it
func (rt *Raytracer) SetLogger(logger *slog.Logger) {
	rt.logger = core.LoggerOrNop(logger)
}

// SetBackground switches to a path tracer with the given background
func (rt *Raytracer) SetBackground(background integrator.Background) {
	rt.integrator = integrator.NewPathTracingIntegrator(integrator.Config{
		MaxDepth:   rt.config.MaxDepth,
		Background: background,
	})
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// SamplePixel accumulates SamplesPerPixel jittered samples for pixel column x of image row y,
// where y counts up from the bottom row.
func (rt *Raytracer) SamplePixel(x, y int) PixelStats {
	var stats PixelStats

	// A single column or row has no extent to spread over
	sDenom := float64(max(rt.config.Width-1, 1))
	tDenom := float64(max(rt.config.Height-1, 1))

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		s := (float64(x) + rt.sampler.Get1D()) / sDenom
		t := (float64(y) + rt.sampler.Get1D()) / tDenom

		ray := rt.camera.GetRay(s, t, rt.sampler)
		stats.AddSample(rt.integrator.RayColor(ray, rt.world, rt.sampler))
	}

	return stats
}

// Render traces every pixel and streams the quantized colors to sink, top row first.
// ctx is checked between scanlines.
func (rt *Raytracer) Render(ctx context.Context, sink output.Sink) (RenderStats, error) {
	stats := RenderStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
	}
	if err := rt.config.Validate(); err != nil {
		return stats, fmt.Errorf("invalid sampling config: %w", err)
	}

	startTime := time.Now()
	if err := sink.Begin(rt.config.Width, rt.config.Height); err != nil {
		return stats, err
	}

	for j := rt.config.Height - 1; j >= 0; j-- {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(startTime)
			return stats, fmt.Errorf("render aborted with %d scanlines left: %w", j+1, err)
		}
		rt.logger.Debug("rendering scanline", "remaining", j+1)

		for i := 0; i < rt.config.Width; i++ {
			pixel := rt.SamplePixel(i, j)
			if err := sink.WritePixel(QuantizeColor(pixel.ColorAccum, pixel.SampleCount)); err != nil {
				return stats, err
			}
			stats.TotalPixels++
			stats.TotalSamples += pixel.SampleCount
		}
	}

	if err := sink.End(); err != nil {
		return stats, err
	}
	stats.Elapsed = time.Since(startTime)

	rt.logSummary(stats)
	return stats, nil
}

// logSummary reports totals with locale-style digit grouping
func (rt *Raytracer) logSummary(stats RenderStats) {
	p := message.NewPrinter(language.English)
	rt.logger.Info("render complete",
		"size", fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		"pixels", p.Sprintf("%d", stats.TotalPixels),
		"samples", p.Sprintf("%d", stats.TotalSamples),
		"elapsed", stats.Elapsed.Round(time.Millisecond),
	)
}

// QuantizeColor averages a summed color over samples, applies gamma 2
// and maps each channel to [0, 255].
func QuantizeColor(sum core.Color, samples int) output.Pixel {
	scale := 1.0 / float64(samples)
	return output.Pixel{
		R: quantizeChannel(sum.X * scale),
		G: quantizeChannel(sum.Y * scale),
		B: quantizeChannel(sum.Z * scale),
	}
}

func quantizeChannel(c float64) uint8 {
	v := math.Sqrt(c)
	if math.IsNaN(v) {
		v = 0
	}
	return uint8(256 * mgl64.Clamp(v, 0.0, 0.999))
}

// IsAborted reports whether err came from a cancelled or expired render context
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
