package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ShadowAcneEpsilon is the minimum hit distance for traced rays.
// It keeps a scattered ray from re-hitting the surface it left.
const ShadowAcneEpsilon = 1e-5

// Config contains path tracing configuration
type Config struct {
	MaxDepth   int        // Maximum ray bounce depth
	Background Background // Color for escaped rays
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   50,
		Background: DefaultBackground(),
	}
}

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the integrator configuration
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor computes the color for a single ray, bouncing at most MaxDepth times
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Color {
	return pt.rayColor(ray, world, sampler, pt.config.MaxDepth)
}

func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world core.Hittable, sampler core.Sampler, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.config.Background.Color(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{}
	}

	return scatter.Attenuation.MultiplyVec(pt.rayColor(scatter.Scattered, world, sampler, depth-1))
}
