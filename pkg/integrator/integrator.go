package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along ray from world
	RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Color
}

// Background is a vertical gradient returned for rays that escape the scene
type Background struct {
	Top    core.Color // Color for rays pointing straight up
	Bottom core.Color // Color for rays pointing straight down
}

// DefaultBackground returns the white-to-sky-blue gradient
func DefaultBackground() Background {
	return Background{
		Top:    core.NewColor(0.5, 0.7, 1.0),
		Bottom: core.NewColor(1.0, 1.0, 1.0),
	}
}

// Color returns the gradient color for the direction of r
func (b Background) Color(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}
