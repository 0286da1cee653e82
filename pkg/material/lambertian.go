package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a diffuse material
type Lambertian struct {
	Albedo core.Color // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering.
// The direction is the normal plus a uniform point on the unit sphere, which
// approximates a cosine-weighted lobe. It can graze the surface but never points below it.
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// Opposite vectors cancel into a degenerate ray
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}
