package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

const (
	gridMin         = -11
	gridMax         = 11 // exclusive
	smallRadius     = 0.2
	diffuseChance   = 0.8
	metalChanceEdge = 0.95 // diffuseChance..metalChanceEdge is metal, the rest glass
)

// NewRandomScene creates the classic field of small random spheres around three large ones.
// Every random draw comes from sampler, so a seeded sampler gives a reproducible layout.
func NewRandomScene(sampler core.Sampler) *Scene {
	cameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	s := newScene("random", cameraConfig, 400, 50, 50)

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5)))

	// Keep the small spheres clear of the large metal one
	clearing := core.NewVec3(4, smallRadius, 0)

	for a := gridMin; a < gridMax; a++ {
		for b := gridMin; b < gridMax; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				smallRadius,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat core.Material
			switch {
			case chooseMat < diffuseChance:
				albedo := core.RandomVec3(sampler).MultiplyVec(core.RandomVec3(sampler))
				mat = material.NewLambertian(albedo)
			case chooseMat < metalChanceEdge:
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				mat = material.MustMetal(albedo, fuzz)
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, smallRadius, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, material.MustMetal(core.NewColor(0.7, 0.6, 0.5), 0.0))

	return s
}
