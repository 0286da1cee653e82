package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewHollowGlassScene creates a row of spheres on a green ground with a hollow glass
// shell around a small blue sphere, viewed nearly pinhole.
func NewHollowGlassScene() *Scene {
	cameraConfig := geometry.CameraConfig{
		LookFrom:      core.NewVec3(0, 0.75, 2), // Higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Center sphere
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	s := newScene("hollow-glass", cameraConfig, 400, 100, 50)

	lambertianGreen := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewColor(0.65, 0.25, 0.2))
	metalSilver := material.MustMetal(core.NewColor(0.8, 0.8, 0.8), 0.0)
	metalGold := material.MustMetal(core.NewColor(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	// Ground sphere large enough to read as a plane
	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, lambertianGreen)

	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass)

	// Hollow glass sphere with blue sphere inside
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, materialGlass)
	s.AddSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	return s
}
