package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewThreeSpheresScene creates a diffuse, a hollow glass and a polished gold sphere
// resting on a large yellow-green ground sphere, viewed from above with a wide aperture.
func NewThreeSpheresScene() *Scene {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)

	cameraConfig := geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          30.0,
		AspectRatio:   16.0 / 9.0,
		Aperture:      2.0,
		FocusDistance: lookFrom.Subtract(lookAt).Length(),
	}

	s := newScene("three-spheres", cameraConfig, 400, 15, 15)

	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	materialGold := material.MustMetal(core.NewColor(0.8, 0.6, 0.2), 0.0)

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, materialGround)
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, materialCenter)

	// Negative radius flips the normals inward, leaving a glass shell
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass)
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, materialGlass)

	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, materialGold)

	return s
}
