package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.HittableList // Objects in the scene
	CameraConfig   geometry.CameraConfig
	SamplingConfig renderer.SamplingConfig // Recommended sampling, Height derived from the camera aspect
	Background     integrator.Background   // Sky seen by escaping rays
}

// newScene creates an empty scene with the default sky and its height derived from width
func newScene(name string, cameraConfig geometry.CameraConfig, width, samplesPerPixel, maxDepth int) *Scene {
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: cameraConfig,
		SamplingConfig: renderer.SamplingConfig{
			Width:           width,
			Height:          renderer.HeightForAspect(width, cameraConfig.AspectRatio),
			SamplesPerPixel: samplesPerPixel,
			MaxDepth:        maxDepth,
		},
		Background: integrator.DefaultBackground(),
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Point3, radius float64, material core.Material) {
	s.World.Add(geometry.NewSphere(center, radius, material))
}

// Camera builds the camera for this scene
func (s *Scene) Camera() *geometry.Camera {
	return geometry.NewCamera(s.CameraConfig)
}

// Sampling returns the scene's sampling config with any non-zero override applied.
// Height always follows the width and the camera aspect ratio.
func (s *Scene) Sampling(width, samplesPerPixel, maxDepth int) renderer.SamplingConfig {
	config := s.SamplingConfig
	if width != 0 {
		config.Width = width
	}
	if samplesPerPixel != 0 {
		config.SamplesPerPixel = samplesPerPixel
	}
	if maxDepth != 0 {
		config.MaxDepth = maxDepth
	}
	config.Height = renderer.HeightForAspect(config.Width, s.CameraConfig.AspectRatio)
	return config
}

// NewRaytracer wires the scene's world, camera and background into a raytracer
func (s *Scene) NewRaytracer(config renderer.SamplingConfig, sampler core.Sampler) *renderer.Raytracer {
	rt := renderer.NewRaytracer(s.World, s.Camera(), config, sampler)
	rt.SetBackground(s.Background)
	return rt
}

// GetPrimitiveCount returns the total number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
