package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes a thin-lens camera
type CameraConfig struct {
	LookFrom      core.Point3 // Camera position
	LookAt        core.Point3 // Point the camera faces
	Up            core.Vec3   // View-up direction
	VFov          float64     // Vertical field of view in degrees
	AspectRatio   float64     // Width / height
	Aperture      float64     // Lens diameter; 0 gives a pinhole camera
	FocusDistance float64     // Distance to the plane in focus; <= 0 focuses on LookAt
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Point3
	lowerLeftCorner core.Point3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
	config          CameraConfig
}

// NewCamera derives the viewport geometry from config
func NewCamera(config CameraConfig) *Camera {
	if config.FocusDistance <= 0 {
		config.FocusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	theta := mgl64.DegToRad(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := viewportHeight * config.AspectRatio

	// Orthonormal basis: w points backwards, u right, v up
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth * config.FocusDistance)
	vertical := v.Multiply(viewportHeight * config.FocusDistance)
	lowerLeftCorner := config.LookFrom.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		origin:          config.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		config:          config,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1.
// (0, 0) aims at the lower-left corner of the focus plane and (1, 1) at the upper-right.
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction)
}

// Config returns the configuration with the resolved focus distance
func (c *Camera) Config() CameraConfig {
	return c.config
}

// LensRadius returns half the aperture
func (c *Camera) LensRadius() float64 {
	return c.lensRadius
}
