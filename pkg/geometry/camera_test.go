package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
)

// centerSampler always returns 0.5, which maps to the center of the lens disk
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

func TestCamera_PinholeRays(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   2,
		Aperture:      0,
		FocusDistance: 1,
	})

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, core.NewSeededSampler(1))
			if !ray.Origin.Equals(core.NewVec3(0, 0, 0)) {
				t.Errorf("Pinhole ray should start at the camera, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(tt.direction).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_AutoFocusDistance(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(3, 3, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30,
		AspectRatio: 16.0 / 9.0,
		Aperture:    2.0,
	})

	if got := camera.Config().FocusDistance; !mgl64.FloatEqualThreshold(got, math.Sqrt(27), 1e-12) {
		t.Errorf("Expected focus distance sqrt(27), got %f", got)
	}
	if camera.LensRadius() != 1.0 {
		t.Errorf("Expected lens radius 1, got %f", camera.LensRadius())
	}
}

func TestCamera_DepthOfFieldConvergesOnFocusPlane(t *testing.T) {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)
	camera := NewCamera(CameraConfig{
		LookFrom:    lookFrom,
		LookAt:      lookAt,
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30,
		AspectRatio: 16.0 / 9.0,
		Aperture:    2.0,
	})
	sampler := core.NewSeededSampler(42)

	sawOffset := false
	for i := 0; i < 200; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		// Every lens sample for the image center passes through the focused LookAt point
		if p := ray.At(1); p.Subtract(lookAt).Length() > 1e-9 {
			t.Fatalf("Ray %d misses the focus point: %v", i, p)
		}

		offset := ray.Origin.Subtract(lookFrom)
		if offset.Length() > camera.LensRadius()+1e-12 {
			t.Fatalf("Lens offset %v exceeds lens radius", offset)
		}
		// Offsets lie in the lens plane, perpendicular to the view direction
		if math.Abs(offset.Dot(lookAt.Subtract(lookFrom).Normalize())) > 1e-9 {
			t.Fatalf("Lens offset %v leaves the lens plane", offset)
		}
		if offset.Length() > 1e-6 {
			sawOffset = true
		}
	}
	if !sawOffset {
		t.Error("Expected a non-zero aperture to move ray origins")
	}
}

func TestCamera_CenterLensSample(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 1, 5),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
		Aperture:    0.5,
	})

	ray := camera.GetRay(0.5, 0.5, centerSampler{})
	if !ray.Origin.Equals(core.NewVec3(0, 1, 5)) {
		t.Errorf("Lens center sample should start at the camera, got %v", ray.Origin)
	}
	if ray.Direction.Normalize().Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected ray towards -z, got %v", ray.Direction)
	}
}
