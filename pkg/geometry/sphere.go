package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Sphere represents a sphere shape.
// A negative radius flips the outward normal, which models the inner wall of a hollow glass shell.
type Sphere struct {
	Center   core.Point3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Point3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere.
// It panics when tMax < tMin.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if tMax < tMin {
		panic(fmt.Sprintf("geometry: sphere hit with tMax %g < tMin %g", tMax, tMin))
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	// Zero-length direction or zero radius has no usable root or normal
	if a == 0 || s.Radius == 0 {
		return nil, false
	}

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hitRecord := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Dividing by the signed radius yields a unit normal that points inward for hollow spheres
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
