package core

// Hittable is anything a ray can intersect
type Hittable interface {
	// Hit returns the nearest intersection with t in [tMin, tMax].
	// The returned normal always faces against the ray.
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Material decides how a surface re-emits an incoming ray
type Material interface {
	// Scatter returns the attenuated outgoing ray. The bool is false when
	// the material absorbed the ray entirely.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray   // The outgoing ray
	Attenuation Color // Fraction of light kept per channel
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Point3   // Point of intersection
	Normal    Vec3     // Unit normal, facing against the ray
	T         float64  // Parameter t along the ray
	FrontFace bool     // Whether the ray approached from the outward side
	Material  Material // Material of the hit object, shared and read-only
}

// SetFaceNormal orients the normal against the ray and records which side was hit.
// A ray perpendicular to the outward normal counts as front facing.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) <= 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
