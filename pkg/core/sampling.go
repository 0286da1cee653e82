package core

import (
	"math/rand"
)

// Vec2 represents a 2D sample
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own source seeded by seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomRange returns a random float64 in [min, max)
func RandomRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3 returns a vector with each component in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return sampler.Get3D()
}

// RandomVec3Range returns a vector with each component in [min, max)
func RandomVec3Range(sampler Sampler, min, max float64) Vec3 {
	u := sampler.Get3D()
	return NewVec3(
		min+(max-min)*u.X,
		min+(max-min)*u.Y,
		min+(max-min)*u.Z,
	)
}

// RandomInUnitSphere generates a random point strictly inside the unit sphere
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3Range(sampler, -1, 1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector generates a random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// the origin itself has no direction
		if p.LengthSquared() > 0 {
			return p.Normalize()
		}
	}
}

// RandomInUnitDisk generates a random point in the z=0 unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		u := sampler.Get2D()
		p := NewVec3(2*u.X-1, 2*u.Y-1, 0)
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}
