package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidFuzz is returned when a metal's fuzz lies outside [0, 1]
var ErrInvalidFuzz = errors.New("metal fuzz must be in [0, 1]")

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Color // Metal color
	Fuzz   float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material.
// Fuzz outside [0, 1] is rejected, never clamped.
func NewMetal(albedo core.Color, fuzz float64) (*Metal, error) {
	if !(fuzz >= 0 && fuzz <= 1) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidFuzz, fuzz)
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}, nil
}

// MustMetal is like NewMetal but panics on invalid fuzz
func MustMetal(albedo core.Color, fuzz float64) *Metal {
	m, err := NewMetal(albedo, fuzz)
	if err != nil {
		panic(err)
	}
	return m
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction, hit.Normal)

	// A perfect mirror draws no randomness
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected),
		Attenuation: m.Albedo,
	}, true
}
