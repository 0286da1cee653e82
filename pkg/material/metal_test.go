package material

import (
	"errors"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestNewMetal_FuzzValidation(t *testing.T) {
	tests := []struct {
		name        string
		fuzz        float64
		expectError bool
	}{
		{"Valid fuzz 0.0", 0.0, false},
		{"Valid fuzz 0.5", 0.5, false},
		{"Valid fuzz 1.0", 1.0, false},
		{"Above 1.0", 1.5, true},
		{"Below 0.0", -0.5, true},
		{"Tiny negative", -1e-12, true},
		{"NaN", nan(), true},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal, err := NewMetal(albedo, tt.fuzz)
			if tt.expectError {
				if !errors.Is(err, ErrInvalidFuzz) {
					t.Errorf("Expected ErrInvalidFuzz, got %v", err)
				}
				if metal != nil {
					t.Errorf("Expected nil metal for fuzz %f", tt.fuzz)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if metal.Fuzz != tt.fuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.fuzz, metal.Fuzz)
			}
		})
	}
}

func TestMustMetal_PanicsOnInvalidFuzz(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustMetal to panic for fuzz 2")
		}
	}()
	MustMetal(core.NewColor(1, 1, 1), 2)
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.9, 0.9)
	metal := MustMetal(albedo, 0.0)

	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -2, -3))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	// A perfect mirror is deterministic, so no sampler is needed
	scatter, didScatter := metal.Scatter(rayIn, hit, nil)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.Reflect(rayIn.Direction, hit.Normal)
	if !scatter.Scattered.Direction.Equals(expected) {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if !expected.Equals(core.NewVec3(0, -2, 3)) {
		t.Errorf("Unexpected mirror direction %v", expected)
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
	if !scatter.Scattered.Origin.Equals(hit.Point) {
		t.Errorf("Scattered ray should start at the hit point, got %v", scatter.Scattered.Origin)
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	albedo := core.NewColor(0.8, 0.8, 0.8)
	fuzz := 0.5
	metal := MustMetal(albedo, fuzz)
	sampler := core.NewSeededSampler(42)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
	mirror := core.Reflect(rayIn.Direction, hit.Normal)

	directions := make([]core.Vec3, 10)
	for i := range directions {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatalf("Metal should scatter on iteration %d", i)
		}
		directions[i] = scatter.Scattered.Direction

		if d := directions[i].Subtract(mirror).Length(); d >= fuzz {
			t.Errorf("Perturbation %f should stay within the fuzz radius %f", d, fuzz)
		}
	}

	allSame := true
	for i := 1; i < len(directions); i++ {
		if !directions[i].Equals(directions[0]) {
			allSame = false
			break
		}
	}
	if allSame {
		t.Error("Fuzzy metal should produce varying reflection directions")
	}
}
