package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

const minimalSceneJSON = `{
  "camera": {"lookFrom": [0, 0, 0], "lookAt": [0, 0, -1], "up": [0, 1, 0], "vfov": 90, "aspectRatio": 2},
  "materials": {"red": {"type": "lambertian", "albedo": [1, 0, 0]}},
  "spheres": [{"center": [0, 0, -1], "radius": 0.5, "material": "red"}]
}`

func TestParseJSON_Minimal(t *testing.T) {
	s, err := ParseJSON(strings.NewReader(minimalSceneJSON))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	if s.GetPrimitiveCount() != 1 {
		t.Errorf("Expected 1 sphere, got %d", s.GetPrimitiveCount())
	}
	// Unset sampling falls back to the renderer defaults
	if s.SamplingConfig.Width != 400 || s.SamplingConfig.Height != 200 {
		t.Errorf("Expected 400x200, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if s.SamplingConfig.SamplesPerPixel != 100 || s.SamplingConfig.MaxDepth != 50 {
		t.Errorf("Unexpected sampling defaults: %+v", s.SamplingConfig)
	}
	if !s.Background.Top.Equals(core.NewColor(0.5, 0.7, 1.0)) {
		t.Errorf("Expected default sky, got %v", s.Background.Top)
	}
}

func TestParseJSON_SharedMaterials(t *testing.T) {
	input := `{
	  "name": "Shared",
	  "camera": {"lookFrom": [0, 1, 3], "lookAt": [0, 0, 0], "up": [0, 1, 0], "vfov": 40, "aspectRatio": 1.5, "aperture": 0.1, "focusDistance": 3},
	  "sampling": {"width": 120, "samplesPerPixel": 8, "maxDepth": 4},
	  "background": {"top": [0, 0, 0], "bottom": [1, 0.5, 0]},
	  "materials": {
	    "glass": {"type": "dielectric", "refractiveIndex": 1.5},
	    "gold": {"type": "metal", "albedo": [0.8, 0.6, 0.2], "fuzz": 0.3}
	  },
	  "spheres": [
	    {"center": [0, 0, 0], "radius": 0.5, "material": "glass"},
	    {"center": [0, 0, 0], "radius": -0.45, "material": "glass"},
	    {"center": [1, 0, 0], "radius": 0.5, "material": "gold"}
	  ]
	}`

	s, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	if s.Name != "Shared" {
		t.Errorf("Expected name Shared, got %q", s.Name)
	}
	if s.SamplingConfig.Width != 120 || s.SamplingConfig.Height != 80 {
		t.Errorf("Expected 120x80, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}
	if !s.Background.Bottom.Equals(core.NewColor(1, 0.5, 0)) {
		t.Errorf("Expected custom background bottom, got %v", s.Background.Bottom)
	}
	if s.CameraConfig.Aperture != 0.1 || s.CameraConfig.FocusDistance != 3 {
		t.Errorf("Unexpected camera config %+v", s.CameraConfig)
	}

	outer := s.World.Objects[0].(*geometry.Sphere)
	inner := s.World.Objects[1].(*geometry.Sphere)
	if outer.Material != inner.Material {
		t.Error("Spheres naming the same material should share it")
	}
	gold, ok := s.World.Objects[2].(*geometry.Sphere).Material.(*material.Metal)
	if !ok || gold.Fuzz != 0.3 {
		t.Errorf("Expected metal with fuzz 0.3, got %#v", s.World.Objects[2].(*geometry.Sphere).Material)
	}
}

func TestParseJSON_Errors(t *testing.T) {
	camera := `"camera": {"lookFrom": [0, 0, 0], "lookAt": [0, 0, -1], "up": [0, 1, 0], "vfov": 90, "aspectRatio": 2}`
	sphere := `"spheres": [{"center": [0, 0, -1], "radius": 0.5, "material": "m"}]`

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"malformed", `{`, "decode"},
		{"unknown field", `{"colour": 1}`, "unknown field"},
		{"bad vfov", `{"camera": {"lookFrom": [0,0,0], "lookAt": [0,0,-1], "up": [0,1,0], "vfov": 0, "aspectRatio": 2}}`, "vfov"},
		{"bad aspect", `{"camera": {"lookFrom": [0,0,0], "lookAt": [0,0,-1], "up": [0,1,0], "vfov": 90}}`, "aspectRatio"},
		{"coincident eye", `{"camera": {"lookFrom": [1,1,1], "lookAt": [1,1,1], "up": [0,1,0], "vfov": 90, "aspectRatio": 1}}`, "lookAt"},
		{"parallel up", `{"camera": {"lookFrom": [0,0,0], "lookAt": [0,-1,0], "up": [0,1,0], "vfov": 90, "aspectRatio": 1}}`, "parallel"},
		{"unknown material type", `{` + camera + `, "materials": {"m": {"type": "plastic"}}, ` + sphere + `}`, "unknown material type"},
		{"bad index", `{` + camera + `, "materials": {"m": {"type": "glass"}}, ` + sphere + `}`, "refractiveIndex"},
		{"missing material", `{` + camera + `, "materials": {}, ` + sphere + `}`, "unknown material"},
		{"no spheres", `{` + camera + `, "materials": {}}`, "no spheres"},
		{"negative samples", `{` + camera + `, "sampling": {"samplesPerPixel": -1}, "materials": {}, ` + sphere + `}`, "sampling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseJSON_InvalidFuzz(t *testing.T) {
	input := `{
	  "camera": {"lookFrom": [0, 0, 0], "lookAt": [0, 0, -1], "up": [0, 1, 0], "vfov": 90, "aspectRatio": 1},
	  "materials": {"m": {"type": "metal", "albedo": [1, 1, 1], "fuzz": 1.5}},
	  "spheres": [{"center": [0, 0, -1], "radius": 0.5, "material": "m"}]
	}`

	_, err := ParseJSON(strings.NewReader(input))
	if !errors.Is(err, material.ErrInvalidFuzz) {
		t.Errorf("Expected ErrInvalidFuzz, got %v", err)
	}
}
