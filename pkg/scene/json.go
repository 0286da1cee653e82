package scene

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Vec3JSON is a vector written as [x, y, z]
type Vec3JSON [3]float64

func (v Vec3JSON) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraJSON struct {
	LookFrom      Vec3JSON `json:"lookFrom"`
	LookAt        Vec3JSON `json:"lookAt"`
	Up            Vec3JSON `json:"up"`
	VFov          float64  `json:"vfov"`
	AspectRatio   float64  `json:"aspectRatio"`
	Aperture      float64  `json:"aperture,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"` // 0 focuses on lookAt
}

type SamplingJSON struct {
	Width           int `json:"width,omitempty"`
	SamplesPerPixel int `json:"samplesPerPixel,omitempty"`
	MaxDepth        int `json:"maxDepth,omitempty"`
}

type BackgroundJSON struct {
	Top    Vec3JSON `json:"top"`
	Bottom Vec3JSON `json:"bottom"`
}

// MaterialJSON describes one named material; which fields apply depends on Type
type MaterialJSON struct {
	Type            string   `json:"type"` // "lambertian", "metal" or "dielectric"
	Albedo          Vec3JSON `json:"albedo,omitempty"`
	Fuzz            float64  `json:"fuzz,omitempty"`
	RefractiveIndex float64  `json:"refractiveIndex,omitempty"`
}

type SphereJSON struct {
	Center   Vec3JSON `json:"center"`
	Radius   float64  `json:"radius"`
	Material string   `json:"material"` // Name in the materials table
}

// SceneJSON is the on-disk scene description
type SceneJSON struct {
	Name        string                  `json:"name,omitempty"`
	Description string                  `json:"description,omitempty"`
	Camera      CameraJSON              `json:"camera"`
	Sampling    SamplingJSON            `json:"sampling,omitempty"`
	Background  *BackgroundJSON         `json:"background,omitempty"`
	Materials   map[string]MaterialJSON `json:"materials"`
	Spheres     []SphereJSON            `json:"spheres"`
}

// LoadJSON reads and builds a scene file. The scene is named after the file
// unless the file names itself.
func LoadJSON(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := ParseJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// ParseJSON decodes a scene description and builds it
func ParseJSON(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg SceneJSON
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return cfg.Build()
}

// Build validates the description and constructs the scene
func (cfg SceneJSON) Build() (*Scene, error) {
	cameraConfig, err := cfg.Camera.build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	defaults := renderer.DefaultSamplingConfig()
	width := cmp.Or(cfg.Sampling.Width, defaults.Width)
	spp := cmp.Or(cfg.Sampling.SamplesPerPixel, defaults.SamplesPerPixel)
	depth := cmp.Or(cfg.Sampling.MaxDepth, defaults.MaxDepth)
	if width < 0 || spp < 0 || depth < 0 {
		return nil, fmt.Errorf("sampling values must be positive, got %+v", cfg.Sampling)
	}

	s := newScene(cfg.Name, cameraConfig, width, spp, depth)
	if cfg.Background != nil {
		s.Background = integrator.Background{
			Top:    cfg.Background.Top.Vec3(),
			Bottom: cfg.Background.Bottom.Vec3(),
		}
	}

	// Materials are built once so spheres naming the same material share it
	materials := make(map[string]core.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		m, err := mc.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}

	if len(cfg.Spheres) == 0 {
		return nil, errors.New("scene has no spheres")
	}
	for i, sc := range cfg.Spheres {
		m, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: unknown material %q", i, sc.Material)
		}
		s.AddSphere(sc.Center.Vec3(), sc.Radius, m)
	}

	return s, nil
}

func (c CameraJSON) build() (geometry.CameraConfig, error) {
	config := geometry.CameraConfig{
		LookFrom:      c.LookFrom.Vec3(),
		LookAt:        c.LookAt.Vec3(),
		Up:            c.Up.Vec3(),
		VFov:          c.VFov,
		AspectRatio:   c.AspectRatio,
		Aperture:      c.Aperture,
		FocusDistance: c.FocusDistance,
	}

	switch {
	case config.VFov <= 0 || config.VFov >= 180:
		return config, fmt.Errorf("vfov must be in (0, 180), got %g", config.VFov)
	case config.AspectRatio <= 0:
		return config, fmt.Errorf("aspectRatio must be > 0, got %g", config.AspectRatio)
	case config.Aperture < 0:
		return config, fmt.Errorf("aperture must be >= 0, got %g", config.Aperture)
	case config.LookFrom.Equals(config.LookAt):
		return config, errors.New("lookFrom and lookAt must differ")
	case config.Up.NearZero():
		return config, errors.New("up must be non-zero")
	case config.Up.Cross(config.LookFrom.Subtract(config.LookAt)).NearZero():
		return config, errors.New("up must not be parallel to the view direction")
	}
	return config, nil
}

func (m MaterialJSON) build() (core.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian", "diffuse":
		return material.NewLambertian(m.Albedo.Vec3()), nil
	case "metal":
		metal, err := material.NewMetal(m.Albedo.Vec3(), m.Fuzz)
		if err != nil {
			return nil, err
		}
		return metal, nil
	case "dielectric", "glass":
		if m.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("refractiveIndex must be > 0, got %g", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", m.Type)
	}
}
