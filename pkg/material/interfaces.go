package material

import "github.com/df07/go-pathtracer/pkg/core"

var (
	_ core.Material = (*Lambertian)(nil)
	_ core.Material = (*Metal)(nil)
	_ core.Material = (*Dielectric)(nil)
)
