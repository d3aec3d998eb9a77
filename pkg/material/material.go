package material

import "github.com/funnsam/termray/pkg/core"

// Material describes how a surface tints and emits light.
//
// Shininess is the fraction of the outgoing result taken from the bounced
// ray rather than from the base color. Roughness blends the bounce direction
// from a perfect mirror (0) to a diffuse-like direction (1).
type Material struct {
	Color     core.Vec3 // Base reflectance, RGB, unclamped
	EmitColor core.Vec3 // Radiant emission, may exceed 1.0 for bright lights
	Shininess float64   // In [0, 1]
	Roughness float64   // In [0, 1]
}

// NewLambertian creates a purely diffuse, non-reflective material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{Color: albedo, Roughness: 1}
}

// NewMetal creates a reflective material; fuzz 0 is a perfect mirror
func NewMetal(albedo core.Vec3, shininess, fuzz float64) *Material {
	return &Material{
		Color:     albedo,
		Shininess: clamp01(shininess),
		Roughness: clamp01(fuzz),
	}
}

// NewEmissive creates a diffuse white surface that emits the given radiance
func NewEmissive(emission core.Vec3) *Material {
	return &Material{
		Color:     core.NewVec3(1, 1, 1),
		EmitColor: emission,
		Roughness: 1,
	}
}

// IsEmissive reports whether the material adds light of its own
func (m *Material) IsEmissive() bool {
	return !m.EmitColor.IsZero()
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
