package integrator

import (
	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/scene"
)

// Sample is the result of tracing one ray. Color and Light are carried
// separately through the recursion and combined only at the pixel.
type Sample struct {
	Color core.Vec3 // Accumulated surface tint
	Light core.Vec3 // Accumulated illumination
}

// Radiance returns the pixel contribution Color * Light, component-wise
func (s Sample) Radiance() core.Vec3 {
	return s.Color.MultiplyVec(s.Light)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace follows ray through the scene starting at the given bounce depth
	Trace(ray core.Ray, sc *scene.Scene, depth int, sampler core.Sampler) Sample
}

// ShadingConfig holds the constants of the shading model. The light blend and
// attenuation are artistic choices, not an energy-conserving BRDF.
type ShadingConfig struct {
	MaxDepth            int       // Depth at which tracing stops and returns zero
	LightBlendBase      float64   // Light kept from a bounce when shininess is 0
	AttenuationDistance float64   // Distance at which light falls to half
	SkyLight            core.Vec3 // Illumination of rays that escape
	SkyTop              core.Vec3 // Sky color straight up
	SkyBottom           core.Vec3 // Sky color straight down
}

// DefaultShadingConfig returns the standard shading constants
func DefaultShadingConfig() ShadingConfig {
	return ShadingConfig{
		MaxDepth:            16,
		LightBlendBase:      0.35,
		AttenuationDistance: 100,
		SkyLight:            core.NewVec3(0.5, 0.5, 0.4),
		SkyTop:              core.NewVec3(0.5, 0.7, 1.0),
		SkyBottom:           core.NewVec3(1.0, 1.0, 1.0),
	}
}
