package integrator

import (
	"math"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/scene"
)

// PathTracingIntegrator follows a single bounce path per ray, blending a
// mirror and a diffuse-like direction by the surface roughness
type PathTracingIntegrator struct {
	config ShadingConfig
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config ShadingConfig) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// Config returns the shading constants in use
func (pt *PathTracingIntegrator) Config() ShadingConfig {
	return pt.config
}

// Trace computes the color and light carried back along ray
func (pt *PathTracingIntegrator) Trace(ray core.Ray, sc *scene.Scene, depth int, sampler core.Sampler) Sample {
	// If we've reached the ray bounce limit, no more light is gathered
	if depth >= pt.config.MaxDepth {
		return Sample{}
	}

	hit, obj, isHit := sc.Hit(ray)
	if !isHit {
		return pt.background(ray)
	}
	mat := obj.Material

	specular := ray.Direction.Reflect(hit.Normal)
	diffuse := hit.Normal.Add(core.RandomInUnitSphere(sampler))
	bounce := specular.Lerp(diffuse, mat.Roughness)

	rec := pt.Trace(core.NewRay(hit.Point, bounce), sc, depth+1, sampler)

	s := mat.Shininess
	color := rec.Color.Multiply(s).Add(mat.Color.Multiply(1 - s))

	blend := pt.config.LightBlendBase + s*(1-pt.config.LightBlendBase)
	light := rec.Light.Multiply(blend).Add(mat.EmitColor).Multiply(pt.attenuation(hit.T))

	return Sample{Color: color, Light: light}
}

// attenuation falls from 1 at the surface toward 0 with distance
func (pt *PathTracingIntegrator) attenuation(t float64) float64 {
	d := math.Abs(t)
	return 1 - d/(d+pt.config.AttenuationDistance)
}

// background returns the sky gradient as color and the constant sky light
func (pt *PathTracingIntegrator) background(r core.Ray) Sample {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return Sample{
		Color: pt.config.SkyBottom.Lerp(pt.config.SkyTop, t),
		Light: pt.config.SkyLight,
	}
}
