package renderer

import (
	"github.com/funnsam/termray/pkg/core"
)

const (
	// MinFocus is the smallest focal distance the lens accepts
	MinFocus = 0.05
	// LensScale converts aperture units into lens radius
	LensScale = 0.05
)

// Camera generates primary rays from a snapshot of the viewer state.
// The image plane sits at z = 1 in camera space and spans [-1, 1] on both
// axes, so the field of view is 90 degrees.
type Camera struct {
	position core.Vec3
	rotation core.Vec2
	focus    float64
	aperture float64
}

// NewCamera snapshots the pose and lens of state
func NewCamera(state *State) Camera {
	return Camera{
		position: state.Position,
		rotation: state.Rotation,
		focus:    max(state.Focus, MinFocus),
		aperture: state.Aperture,
	}
}

// DepthOfField reports whether rays are jittered across the lens
func (c Camera) DepthOfField() bool {
	return c.aperture > 0
}

// GetRay returns a normalized ray through image plane point (px, py).
// With depth of field the origin is moved to a random point on the lens and
// the ray is aimed at the matching point on the focal plane.
func (c Camera) GetRay(px, py float64, sampler core.Sampler) core.Ray {
	forward := core.NewVec3(px, py, 1)
	if !c.DepthOfField() {
		return core.NewRay(c.position, Rotate(forward, c.rotation))
	}

	offset := core.RandomInUnitDisk(sampler).Multiply(LensScale * c.aperture)
	target := forward.Multiply(c.focus)
	direction := target.Subtract(offset)

	return core.NewRay(c.position.Add(rotate(offset, c.rotation)), Rotate(direction, c.rotation))
}
