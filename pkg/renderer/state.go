package renderer

import (
	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/scene"
)

// State is the viewer-controlled camera and the scene it looks at.
// The input handler mutates it between frames; the renderer only reads it.
type State struct {
	Position core.Vec3
	Rotation core.Vec2 // X is yaw, Y is pitch, in radians
	Scene    *scene.Scene
	Focus    float64 // Focal distance; values below MinFocus are clamped
	Aperture float64 // Lens size; depth of field is on when positive
}

// NewState starts the camera at the scene's configured pose
func NewState(sc *scene.Scene) *State {
	return &State{
		Position: sc.Camera.Position,
		Rotation: sc.Camera.Rotation,
		Scene:    sc,
		Focus:    sc.Camera.Focus,
		Aperture: sc.Camera.Aperture,
	}
}

// Forward returns the unit view direction
func (s *State) Forward() core.Vec3 {
	return Rotate(core.NewVec3(0, 0, 1), s.Rotation)
}

// Rotate normalizes p and applies the camera rotation r to it
func Rotate(p core.Vec3, r core.Vec2) core.Vec3 {
	return rotate(p.Normalize(), r)
}

// rotate turns the (Y,Z) pair by r.X, then the (X,Z) pair by r.Y.
// Length is preserved.
func rotate(p core.Vec3, r core.Vec2) core.Vec3 {
	yz := core.NewVec2(p.Y, p.Z).Rotate(r.X)
	p = core.NewVec3(p.X, yz.X, yz.Y)
	xz := core.NewVec2(p.X, p.Z).Rotate(r.Y)
	return core.NewVec3(xz.X, p.Y, xz.Y)
}
