package scene

import (
	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/geometry"
	"github.com/funnsam/termray/pkg/material"
)

// NewDefaultScene creates two tinted spheres resting on a huge ground sphere,
// lit by the sky and one small emissive sphere overhead
func NewDefaultScene() *Scene {
	s := NewScene("default", CameraConfig{
		Position: core.NewVec3(0, 0, -1),
		Focus:    2,
	})

	red := material.NewMetal(core.NewVec3(0.25, 0, 0), 0.3, 0.5)
	green := material.NewMetal(core.NewVec3(0, 0.25, 0), 0.4, 0.5)
	blue := material.NewMetal(core.NewVec3(0, 0, 0.25), 0.5, 0.5)
	lamp := material.NewEmissive(core.NewVec3(3, 3, 2.5))

	s.Add(geometry.NewSphere(core.NewVec3(-1, 0, 1), 0.5), red)
	s.Add(geometry.NewSphere(core.NewVec3(1, 0, 1), 0.5), green)
	s.Add(geometry.NewSphere(core.NewVec3(0, -201, 0), 200), blue)
	s.Add(geometry.NewSphere(core.NewVec3(0, 2.5, 1.5), 0.5), lamp)

	return s
}
