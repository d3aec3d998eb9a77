package scene

import (
	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/geometry"
	"github.com/funnsam/termray/pkg/material"
)

// Object pairs a shape with the material it is shaded with.
// Materials are owned by the scene builder and may be shared between objects.
type Object struct {
	Shape    geometry.Shape
	Material *material.Material
}

// CameraConfig is the initial camera pose and lens for a scene.
// The camera looks down +Z with +Y up before rotation is applied.
type CameraConfig struct {
	Position core.Vec3
	Rotation core.Vec2 // X is yaw, Y is pitch, in radians
	Focus    float64   // Focal distance along the view direction
	Aperture float64   // Lens size; 0 disables depth of field
}

// Scene contains all the elements needed for rendering.
// It is read-only while a frame is being rendered.
type Scene struct {
	Name    string
	Objects []Object
	Camera  CameraConfig
}

// NewScene creates an empty scene
func NewScene(name string, camera CameraConfig) *Scene {
	return &Scene{Name: name, Camera: camera}
}

// Add appends an object to the scene
func (s *Scene) Add(shape geometry.Shape, mat *material.Material) {
	s.Objects = append(s.Objects, Object{Shape: shape, Material: mat})
}

// Hit finds the nearest object the ray strikes beyond geometry.Epsilon.
// Every object is tested; ties keep the earlier object.
func (s *Scene) Hit(ray core.Ray) (geometry.HitInfo, *Object, bool) {
	closest := geometry.NoHit()
	var hitObject *Object

	for i := range s.Objects {
		hit := s.Objects[i].Shape.TryRay(ray)
		if !hit.Valid() {
			continue
		}
		if hitObject == nil || hit.T < closest.T {
			closest = hit
			hitObject = &s.Objects[i]
		}
	}

	return closest, hitObject, hitObject != nil
}

// GetPrimitiveCount returns the total number of primitive shapes in the scene,
// counting each mesh triangle separately
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, obj := range s.Objects {
		if mesh, ok := obj.Shape.(*geometry.TriangleMesh); ok {
			count += mesh.GetTriangleCount()
		} else {
			count++
		}
	}
	return count
}
