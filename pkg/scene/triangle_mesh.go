package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/geometry"
	"github.com/funnsam/termray/pkg/loaders"
	"github.com/funnsam/termray/pkg/material"
)

// NewMeshScene loads an OBJ, glTF or PLY file and frames it in front of the
// camera above a ground sphere
func NewMeshScene(path string) (*Scene, error) {
	data, err := loaders.LoadMesh(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewMeshSceneFromData(name, data)
}

// NewMeshSceneFromData builds one TriangleMesh object per material group
func NewMeshSceneFromData(name string, data *loaders.MeshData) (*Scene, error) {
	lo, hi := data.Bounds()
	center := lo.Add(hi).Multiply(0.5)
	extent := hi.Subtract(lo)
	size := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	if size <= 0 {
		return nil, fmt.Errorf("mesh %q has no extent", name)
	}

	// The projection spans a 90 degree field of view, so stepping back by the
	// mesh size fits it with a margin
	distance := size + extent.Z/2
	s := NewScene(name, CameraConfig{
		Position: core.NewVec3(center.X, center.Y, center.Z-distance),
		Focus:    distance,
	})

	groundR := size * 100
	s.Add(geometry.NewSphere(core.NewVec3(center.X, lo.Y-groundR, center.Z), groundR),
		material.NewLambertian(core.NewVec3(0.4, 0.4, 0.4)))

	for _, group := range data.Groups {
		if len(group.Faces) == 0 {
			continue
		}
		mesh, err := geometry.NewTriangleMesh(data.Vertices, group.Faces, data.Normals)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", group.Name, err)
		}
		s.Add(mesh, group.Material)
	}

	return s, nil
}

// NewTriangleMeshScene creates a smooth-shaded icosahedron beside a
// flat-shaded pyramid, exercising both triangle normal modes without a file
func NewTriangleMeshScene() (*Scene, error) {
	s := NewScene("triangle-mesh", CameraConfig{
		Position: core.NewVec3(0, 0.2, -2.5),
		Focus:    3.5,
	})

	s.Add(geometry.NewSphere(core.NewVec3(0, -201, 0), 200),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0, 3, 1), 0.75),
		material.NewEmissive(core.NewVec3(4, 4, 3.5)))

	ico, err := newIcosahedron(core.NewVec3(-0.8, -0.25, 1), 0.75)
	if err != nil {
		return nil, err
	}
	s.Add(ico, material.NewMetal(core.NewVec3(0.9, 0.6, 0.2), 0.6, 0.2))

	pyramid, err := newPyramid(core.NewVec3(0.9, -1, 1), 1.2, 1.3)
	if err != nil {
		return nil, err
	}
	s.Add(pyramid, material.NewLambertian(core.NewVec3(0.2, 0.5, 0.8)))

	return s, nil
}

// newIcosahedron builds an icosahedron whose vertex normals point away from
// the center, so it shades like a sphere
func newIcosahedron(center core.Vec3, radius float64) (*geometry.TriangleMesh, error) {
	phi := (1 + math.Sqrt(5)) / 2
	unit := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	vertices := make([]core.Vec3, len(unit))
	normals := make([]core.Vec3, len(unit))
	for i, v := range unit {
		normals[i] = v.Normalize()
		vertices[i] = center.Add(normals[i].Multiply(radius))
	}
	return geometry.NewTriangleMesh(vertices, orientOutward(vertices, faces, center), normals)
}

// newPyramid builds a square pyramid standing on base with flat faces
func newPyramid(base core.Vec3, width, height float64) (*geometry.TriangleMesh, error) {
	h := width / 2
	vertices := []core.Vec3{
		base.Add(core.NewVec3(-h, 0, -h)),
		base.Add(core.NewVec3(h, 0, -h)),
		base.Add(core.NewVec3(h, 0, h)),
		base.Add(core.NewVec3(-h, 0, h)),
		base.Add(core.NewVec3(0, height, 0)),
	}
	faces := []int{
		0, 1, 4, 1, 2, 4, 2, 3, 4, 3, 0, 4,
		0, 2, 1, 0, 3, 2,
	}
	centroid := base.Add(core.NewVec3(0, height/4, 0))
	return geometry.NewTriangleMesh(vertices, orientOutward(vertices, faces, centroid), nil)
}

// orientOutward flips any triangle whose face normal points toward inside,
// since back faces are culled
func orientOutward(vertices []core.Vec3, faces []int, inside core.Vec3) []int {
	out := append([]int(nil), faces...)
	for i := 0; i+2 < len(out); i += 3 {
		v0, v1, v2 := vertices[out[i]], vertices[out[i+1]], vertices[out[i+2]]
		normal := v1.Subtract(v0).Cross(v2.Subtract(v0))
		if normal.Dot(v0.Subtract(inside)) < 0 {
			out[i+1], out[i+2] = out[i+2], out[i+1]
		}
	}
	return out
}
