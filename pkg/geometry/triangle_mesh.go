package geometry

import (
	"fmt"

	"github.com/funnsam/termray/pkg/core"
)

// TriangleMesh is an ordered collection of triangles tested as one shape
type TriangleMesh struct {
	triangles []*Triangle
}

// NewTriangleMesh creates a mesh from vertices and face indices.
// faces holds one index triple per triangle. normals is optional: when it is
// non-nil it must hold one normal per vertex and the triangles are smooth-shaded.
func NewTriangleMesh(vertices []core.Vec3, faces []int, normals []core.Vec3) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}
	if normals != nil && len(normals) != len(vertices) {
		return nil, fmt.Errorf("got %d normals for %d vertices", len(normals), len(vertices))
	}

	triangles := make([]*Triangle, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i/3, idx, len(vertices))
			}
		}

		if normals != nil {
			triangles = append(triangles, NewSmoothTriangle(
				vertices[i0], vertices[i1], vertices[i2],
				normals[i0], normals[i1], normals[i2]))
		} else {
			triangles = append(triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2]))
		}
	}

	return &TriangleMesh{triangles: triangles}, nil
}

// NewTriangleMeshFromTriangles wraps already constructed triangles
func NewTriangleMeshFromTriangles(triangles []*Triangle) *TriangleMesh {
	return &TriangleMesh{triangles: triangles}
}

// TryRay scans every triangle and keeps the nearest hit beyond Epsilon
func (m *TriangleMesh) TryRay(ray core.Ray) HitInfo {
	closest := NoHit()
	for _, tri := range m.triangles {
		hit := tri.TryRay(ray)
		if hit.Valid() && (!closest.Valid() || hit.T < closest.T) {
			closest = hit
		}
	}
	return closest
}

// GetTriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) GetTriangleCount() int {
	return len(m.triangles)
}

// GetTriangles returns the mesh triangles
func (m *TriangleMesh) GetTriangles() []*Triangle {
	return m.triangles
}
