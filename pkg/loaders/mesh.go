package loaders

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/material"
)

// MeshGroup is a run of triangles that share one material
type MeshGroup struct {
	Name     string
	Material *material.Material
	Faces    []int // Index triples into MeshData.Vertices
}

// MeshData is the format-independent result of importing a mesh file
type MeshData struct {
	Vertices []core.Vec3
	Normals  []core.Vec3 // Per-vertex normals, empty if the file has none
	Groups   []MeshGroup
}

// DefaultMaterial is assigned to faces whose file gives no material
func DefaultMaterial() *material.Material {
	return material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))
}

// LoadMesh imports a mesh file, choosing the format by extension
func LoadMesh(path string) (*MeshData, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	case ".ply":
		data, err := LoadPLY(path)
		if err != nil {
			return nil, err
		}
		return data.MeshData(), nil
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
}

// TriangleCount returns the number of triangles across all groups
func (m *MeshData) TriangleCount() int {
	count := 0
	for _, g := range m.Groups {
		count += len(g.Faces) / 3
	}
	return count
}

// Bounds returns the axis-aligned corners enclosing every vertex.
// An empty mesh yields two zero vectors.
func (m *MeshData) Bounds() (lo, hi core.Vec3) {
	if len(m.Vertices) == 0 {
		return core.Vec3{}, core.Vec3{}
	}
	lo = core.NewVec3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi = core.NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for _, v := range m.Vertices {
		lo = core.NewVec3(math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z))
		hi = core.NewVec3(math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z))
	}
	return lo, hi
}
