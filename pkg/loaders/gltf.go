package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/material"
)

// LoadGLTF imports every triangle primitive of a .gltf or .glb file.
// Geometry is taken in mesh space; node transforms are not applied.
func LoadGLTF(path string) (*MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	materials := make([]*material.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		materials[i] = convertGLTFMaterial(gm)
	}

	data := &MeshData{}
	hasNormals := true
	var normals []core.Vec3

	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				return nil, fmt.Errorf("gltf mesh %d prim %d: no POSITION attribute", mi, pi)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("gltf mesh %d prim %d: positions: %w", mi, pi, err)
			}

			var primNormals [][3]float32
			if idx, ok := prim.Attributes["NORMAL"]; ok {
				primNormals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
				if err != nil {
					return nil, fmt.Errorf("gltf mesh %d prim %d: normals: %w", mi, pi, err)
				}
			}
			if len(primNormals) != len(positions) {
				hasNormals = false
			}

			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("gltf mesh %d prim %d: indices: %w", mi, pi, err)
				}
			} else {
				indices = make([]uint32, len(positions))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}
			if len(indices)%3 != 0 {
				return nil, fmt.Errorf("gltf mesh %d prim %d: %d indices is not a whole number of triangles", mi, pi, len(indices))
			}

			base := len(data.Vertices)
			for i, p := range positions {
				data.Vertices = append(data.Vertices, core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2])))
				if i < len(primNormals) {
					n := primNormals[i]
					normals = append(normals, core.NewVec3(float64(n[0]), float64(n[1]), float64(n[2])))
				} else {
					normals = append(normals, core.Vec3{})
				}
			}

			group := MeshGroup{Name: fmt.Sprintf("%s_p%d", mesh.Name, pi), Material: DefaultMaterial()}
			if prim.Material != nil && *prim.Material < len(materials) {
				group.Material = materials[*prim.Material]
			}
			group.Faces = make([]int, len(indices))
			for i, idx := range indices {
				if int(idx) >= len(positions) {
					return nil, fmt.Errorf("gltf mesh %d prim %d: index %d out of range", mi, pi, idx)
				}
				group.Faces[i] = base + int(idx)
			}
			data.Groups = append(data.Groups, group)
		}
	}

	if data.TriangleCount() == 0 {
		return nil, fmt.Errorf("no triangle primitives found in %s", path)
	}
	if hasNormals {
		data.Normals = normals
	}

	return data, nil
}

// convertGLTFMaterial maps metallic-roughness PBR onto the shading model:
// base color to Color, emissive factor to EmitColor, metallic to Shininess.
func convertGLTFMaterial(gm *gltf.Material) *material.Material {
	m := DefaultMaterial()
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		m.Color = core.NewVec3(cf[0], cf[1], cf[2])
		m.Shininess = max(0, min(1, pbr.MetallicFactorOrDefault()))
		m.Roughness = max(0, min(1, pbr.RoughnessFactorOrDefault()))
	}
	ef := gm.EmissiveFactor
	m.EmitColor = core.NewVec3(ef[0], ef[1], ef[2])
	return m
}
