package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/material"
)

// objCorner identifies one face corner by its position and normal indices
type objCorner struct {
	position int
	normal   int // -1 when the corner has no normal
}

// LoadOBJ parses a Wavefront .obj file along with any MTL libraries it names.
// Faces are fan-triangulated and grouped by their usemtl material.
func LoadOBJ(path string) (*MeshData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	var positions, normals []core.Vec3
	materials := make(map[string]*material.Material)

	data := &MeshData{}
	var vertexNormals []core.Vec3
	missingNormal := false
	corners := make(map[objCorner]int)

	groupIndex := make(map[string]int)
	current := -1
	useGroup := func(name string) {
		if idx, ok := groupIndex[name]; ok {
			current = idx
			return
		}
		mat, ok := materials[name]
		if !ok {
			mat = DefaultMaterial()
		}
		groupIndex[name] = len(data.Groups)
		current = len(data.Groups)
		data.Groups = append(data.Groups, MeshGroup{Name: name, Material: mat})
	}

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v":
			v, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNum, err)
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNum, err)
			}
			normals = append(normals, n)
		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNum)
			}
			if current < 0 {
				useGroup("")
			}
			face := make([]int, 0, len(parts)-1)
			for _, spec := range parts[1:] {
				corner, err := parseCorner(spec, len(positions), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				idx, ok := corners[corner]
				if !ok {
					idx = len(data.Vertices)
					corners[corner] = idx
					data.Vertices = append(data.Vertices, positions[corner.position])
					if corner.normal >= 0 {
						vertexNormals = append(vertexNormals, normals[corner.normal])
					} else {
						vertexNormals = append(vertexNormals, core.Vec3{})
						missingNormal = true
					}
				}
				face = append(face, idx)
			}
			g := &data.Groups[current]
			for i := 2; i < len(face); i++ {
				g.Faces = append(g.Faces, face[0], face[i-1], face[i])
			}
		case "usemtl":
			name := ""
			if len(parts) > 1 {
				name = parts[1]
			}
			useGroup(name)
		case "mtllib":
			for _, lib := range parts[1:] {
				mtls, err := LoadMTL(filepath.Join(filepath.Dir(path), lib))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				for name, m := range mtls {
					materials[name] = m
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ file: %w", err)
	}

	if data.TriangleCount() == 0 {
		return nil, fmt.Errorf("no faces found in OBJ file %s", path)
	}
	if !missingNormal {
		data.Normals = vertexNormals
	}

	return data, nil
}

// LoadMTL parses a Wavefront .mtl library. Diffuse (Kd) becomes the base
// color, ambient (Ka) the emission, Ns/1000 the shininess and dissolve
// (d, or 1-Tr) the roughness.
func LoadMTL(path string) (map[string]*material.Material, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MTL file: %w", err)
	}
	defer file.Close()

	result := make(map[string]*material.Material)
	var current *material.Material

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		if parts[0] == "newmtl" {
			if len(parts) < 2 {
				return nil, fmt.Errorf("%s:%d: newmtl without a name", path, lineNum)
			}
			current = DefaultMaterial()
			result[parts[1]] = current
			continue
		}
		if current == nil {
			continue
		}

		switch parts[0] {
		case "Kd", "Ka":
			c, err := parseVec3(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %s: %w", path, lineNum, parts[0], err)
			}
			if parts[0] == "Kd" {
				current.Color = c
			} else {
				current.EmitColor = c
			}
		case "Ns", "d", "Tr":
			if len(parts) < 2 {
				return nil, fmt.Errorf("%s:%d: %s needs a value", path, lineNum, parts[0])
			}
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %s: %w", path, lineNum, parts[0], err)
			}
			switch parts[0] {
			case "Ns":
				current.Shininess = max(0, min(1, v/1000))
			case "d":
				current.Roughness = max(0, min(1, v))
			case "Tr":
				current.Roughness = max(0, min(1, 1-v))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read MTL file: %w", err)
	}

	return result, nil
}

// parseCorner parses a face corner "v", "v/vt", "v//vn" or "v/vt/vn".
// Negative indices count back from the most recent element.
func parseCorner(spec string, numPositions, numNormals int) (objCorner, error) {
	fields := strings.Split(spec, "/")

	pos, err := resolveIndex(fields[0], numPositions)
	if err != nil {
		return objCorner{}, fmt.Errorf("face vertex %q: %w", spec, err)
	}
	corner := objCorner{position: pos, normal: -1}

	if len(fields) >= 3 && fields[2] != "" {
		n, err := resolveIndex(fields[2], numNormals)
		if err != nil {
			return objCorner{}, fmt.Errorf("face normal %q: %w", spec, err)
		}
		corner.normal = n
	}
	return corner, nil
}

func resolveIndex(field string, count int) (int, error) {
	idx, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		idx = count + idx + 1
	}
	if idx < 1 || idx > count {
		return 0, fmt.Errorf("index %s out of range (have %d)", field, count)
	}
	return idx - 1, nil
}

func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var c [3]float64
	for i := range c {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		c[i] = v
	}
	return core.NewVec3(c[0], c[1], c[2]), nil
}
