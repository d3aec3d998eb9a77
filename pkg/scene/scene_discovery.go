package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MeshScenePrefix marks a scene ID that names a mesh file, as in "mesh:bunny.obj"
const MeshScenePrefix = "mesh:"

// SceneInfo represents a selectable scene with its metadata
type SceneInfo struct {
	ID          string // Identifier accepted by Create
	Name        string // Display name
	Description string
	Type        string // "builtin" or "mesh"
	FilePath    string // Mesh file (mesh type only)
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		Description: "Two tinted spheres on a ground sphere with an overhead light",
		Type:        "builtin",
	},
	{
		ID:          "sphere-grid",
		Name:        "Sphere Grid",
		Description: "Mirror sphere inside a seeded grid of colored and glowing spheres",
		Type:        "builtin",
	},
	{
		ID:          "triangle-mesh",
		Name:        "Triangle Mesh",
		Description: "Smooth icosahedron and flat pyramid built from triangle meshes",
		Type:        "builtin",
	},
	{
		ID:          "mesh",
		Name:        "Mesh File",
		Description: "OBJ, glTF or PLY file given with -mesh",
		Type:        "mesh",
	},
}

var meshExtensions = map[string]bool{".obj": true, ".gltf": true, ".glb": true, ".ply": true}

// Create builds the scene with the given ID. meshPath is used by the "mesh"
// scene and seed by the sphere grid.
func Create(id, meshPath string, seed int64) (*Scene, error) {
	if path, ok := strings.CutPrefix(id, MeshScenePrefix); ok {
		return NewMeshScene(path)
	}

	switch id {
	case "", "default":
		return NewDefaultScene(), nil
	case "sphere-grid":
		return NewSphereGridScene(seed), nil
	case "triangle-mesh":
		return NewTriangleMeshScene()
	case "mesh":
		if meshPath == "" {
			return nil, fmt.Errorf("scene %q needs a mesh file path", id)
		}
		return NewMeshScene(meshPath)
	default:
		return nil, fmt.Errorf("unknown scene %q", id)
	}
}

// ListScenes returns the built-in scenes followed by any mesh files found in
// meshDir, sorted by name. A missing directory contributes nothing.
func ListScenes(meshDir string) ([]SceneInfo, error) {
	scenes := append([]SceneInfo(nil), builtInScenes...)
	if meshDir == "" {
		return scenes, nil
	}

	entries, err := os.ReadDir(meshDir)
	if os.IsNotExist(err) {
		return scenes, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan mesh directory: %w", err)
	}

	var meshes []SceneInfo
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !meshExtensions[ext] {
			continue
		}
		path := filepath.Join(meshDir, entry.Name())
		meshes = append(meshes, SceneInfo{
			ID:          MeshScenePrefix + path,
			Name:        titleCase(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))),
			Description: fmt.Sprintf("%s mesh file", strings.ToUpper(ext[1:])),
			Type:        "mesh",
			FilePath:    path,
		})
	}
	sort.Slice(meshes, func(i, j int) bool {
		return meshes[i].Name < meshes[j].Name
	})

	return append(scenes, meshes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "stanford-bunny" -> "Stanford Bunny"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	return cases.Title(language.Und).String(strings.Join(strings.Fields(s), " "))
}
