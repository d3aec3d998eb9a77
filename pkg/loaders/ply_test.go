package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/funnsam/termray/pkg/core"
)

// createTestPLY writes a binary little-endian unit square made of two triangles
func createTestPLY(t *testing.T, filename string, includeNormals bool, includeColors bool) {
	t.Helper()
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("comment written by createTestPLY\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}
	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := []struct {
		x, y, z    float32
		nx, ny, nz float32
		r, g, b    uint8
	}{
		{0, 0, 0, 0, 0, 1, 255, 0, 0},
		{1, 0, 0, 0, 0, 1, 0, 255, 0},
		{1, 1, 0, 0, 0, 1, 0, 0, 255},
		{0, 1, 0, 0, 0, 1, 255, 255, 0},
	}
	for _, v := range vertices {
		binary.Write(&buf, binary.LittleEndian, [3]float32{v.x, v.y, v.z})
		if includeNormals {
			binary.Write(&buf, binary.LittleEndian, [3]float32{v.nx, v.ny, v.nz})
		}
		if includeColors {
			binary.Write(&buf, binary.LittleEndian, [3]uint8{v.r, v.g, v.b})
		}
	}

	for _, f := range [][3]int32{{0, 1, 2}, {0, 2, 3}} {
		buf.WriteByte(3)
		binary.Write(&buf, binary.LittleEndian, f)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to create test PLY file: %v", err)
	}
}

func TestLoadPLY_Basic(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "basic.ply")
	createTestPLY(t, testFile, false, false)

	data, err := LoadPLY(testFile)
	if err != nil {
		t.Fatalf("Failed to load PLY: %v", err)
	}

	expectedVertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	if len(data.Vertices) != len(expectedVertices) {
		t.Fatalf("Expected %d vertices, got %d", len(expectedVertices), len(data.Vertices))
	}
	for i, expected := range expectedVertices {
		if data.Vertices[i] != expected {
			t.Errorf("Vertex %d: expected %v, got %v", i, expected, data.Vertices[i])
		}
	}

	expectedFaces := []int{0, 1, 2, 0, 2, 3}
	if len(data.Faces) != len(expectedFaces) {
		t.Fatalf("Expected %d face indices, got %d", len(expectedFaces), len(data.Faces))
	}
	for i, expected := range expectedFaces {
		if data.Faces[i] != expected {
			t.Errorf("Face index %d: expected %d, got %d", i, expected, data.Faces[i])
		}
	}

	if len(data.Normals) != 0 {
		t.Errorf("Expected no normals, got %d", len(data.Normals))
	}
}

func TestLoadPLY_WithNormalsAndColors(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "full.ply")
	createTestPLY(t, testFile, true, true)

	data, err := LoadPLY(testFile)
	if err != nil {
		t.Fatalf("Failed to load PLY: %v", err)
	}

	if len(data.Normals) != 4 {
		t.Fatalf("Expected 4 normals, got %d", len(data.Normals))
	}
	for i, n := range data.Normals {
		if n != core.NewVec3(0, 0, 1) {
			t.Errorf("Normal %d: expected (0,0,1), got %v", i, n)
		}
	}

	expectedColors := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 1, 0),
	}
	if len(data.Colors) != len(expectedColors) {
		t.Fatalf("Expected %d colors, got %d", len(expectedColors), len(data.Colors))
	}
	for i, expected := range expectedColors {
		if data.Colors[i] != expected {
			t.Errorf("Color %d: expected %v, got %v", i, expected, data.Colors[i])
		}
	}

	// Colors are averaged into the single group's material
	mesh := data.MeshData()
	want := core.NewVec3(0.5, 0.5, 0.25)
	if got := mesh.Groups[0].Material.Color; got != want {
		t.Errorf("Expected averaged color %v, got %v", want, got)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}
}

func TestLoadPLY_ASCIIQuad(t *testing.T) {
	content := `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
2 0 0
2 2 0
0 2 0
4 0 1 2 3
`
	testFile := filepath.Join(t.TempDir(), "quad.ply")
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := LoadPLY(testFile)
	if err != nil {
		t.Fatalf("Failed to load PLY: %v", err)
	}

	if data.Vertices[2] != core.NewVec3(2, 2, 0) {
		t.Errorf("Expected vertex 2 at (2,2,0), got %v", data.Vertices[2])
	}
	// The quad is fan-triangulated from its first corner
	expectedFaces := []int{0, 1, 2, 0, 2, 3}
	if len(data.Faces) != len(expectedFaces) {
		t.Fatalf("Expected %d face indices, got %d", len(expectedFaces), len(data.Faces))
	}
	for i, expected := range expectedFaces {
		if data.Faces[i] != expected {
			t.Errorf("Face index %d: expected %d, got %d", i, expected, data.Faces[i])
		}
	}
}

func TestLoadPLY_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"big header without end", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"unsupported format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{
			"index out of range",
			"ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
				"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n",
		},
		{
			"truncated body",
			"ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
				"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "bad.ply")
			if err := os.WriteFile(testFile, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadPLY(testFile); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

func TestLoadPLY_NonExistentFile(t *testing.T) {
	if _, err := LoadPLY("nonexistent.ply"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
