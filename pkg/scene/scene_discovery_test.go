package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"stanford-bunny", "Stanford Bunny"},
		{"dragon_gold", "Dragon Gold"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
		{"élan-vital", "Élan Vital"},
		{"ÜBER_mesh", "Über Mesh"},
		{"  spaced--out  ", "Spaced Out"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"teapot.obj", "bunny-low.ply", "notes.txt", "car.GLB"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.obj"), 0755); err != nil {
		t.Fatal(err)
	}

	scenes, err := ListScenes(dir)
	if err != nil {
		t.Fatalf("ListScenes failed: %v", err)
	}

	builtIn := len(builtInScenes)
	if len(scenes) != builtIn+3 {
		t.Fatalf("Expected %d scenes, got %d", builtIn+3, len(scenes))
	}

	wantNames := []string{"Bunny Low", "Car", "Teapot"}
	for i, want := range wantNames {
		got := scenes[builtIn+i]
		if got.Name != want {
			t.Errorf("Mesh scene %d: expected name %q, got %q", i, want, got.Name)
		}
		if got.Type != "mesh" || !strings.HasPrefix(got.ID, MeshScenePrefix) {
			t.Errorf("Mesh scene %d: unexpected type %q or ID %q", i, got.Type, got.ID)
		}
	}
}

func TestListScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListScenes(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("Expected no error for a missing directory, got %v", err)
	}
	if len(scenes) != len(builtInScenes) {
		t.Errorf("Expected only built-in scenes, got %d", len(scenes))
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	mesh := filepath.Join(dir, "tri.obj")
	if err := os.WriteFile(mesh, []byte("v -1 0 0\nv 1 0 0\nv 0 1 0\nf 1 3 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		id       string
		meshPath string
		wantName string
		wantErr  bool
	}{
		{"", "", "default", false},
		{"default", "", "default", false},
		{"sphere-grid", "", "sphere-grid", false},
		{"triangle-mesh", "", "triangle-mesh", false},
		{"mesh", mesh, "tri", false},
		{MeshScenePrefix + mesh, "", "tri", false},
		{"mesh", "", "", true},
		{"mesh", filepath.Join(dir, "missing.obj"), "", true},
		{"cornell-box", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := Create(tt.id, tt.meshPath, 1)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected an error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if s.Name != tt.wantName {
				t.Errorf("Expected scene %q, got %q", tt.wantName, s.Name)
			}
			if len(s.Objects) == 0 {
				t.Error("Expected a non-empty scene")
			}
		})
	}
}
