package renderer

import (
	"errors"
	"testing"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/geometry"
	"github.com/funnsam/termray/pkg/integrator"
	"github.com/funnsam/termray/pkg/material"
	"github.com/funnsam/termray/pkg/scene"
)

func newTestRenderer(t *testing.T, workers int) *Renderer {
	t.Helper()
	config := DefaultConfig()
	config.SamplesLevel = 2
	config.NumWorkers = workers
	config.Shading.MaxDepth = 4
	r := NewRenderer(config, core.NewLogCollector())
	t.Cleanup(r.Close)
	return r
}

// createRedSphereScene puts a red diffuse sphere over a grey ground in
// front of a camera at the origin
func createRedSphereScene() *scene.Scene {
	sc := scene.NewScene("red sphere", scene.CameraConfig{Focus: 3})
	sc.Add(geometry.NewSphere(core.NewVec3(0, 0, 3), 1), material.NewLambertian(core.NewVec3(0.9, 0.1, 0.1)))
	sc.Add(geometry.NewSphere(core.NewVec3(0, -101, 3), 100), material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return sc
}

func framesEqual(a, b Frame) bool {
	if a.Height() != b.Height() || a.Width() != b.Width() {
		return false
	}
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}

func TestRender_Errors(t *testing.T) {
	r := newTestRenderer(t, 2)
	state := NewState(createRedSphereScene())

	tests := []struct {
		name       string
		state      *State
		buf        AccumulationBuffer
		passesDone int
	}{
		{"nil state", nil, NewAccumulationBuffer(4, 4), 1},
		{"no scene", &State{}, NewAccumulationBuffer(4, 4), 1},
		{"empty buffer", state, nil, 1},
		{"ragged buffer", state, AccumulationBuffer{make([]core.Vec3, 4), make([]core.Vec3, 3)}, 1},
		{"zero passes", state, NewAccumulationBuffer(4, 4), 0},
		{"negative passes", state, NewAccumulationBuffer(4, 4), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := r.Render(tt.state, tt.buf, tt.passesDone); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestRender_AfterClose(t *testing.T) {
	r := newTestRenderer(t, 1)
	r.Close()

	_, _, err := r.Render(NewState(createRedSphereScene()), NewAccumulationBuffer(2, 2), 1)
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	state := NewState(createRedSphereScene())
	state.Aperture = 1 // Exercise the lens sampler too

	render := func(workers int) (Frame, AccumulationBuffer) {
		r := newTestRenderer(t, workers)
		buf := NewAccumulationBuffer(12, 12)
		var frame Frame
		for pass := 1; pass <= 3; pass++ {
			var err error
			frame, _, err = r.Render(state, buf, pass)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
		}
		return frame, buf
	}

	frameA, bufA := render(1)
	frameB, bufB := render(4)

	if !framesEqual(frameA, frameB) {
		t.Error("Frames differ between 1 and 4 workers")
	}
	for y := range bufA {
		for x := range bufA[y] {
			if bufA[y][x] != bufB[y][x] {
				t.Fatalf("Buffers differ at (%d,%d): %v vs %v", x, y, bufA[y][x], bufB[y][x])
			}
		}
	}
}

func TestRender_ResetRestartsAccumulation(t *testing.T) {
	r := newTestRenderer(t, 3)
	state := NewState(createRedSphereScene())

	fresh, _, err := r.Render(state, NewAccumulationBuffer(8, 8), 1)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	buf := NewAccumulationBuffer(8, 8)
	for pass := 1; pass <= 2; pass++ {
		if _, _, err := r.Render(state, buf, pass); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}

	buf.Reset()
	restarted, _, err := r.Render(state, buf, 1)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !framesEqual(fresh, restarted) {
		t.Error("Expected the first frame after a reset to match a fresh first frame")
	}
}

func TestRender_SkyOnlyAccumulates(t *testing.T) {
	r := newTestRenderer(t, 2)
	state := NewState(scene.NewScene("empty", scene.CameraConfig{}))
	buf := NewAccumulationBuffer(6, 6)

	first, _, err := r.Render(state, buf, 1)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	once := buf[2][3]

	var last Frame
	for pass := 2; pass <= 3; pass++ {
		if last, _, err = r.Render(state, buf, pass); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}

	// The sky is noise free, so the buffer grows linearly and the average holds
	if !vecNear(buf[2][3], once.Multiply(3), 1e-12) {
		t.Errorf("Expected buffer to triple to %v, got %v", once.Multiply(3), buf[2][3])
	}
	if !framesEqual(first, last) {
		t.Error("Expected a constant image for a noise-free scene")
	}

	// Row 0 looks up into the bluer part of the sky
	if top, bottom := last[0][3], last[5][3]; top.R >= bottom.R {
		t.Errorf("Expected the top row to be bluer than the bottom, got %v over %v", top, bottom)
	}
}

func TestRender_SphereCentrePixel(t *testing.T) {
	r := newTestRenderer(t, 0)
	state := NewState(createRedSphereScene())
	buf := NewAccumulationBuffer(9, 9)

	var frame Frame
	var stats RenderStats
	for pass := 1; pass <= 4; pass++ {
		var err error
		if frame, stats, err = r.Render(state, buf, pass); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}

	p := frame[4][4]
	c := core.NewVec3(float64(p.R), float64(p.G), float64(p.B)).Divide(255)
	toBase := c.Subtract(core.NewVec3(0.9, 0.1, 0.1)).Length()
	toSky := c.Subtract(core.NewVec3(0.75, 0.85, 1.0)).Length()
	if toBase >= toSky {
		t.Errorf("Centre pixel %v is closer to the sky (%v) than to the sphere (%v)", c, toSky, toBase)
	}

	if stats.Pass != 4 || stats.Width != 9 || stats.Height != 9 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.TotalSamples != 9*9*4 {
		t.Errorf("Expected %d samples this frame, got %d", 9*9*4, stats.TotalSamples)
	}
	if stats.SamplesPerPixel != 16 {
		t.Errorf("Expected 16 accumulated samples per pixel, got %d", stats.SamplesPerPixel)
	}
	if stats.NumWorkers < 1 {
		t.Errorf("Expected at least one worker, got %d", stats.NumWorkers)
	}
}

func TestRender_NonSquare(t *testing.T) {
	r := newTestRenderer(t, 2)
	state := NewState(createRedSphereScene())

	frame, _, err := r.Render(state, NewAccumulationBuffer(7, 3), 1)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if frame.Width() != 7 || frame.Height() != 3 {
		t.Errorf("Expected 7x3 frame, got %dx%d", frame.Width(), frame.Height())
	}
}

func TestRenderStill(t *testing.T) {
	r := newTestRenderer(t, 2)
	state := NewState(createRedSphereScene())

	var calls []int
	frame, stats, err := r.RenderStill(state, 5, 3, func(pass, total int) {
		if total != 3 {
			t.Errorf("Expected total 3, got %d", total)
		}
		calls = append(calls, pass)
	})
	if err != nil {
		t.Fatalf("RenderStill failed: %v", err)
	}

	if frame.Width() != 5 || frame.Height() != 5 {
		t.Errorf("Expected 5x5 still, got %dx%d", frame.Width(), frame.Height())
	}
	if len(calls) != 3 || calls[0] != 1 || calls[2] != 3 {
		t.Errorf("Expected progress for passes 1..3, got %v", calls)
	}
	if stats.Pass != 3 {
		t.Errorf("Expected stats for pass 3, got %d", stats.Pass)
	}

	// A still render matches accumulating the same passes by hand
	buf := NewAccumulationBuffer(5, 5)
	var manual Frame
	for pass := 1; pass <= 3; pass++ {
		if manual, _, err = r.Render(state, buf, pass); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	}
	if !framesEqual(frame, manual) {
		t.Error("Expected RenderStill to match manual accumulation")
	}
}

func TestRenderStill_Errors(t *testing.T) {
	r := newTestRenderer(t, 1)
	state := NewState(createRedSphereScene())

	if _, _, err := r.RenderStill(state, 0, 1, nil); err == nil {
		t.Error("Expected an error for zero size")
	}
	if _, _, err := r.RenderStill(state, 4, 0, nil); err == nil {
		t.Error("Expected an error for zero passes")
	}
	if _, _, err := r.RenderStill(&State{}, 4, 1, nil); err == nil {
		t.Error("Expected an error for a state without a scene")
	}
}

func TestRowSeed_Distinct(t *testing.T) {
	seen := make(map[int64]bool)
	for pass := 1; pass <= 10; pass++ {
		for row := 0; row < 50; row++ {
			s := rowSeed(42, pass, row)
			if seen[s] {
				t.Fatalf("Seed %d repeated at pass %d row %d", s, pass, row)
			}
			seen[s] = true
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.SamplesLevel != 4 || config.NumWorkers != 0 {
		t.Errorf("Unexpected defaults %+v", config)
	}
	if config.Shading != integrator.DefaultShadingConfig() {
		t.Error("Expected default shading constants")
	}
}
