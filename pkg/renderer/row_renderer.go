package renderer

import (
	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/integrator"
	"github.com/funnsam/termray/pkg/scene"
)

// RowRenderer renders display rows of one frame. It is built once per frame
// from a snapshot of the viewer state and shared read-only by all workers.
type RowRenderer struct {
	scene         *scene.Scene
	camera        Camera
	integrator    integrator.Integrator
	width, height int
	samplesLevel  int
}

// NewRowRenderer creates a row renderer for a width x height frame taking
// samplesLevel*samplesLevel samples per pixel
func NewRowRenderer(state *State, integ integrator.Integrator, width, height, samplesLevel int) *RowRenderer {
	return &RowRenderer{
		scene:        state.Scene,
		camera:       NewCamera(state),
		integrator:   integ,
		width:        width,
		height:       height,
		samplesLevel: max(samplesLevel, 1),
	}
}

// RenderRow adds this frame's estimate for display row ay into accum, then
// writes the tone-mapped running average into pixels. Returns the number of
// samples traced.
func (rr *RowRenderer) RenderRow(ay int, accum []core.Vec3, pixels []RGB, passesDone int, seed int64) int {
	sampler := core.NewSeededSampler(rowSeed(seed, passesDone, ay))
	y := float64(rr.height - ay - 1)
	samples := 0

	for ax := range pixels {
		x := float64(rr.width - ax - 1)
		color := rr.samplePixel(x, y, sampler)
		samples += rr.samplesLevel * rr.samplesLevel

		accum[ax] = accum[ax].Add(color)
		pixels[ax] = toneMapPixel(accum[ax].Divide(float64(passesDone)))
	}

	return samples
}

// samplePixel averages the L*L radiance samples of the pixel at (x, y)
func (rr *RowRenderer) samplePixel(x, y float64, sampler core.Sampler) core.Vec3 {
	level := rr.samplesLevel
	dof := rr.camera.DepthOfField()

	var sum core.Vec3
	for iy := 0; iy < level; iy++ {
		for ix := 0; ix < level; ix++ {
			// The lens supplies the jitter when depth of field is on
			offx, offy := 0.0, 0.0
			if !dof {
				offx = float64(ix)/float64(level) - 0.5
				offy = float64(iy)/float64(level) - 0.5
			}

			px := (x+offx)/float64(rr.width)*2 - 1
			py := (y+offy)/float64(rr.height)*2 - 1

			ray := rr.camera.GetRay(px, py, sampler)
			sum = sum.Add(rr.integrator.Trace(ray, rr.scene, 0, sampler).Radiance())
		}
	}

	return sum.Divide(float64(level * level))
}

// rowSeed derives the random stream of one row of one frame
func rowSeed(seed int64, passesDone, row int) int64 {
	return seed + int64(passesDone)*1_000_003 + int64(row)*7919
}
