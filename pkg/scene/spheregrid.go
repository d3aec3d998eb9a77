package scene

import (
	"math"
	"math/rand"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/geometry"
	"github.com/funnsam/termray/pkg/material"
)

const (
	gridHalfWidth   = 4   // Grid spans x in [-4, 4]
	gridDepth       = 8   // Grid spans z in [0, 8]
	gridSphereR     = 0.2 // Radius of every grid sphere
	gridJitter      = 0.3 // Maximum offset from the lattice point
	groundTop       = -1.0
	emissiveChance  = 0.1
	focalClearance  = 0.3 // Gap kept between grid spheres and the focal sphere
	focalSphereR    = 1.0
	focalSphereZ    = 4.0
	groundSphereR   = 1000.0
	gridLightness   = 0.7
	gridChromaRange = 0.15
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	lms := [3]float64{
		l + 0.3963377774*a + 0.2158037573*b,
		l - 0.1055613458*a - 0.0638541728*b,
		l - 0.0894841775*a - 1.2914855480*b,
	}
	for i := range lms {
		lms[i] = lms[i] * lms[i] * lms[i]
	}

	r := +4.0767416621*lms[0] - 3.3077115913*lms[1] + 0.2309699292*lms[2]
	g := -1.2684380046*lms[0] + 2.6097574011*lms[1] - 0.3413193965*lms[2]
	blue := -0.0041960863*lms[0] - 0.7034186147*lms[1] + 1.7076147010*lms[2]

	return core.NewVec3(
		math.Max(0, math.Min(1, r)),
		math.Max(0, math.Min(1, g)),
		math.Max(0, math.Min(1, blue)),
	)
}

// NewSphereGridScene creates a mirror sphere surrounded by a jittered grid of
// small colored spheres, a tenth of which glow. The layout and colors depend
// only on seed.
func NewSphereGridScene(seed int64) *Scene {
	random := rand.New(rand.NewSource(seed))

	s := NewScene("sphere-grid", CameraConfig{
		Position: core.NewVec3(0, 0.5, -3),
		Focus:    focalSphereZ + 3,
	})

	s.Add(geometry.NewSphere(core.NewVec3(0, groundTop-groundSphereR, 0), groundSphereR),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.Add(geometry.NewSphere(core.NewVec3(0, groundTop+focalSphereR, focalSphereZ), focalSphereR),
		material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.95, 0))

	for i := -gridHalfWidth; i <= gridHalfWidth; i++ {
		for j := 0; j <= gridDepth; j++ {
			x := float64(i) + (random.Float64()*2-1)*gridJitter
			z := float64(j) + (random.Float64()*2-1)*gridJitter

			// Keep the grid from intersecting the focal sphere
			dx, dz := x, z-focalSphereZ
			if math.Hypot(dx, dz) < focalSphereR+gridSphereR+focalClearance {
				continue
			}

			hue := float64(i+gridHalfWidth) / float64(2*gridHalfWidth) * 360
			chroma := 0.05 + random.Float64()*gridChromaRange
			color := oklchToRGB(gridLightness, chroma, hue)

			var mat *material.Material
			switch roll := random.Float64(); {
			case roll < emissiveChance:
				mat = material.NewEmissive(color.Multiply(4))
			case roll < 0.5:
				mat = material.NewLambertian(color)
			default:
				mat = material.NewMetal(color, 0.5+random.Float64()*0.5, random.Float64()*0.3)
			}

			s.Add(geometry.NewSphere(core.NewVec3(x, groundTop+gridSphereR, z), gridSphereR), mat)
		}
	}

	return s
}
