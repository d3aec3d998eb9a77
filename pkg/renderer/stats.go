package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/funnsam/termray/pkg/core"
)

// RenderStats contains statistics about one rendered frame
type RenderStats struct {
	Width, Height   int           // Image size in pixels
	Pass            int           // Frames accumulated since the last reset, this one included
	SamplesPerPixel int           // Samples behind each pixel of the running estimate
	TotalSamples    int           // Samples traced for this frame
	MeanLuminance   float64       // Mean luminance of the tone-mapped frame, in [0,1]
	Duration        time.Duration // Wall time of the frame
	NumWorkers      int           // Size of the worker pool
}

// MeanLuminance returns the average luminance of a frame's pixels,
// each channel scaled to [0,1]
func MeanLuminance(frame Frame) float64 {
	if frame.Width() == 0 {
		return 0
	}

	lum := make([]float64, 0, frame.Width()*frame.Height())
	for _, row := range frame {
		for _, p := range row {
			c := core.NewVec3(float64(p.R), float64(p.G), float64(p.B)).Divide(255)
			lum = append(lum, c.Luminance())
		}
	}
	return stat.Mean(lum, nil)
}
