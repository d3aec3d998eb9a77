package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/funnsam/termray/pkg/core"
)

// AccumulationBuffer holds the running sum of per-frame pixel estimates,
// indexed [row][column] in display order. Dividing an entry by the number of
// frames rendered since the last Reset gives the current estimate.
type AccumulationBuffer [][]core.Vec3

// NewAccumulationBuffer creates a zeroed buffer of height rows of width
func NewAccumulationBuffer(width, height int) AccumulationBuffer {
	buf := make(AccumulationBuffer, height)
	for y := range buf {
		buf[y] = make([]core.Vec3, width)
	}
	return buf
}

// Reset zeroes every entry in place
func (b AccumulationBuffer) Reset() {
	for y := range b {
		clear(b[y])
	}
}

// Width returns the length of the first row, or 0 for an empty buffer
func (b AccumulationBuffer) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the number of rows
func (b AccumulationBuffer) Height() int {
	return len(b)
}

// validate checks that the buffer is non-empty and rectangular
func (b AccumulationBuffer) validate() error {
	if b.Height() == 0 || b.Width() == 0 {
		return fmt.Errorf("empty accumulation buffer (%dx%d)", b.Width(), b.Height())
	}
	for y, row := range b {
		if len(row) != b.Width() {
			return fmt.Errorf("accumulation buffer row %d has %d pixels, expected %d", y, len(row), b.Width())
		}
	}
	return nil
}

// RGB is one displayable pixel
type RGB struct {
	R, G, B uint8
}

// Frame is a displayable image indexed [row][column], row 0 at the top
type Frame [][]RGB

// NewFrame creates a black frame
func NewFrame(width, height int) Frame {
	frame := make(Frame, height)
	for y := range frame {
		frame[y] = make([]RGB, width)
	}
	return frame
}

// Width returns the length of the first row, or 0 for an empty frame
func (f Frame) Width() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// Height returns the number of rows
func (f Frame) Height() int {
	return len(f)
}

// Image copies the frame into an opaque RGBA image
func (f Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	for y, row := range f {
		for x, p := range row {
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

// ToneMap converts a linear estimate to a byte with a square-root gamma.
// Negative and NaN inputs give 0; anything at or above 1 saturates at 255.
func ToneMap(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(math.Min(math.Sqrt(v)*255, 255))
}

// toneMapPixel maps each channel of an estimate through ToneMap
func toneMapPixel(c core.Vec3) RGB {
	return RGB{R: ToneMap(c.X), G: ToneMap(c.Y), B: ToneMap(c.Z)}
}
