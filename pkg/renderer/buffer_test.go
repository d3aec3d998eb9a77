package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/funnsam/termray/pkg/core"
)

func TestToneMap(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want uint8
	}{
		{"negative", -1, 0},
		{"NaN", math.NaN(), 0},
		{"zero", 0, 0},
		{"quarter", 0.25, 127},
		{"one", 1, 255},
		{"over range", 4, 255},
		{"infinity", math.Inf(1), 255},
		{"negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToneMap(tt.v); got != tt.want {
				t.Errorf("ToneMap(%v) = %d, want %d", tt.v, got, tt.want)
			}
		})
	}
}

func TestAccumulationBuffer_Reset(t *testing.T) {
	buf := NewAccumulationBuffer(3, 2)
	if buf.Width() != 3 || buf.Height() != 2 {
		t.Fatalf("Expected 3x2 buffer, got %dx%d", buf.Width(), buf.Height())
	}

	buf[1][2] = core.NewVec3(1, 2, 3)
	buf.Reset()

	for y := range buf {
		for x := range buf[y] {
			if !buf[y][x].IsZero() {
				t.Errorf("Expected zero at (%d,%d) after reset, got %v", x, y, buf[y][x])
			}
		}
	}
	if buf.Width() != 3 || buf.Height() != 2 {
		t.Errorf("Reset changed the buffer size to %dx%d", buf.Width(), buf.Height())
	}
}

func TestAccumulationBuffer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		buf     AccumulationBuffer
		wantErr bool
	}{
		{"square", NewAccumulationBuffer(2, 2), false},
		{"wide", NewAccumulationBuffer(5, 1), false},
		{"nil", nil, true},
		{"zero width", NewAccumulationBuffer(0, 3), true},
		{"ragged", AccumulationBuffer{make([]core.Vec3, 2), make([]core.Vec3, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.buf.validate(); (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrame_Image(t *testing.T) {
	frame := NewFrame(2, 1)
	frame[0][1] = RGB{R: 10, G: 20, B: 30}

	img := frame.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Expected 2x1 image, got %v", img.Bounds())
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Expected opaque (10,20,30), got %v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("Expected opaque black, got %v", got)
	}
}
