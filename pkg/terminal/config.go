package terminal

import (
	"math"
	"time"

	"golang.org/x/text/language"
)

// Config holds the interactive viewer's tunables
type Config struct {
	FrameBudget  time.Duration // Target frame time; input is polled for what remains of it
	MoveStep     float64       // Distance moved per key press
	RotateStep   float64       // Radians turned per key press
	FocusStep    float64       // Focal distance change per key press
	ApertureStep float64       // Aperture change per key press
	MaxSize      int           // Largest interactive image edge in pixels
	StillSize    int           // Edge of the F12 still in pixels
	StillPasses  int           // Frames accumulated into the F12 still
	StillDir     string        // Directory for timestamped stills when StillPath is empty
	StillPath    string        // Fixed destination for F12 stills
	Locale       language.Tag  // Number formatting of the status line
}

// DefaultConfig returns the standard viewer settings
func DefaultConfig() Config {
	return Config{
		FrameBudget:  30 * time.Millisecond,
		MoveStep:     0.1225,
		RotateStep:   2 * math.Pi / 16,
		FocusStep:    0.125,
		ApertureStep: 0.25,
		MaxSize:      50,
		StillSize:    512,
		StillPasses:  8,
		StillDir:     "output",
		Locale:       language.English,
	}
}
