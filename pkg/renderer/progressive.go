package renderer

import (
	"errors"
	"fmt"
	"time"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/integrator"
)

// ErrClosed is returned by Render after Close
var ErrClosed = errors.New("renderer is closed")

// Config contains configuration for progressive rendering
type Config struct {
	SamplesLevel int   // Samples per pixel per frame is SamplesLevel squared
	NumWorkers   int   // Number of parallel workers (0 = use CPU count)
	Seed         int64 // Base seed of every row's random stream
	Shading      integrator.ShadingConfig
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesLevel: 4,
		NumWorkers:   0, // Auto-detect CPU count
		Seed:         42,
		Shading:      integrator.DefaultShadingConfig(),
	}
}

// Renderer evaluates frames row-parallel on a persistent worker pool.
// A frame's estimate is added into a caller-owned accumulation buffer, so
// successive frames of an unchanged view refine the same image.
// Not safe for concurrent Render calls.
type Renderer struct {
	config     Config
	integrator integrator.Integrator
	workerPool *WorkerPool
	logger     core.Logger
	closed     bool
}

// NewRenderer creates a renderer and starts its workers
func NewRenderer(config Config, logger core.Logger) *Renderer {
	if config.SamplesLevel < 1 {
		config.SamplesLevel = 1
	}

	workerPool := NewWorkerPool(config.NumWorkers)
	workerPool.Start()

	return &Renderer{
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(config.Shading),
		workerPool: workerPool,
		logger:     logger,
	}
}

// Config returns the configuration in use
func (r *Renderer) Config() Config {
	return r.config
}

// NumWorkers returns the size of the worker pool
func (r *Renderer) NumWorkers() int {
	return r.workerPool.GetNumWorkers()
}

// Render traces one frame of state into buf and returns the tone-mapped
// average. passesDone counts frames since the buffer was last reset,
// including this one. The image size is the buffer's size.
func (r *Renderer) Render(state *State, buf AccumulationBuffer, passesDone int) (Frame, RenderStats, error) {
	if r.closed {
		return nil, RenderStats{}, ErrClosed
	}
	if state == nil || state.Scene == nil {
		return nil, RenderStats{}, fmt.Errorf("render state has no scene")
	}
	if err := buf.validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if passesDone < 1 {
		return nil, RenderStats{}, fmt.Errorf("passes done must be at least 1, got %d", passesDone)
	}

	startTime := time.Now()
	width, height := buf.Width(), buf.Height()
	frame := NewFrame(width, height)
	rows := NewRowRenderer(state, r.integrator, width, height, r.config.SamplesLevel)

	if isPowerOfTwo(passesDone) {
		r.logger.Printf("Pass %d: %dx%d, %d samples per pixel (using %d workers)...\n",
			passesDone, width, height, r.config.SamplesLevel*r.config.SamplesLevel, r.workerPool.GetNumWorkers())
	}

	// Submit from a separate goroutine so a full task queue cannot block
	// the collection of results
	go func() {
		for ay := 0; ay < height; ay++ {
			r.workerPool.SubmitTask(RowTask{
				Row:        ay,
				Accum:      buf[ay],
				Pixels:     frame[ay],
				PassesDone: passesDone,
				Seed:       r.config.Seed,
				Renderer:   rows,
			})
		}
	}()

	totalSamples := 0
	for i := 0; i < height; i++ {
		result, ok := r.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		totalSamples += result.Samples
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		Pass:            passesDone,
		SamplesPerPixel: r.config.SamplesLevel * r.config.SamplesLevel * passesDone,
		TotalSamples:    totalSamples,
		MeanLuminance:   MeanLuminance(frame),
		Duration:        time.Since(startTime),
		NumWorkers:      r.workerPool.GetNumWorkers(),
	}

	return frame, stats, nil
}

// RenderStill renders passes frames of a size x size image into a fresh
// buffer, independent of any interactive accumulation. progress, if not nil,
// is called after each pass.
func (r *Renderer) RenderStill(state *State, size, passes int, progress func(pass, total int)) (Frame, RenderStats, error) {
	if size < 1 {
		return nil, RenderStats{}, fmt.Errorf("still size must be positive, got %d", size)
	}
	if passes < 1 {
		return nil, RenderStats{}, fmt.Errorf("still passes must be positive, got %d", passes)
	}

	r.logger.Printf("Starting still render: %dx%d with %d passes...\n", size, size, passes)
	startTime := time.Now()
	buf := NewAccumulationBuffer(size, size)

	var frame Frame
	var stats RenderStats
	for pass := 1; pass <= passes; pass++ {
		var err error
		frame, stats, err = r.Render(state, buf, pass)
		if err != nil {
			return nil, RenderStats{}, fmt.Errorf("still pass %d: %w", pass, err)
		}
		if progress != nil {
			progress(pass, passes)
		}
	}

	stats.Duration = time.Since(startTime)
	r.logger.Printf("Still render completed in %v\n", stats.Duration)
	return frame, stats, nil
}

// Close stops the worker pool. The renderer cannot be used afterwards.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.workerPool.Stop()
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
