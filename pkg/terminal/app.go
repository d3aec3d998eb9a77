package terminal

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/output"
	"github.com/funnsam/termray/pkg/renderer"
)

// App is the interactive viewer. Each iteration renders one frame into the
// running accumulation, draws it, then waits for at most one key for
// whatever remains of the frame budget.
type App struct {
	screen   tcell.Screen
	display  *Display
	renderer *renderer.Renderer
	state    *renderer.State
	config   Config
	status   *StatusLine
	logger   core.Logger

	buf    renderer.AccumulationBuffer
	passes int
	events chan tcell.Event
	now    func() time.Time
}

// NewApp creates a viewer on an initialized screen. The caller keeps
// ownership of the screen and the renderer.
func NewApp(screen tcell.Screen, r *renderer.Renderer, state *renderer.State, config Config, logger core.Logger) *App {
	return &App{
		screen:   screen,
		display:  NewDisplay(screen, config.MaxSize),
		renderer: r,
		state:    state,
		config:   config,
		status:   NewStatusLine(config.Locale),
		logger:   logger,
		now:      time.Now,
	}
}

// Passes returns the number of frames accumulated since the last reset
func (a *App) Passes() int {
	return a.passes
}

// Run loops until the user quits or a frame fails to render
func (a *App) Run() error {
	stop := make(chan struct{})
	defer close(stop)
	a.events = make(chan tcell.Event)
	go a.screen.ChannelEvents(a.events, stop)

	a.logger.Printf("Viewer started on scene %q\n", a.state.Scene.Name)
	fps := 0.0

	for {
		start := a.now()

		if size := a.display.Size(); size != a.buf.Width() {
			a.buf = renderer.NewAccumulationBuffer(size, size)
			a.passes = 0
			a.screen.Clear()
			a.logger.Printf("Image size %dx%d\n", size, size)
		}

		if a.buf.Width() > 0 {
			a.passes++
			frame, stats, err := a.renderer.Render(a.state, a.buf, a.passes)
			if err != nil {
				return fmt.Errorf("frame %d: %w", a.passes, err)
			}
			a.display.Draw(frame, a.status.Format(stats, fps, a.state))
		}

		quit, err := a.handleInput(a.now().Sub(start))
		if err != nil {
			return err
		}
		if quit {
			a.logger.Printf("Viewer stopped after %d frames\n", a.passes)
			return nil
		}

		if elapsed := a.now().Sub(start).Seconds(); elapsed > 0 {
			fps = 1 / elapsed
		}
	}
}

// handleInput waits for the rest of the frame budget and handles at most one
// event. It reports true when the viewer should exit.
func (a *App) handleInput(elapsed time.Duration) (bool, error) {
	wait := max(a.config.FrameBudget-elapsed, 0)

	select {
	case ev, ok := <-a.events:
		if !ok {
			return true, nil
		}
		return a.handleEvent(ev)
	case <-time.After(wait):
		return false, nil
	}
}

func (a *App) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		action := KeyAction(ev)
		switch action {
		case ActionNone:
		case ActionQuit:
			return true, nil
		case ActionStill:
			return false, a.renderStill()
		default:
			if Apply(a.state, action, a.config) {
				a.reset()
			}
		}
	}
	return false, nil
}

// reset discards the accumulated image after the view changed
func (a *App) reset() {
	a.buf.Reset()
	a.passes = 0
}

// renderStill renders and saves a high-resolution image of the current view.
// A failed save is logged and shown; the viewer keeps running.
func (a *App) renderStill() error {
	a.display.Show("Rendering...")
	a.logger.Printf("Start render\n")

	frame, stats, err := a.renderer.RenderStill(a.state, a.config.StillSize, a.config.StillPasses, func(pass, total int) {
		a.display.Show(fmt.Sprintf("Rendering sample %d/%d", pass, total))
	})
	if err != nil {
		return fmt.Errorf("still render: %w", err)
	}

	path := a.config.StillPath
	if path == "" {
		path = output.StillPath(a.config.StillDir, a.state.Scene.Name, a.now())
	}
	if err := output.Save(path, frame); err != nil {
		a.logger.Printf("Failed to save still: %v\n", err)
		a.display.Show("Save failed: " + err.Error())
		return nil
	}

	a.logger.Printf("End render: saved %s in %v\n", path, stats.Duration)
	return nil
}
