package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/language"

	"github.com/funnsam/termray/pkg/core"
	"github.com/funnsam/termray/pkg/output"
	"github.com/funnsam/termray/pkg/renderer"
	"github.com/funnsam/termray/pkg/scene"
	"github.com/funnsam/termray/pkg/terminal"
)

// options holds the parsed command line
type options struct {
	scene       string
	mesh        string
	meshDir     string
	size        int
	samples     int
	depth       int
	workers     int
	seed        int64
	still       string
	stillSize   int
	stillPasses int
	logPath     string
	locale      string
	list        bool
	help        bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stdout io.Writer) (*options, *flag.FlagSet, error) {
	rendererDefaults := renderer.DefaultConfig()
	viewerDefaults := terminal.DefaultConfig()
	opts := &options{}

	fs := flag.NewFlagSet("termray", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.scene, "scene", "default", "Scene ID (see -list)")
	fs.StringVar(&opts.mesh, "mesh", "", "Mesh file (.obj, .gltf, .glb, .ply) for the 'mesh' scene")
	fs.StringVar(&opts.meshDir, "mesh-dir", "models", "Directory scanned for mesh files by -list")
	fs.IntVar(&opts.size, "size", viewerDefaults.MaxSize, "Largest interactive image edge in pixels")
	fs.IntVar(&opts.samples, "samples", rendererDefaults.SamplesLevel, "Samples level L; each frame takes L*L samples per pixel")
	fs.IntVar(&opts.depth, "depth", rendererDefaults.Shading.MaxDepth, "Maximum bounce depth")
	fs.IntVar(&opts.workers, "workers", rendererDefaults.NumWorkers, "Number of render workers (0 = CPU count)")
	fs.Int64Var(&opts.seed, "seed", rendererDefaults.Seed, "Random seed for rendering and the sphere grid")
	fs.StringVar(&opts.still, "still", "", "Render one still to this path (.png, .bmp, .tif) and exit")
	fs.IntVar(&opts.stillSize, "still-size", viewerDefaults.StillSize, "Edge of stills in pixels")
	fs.IntVar(&opts.stillPasses, "still-passes", viewerDefaults.StillPasses, "Frames accumulated into stills")
	fs.StringVar(&opts.logPath, "log", "logs.txt", "File the interactive viewer writes its log to on exit")
	fs.StringVar(&opts.locale, "locale", "en", "Locale for numbers on the status line")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, fs, nil
}

func run(args []string, stdout io.Writer) error {
	opts, fs, err := parseFlags(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(stdout, fs)
		return nil
	}
	if opts.list {
		return listScenes(stdout, opts.meshDir)
	}

	locale, err := language.Parse(opts.locale)
	if err != nil {
		return fmt.Errorf("invalid locale %q: %w", opts.locale, err)
	}

	sc, err := scene.Create(opts.scene, opts.mesh, opts.seed)
	if err != nil {
		return err
	}

	rendererConfig := renderer.DefaultConfig()
	rendererConfig.SamplesLevel = opts.samples
	rendererConfig.NumWorkers = opts.workers
	rendererConfig.Seed = opts.seed
	rendererConfig.Shading.MaxDepth = opts.depth

	viewerConfig := terminal.DefaultConfig()
	viewerConfig.MaxSize = opts.size
	viewerConfig.StillSize = opts.stillSize
	viewerConfig.StillPasses = opts.stillPasses
	viewerConfig.Locale = locale

	if opts.still != "" {
		return renderStill(stdout, sc, rendererConfig, viewerConfig, opts.still)
	}
	return runInteractive(sc, rendererConfig, viewerConfig, opts.logPath)
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "termray - progressive path tracer for the terminal")
	fmt.Fprintln(w, "Usage: termray [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Controls:")
	fmt.Fprintln(w, "  a/d q/e w/s      move along the view's X, Y and Z axes")
	fmt.Fprintln(w, "  arrow keys       turn the camera")
	fmt.Fprintln(w, "  Home/End         focus farther/nearer")
	fmt.Fprintln(w, "  PageUp/PageDown  widen/narrow the aperture")
	fmt.Fprintln(w, "  Backspace        focus on whatever is straight ahead")
	fmt.Fprintln(w, "  F12              save a still")
	fmt.Fprintln(w, "  Esc, Ctrl-C      quit")
}

func listScenes(w io.Writer, meshDir string) error {
	scenes, err := scene.ListScenes(meshDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-20s %s - %s\n", info.ID, info.Name, info.Description)
	}
	return nil
}

// renderStill renders one image without touching the terminal
func renderStill(stdout io.Writer, sc *scene.Scene, rendererConfig renderer.Config, viewerConfig terminal.Config, path string) error {
	if _, err := output.FormatFromPath(path); err != nil {
		return err
	}

	logger := core.NewDefaultLogger()
	fmt.Fprintf(stdout, "Using %s (%d primitives)...\n", sc.Name, sc.GetPrimitiveCount())

	r := renderer.NewRenderer(rendererConfig, logger)
	defer r.Close()

	frame, stats, err := r.RenderStill(renderer.NewState(sc), viewerConfig.StillSize, viewerConfig.StillPasses, nil)
	if err != nil {
		return err
	}
	if err := output.Save(path, frame); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Render completed in %v (%d samples per pixel)\n", stats.Duration, stats.SamplesPerPixel)
	fmt.Fprintf(stdout, "Render saved as %s\n", path)
	return nil
}

// runInteractive owns the terminal until the viewer exits, then writes the
// collected log
func runInteractive(sc *scene.Scene, rendererConfig renderer.Config, viewerConfig terminal.Config, logPath string) (err error) {
	logs := core.NewLogCollector()
	defer func() {
		if flushErr := logs.Flush(logPath); flushErr != nil && err == nil {
			err = flushErr
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	r := renderer.NewRenderer(rendererConfig, logs)
	defer r.Close()

	logs.Printf("Loaded %s with %d primitives\n", sc.Name, sc.GetPrimitiveCount())
	return terminal.NewApp(screen, r, renderer.NewState(sc), viewerConfig, logs).Run()
}
