package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// scenesDir holds scene files that can be selected by bare name
const scenesDir = "scenes"

// options holds the parsed command line
type options struct {
	scene   string
	width   int
	samples int
	depth   int
	seed    int64
	format  string
	output  string
	caption string
	verbose bool
	list    bool
	help    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.scene, "scene", scene.Names()[0], "Built-in scene name or path to a .json scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounces per sample (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = seed from the clock)")
	fs.StringVar(&opts.format, "format", string(output.FormatPPM), "Output format: "+formatList())
	fs.StringVar(&opts.output, "output", "", "Output file, '-' for stdout (default output/<scene>/render_<timestamp>.<ext>)")
	fs.StringVar(&opts.caption, "caption", "", "Caption stamped on image formats")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log per-scanline progress")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	err := fs.Parse(args)
	return opts, fs, err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(stdout, fs)
		return nil
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.list {
		return listScenes(stdout, logger)
	}

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sampler := core.NewSeededSampler(seed)

	selectedScene, err := createScene(scenesDir, opts.scene, sampler)
	if err != nil {
		return err
	}

	config := selectedScene.Sampling(opts.width, opts.samples, opts.depth)
	if err := config.Validate(); err != nil {
		return err
	}

	logger.Info("starting render",
		"scene", selectedScene.Name,
		"objects", selectedScene.GetPrimitiveCount(),
		"width", config.Width,
		"height", config.Height,
		"samples", config.SamplesPerPixel,
		"depth", config.MaxDepth,
		"seed", seed,
	)

	// Stream to stdout, or to a timestamped file under output/<scene>
	var w io.Writer = stdout
	var file *os.File
	filename := opts.output
	if filename != "-" {
		if filename == "" {
			outputDir := createOutputDir(opts.scene)
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("error creating output directory: %w", err)
			}
			filename = outputFilename(outputDir, format, time.Now())
		}

		file, err = os.Create(filename)
		if err != nil {
			return fmt.Errorf("error creating file: %w", err)
		}
		w = file
	}

	raytracer := selectedScene.NewRaytracer(config, sampler)
	raytracer.SetLogger(logger)

	err = renderTo(ctx, raytracer, w, format, opts.caption)
	if file != nil {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("error closing file: %w", closeErr)
		}
		// Drop the partial image
		if err != nil {
			os.Remove(filename)
		}
	}
	if err != nil {
		if renderer.IsAborted(err) {
			logger.Warn("render aborted", "scene", selectedScene.Name)
		}
		return err
	}

	if file != nil {
		logger.Info("render saved", "file", filename)
	}
	return nil
}

// renderTo streams a full render into w in format
func renderTo(ctx context.Context, raytracer *renderer.Raytracer, w io.Writer, format output.Format, caption string) error {
	buffered := bufio.NewWriter(w)
	sink, err := output.NewSink(buffered, format, caption)
	if err != nil {
		return err
	}

	if _, err := raytracer.Render(ctx, sink); err != nil {
		return err
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("error writing image: %w", err)
	}
	return nil
}

// createScene resolves a built-in scene, a .json path, or a bare name found under dir
func createScene(dir, name string, sampler core.Sampler) (*scene.Scene, error) {
	s, err := tryLoadJSONScene(dir, name)
	if err != nil || s != nil {
		return s, err
	}
	return scene.Create(name, sampler)
}

// tryLoadJSONScene loads <dir>/<name>.json when it exists.
// It returns nil and no error when there is no such file.
func tryLoadJSONScene(dir, name string) (*scene.Scene, error) {
	if name == "" || strings.HasSuffix(strings.ToLower(name), ".json") {
		return nil, nil
	}
	path := filepath.Join(dir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return scene.LoadJSON(path)
}

// createOutputDir names the output directory for a scene name or scene file path
func createOutputDir(sceneName string) string {
	base := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	return filepath.Join("output", base)
}

// outputFilename builds render_<timestamp>.<ext> inside dir
func outputFilename(dir string, format output.Format, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(dir, "render_"+timestamp+format.Extension())
}

func formatList() string {
	names := make([]string, 0, len(output.Formats()))
	for _, f := range output.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func listScenes(w io.Writer, logger *slog.Logger) error {
	fmt.Fprintln(w, "Built-in scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Fprintf(w, "  %-14s %s\n", info.ID, info.Description)
	}

	jsonScenes, err := scene.ListJSONScenes(scenesDir, logger)
	if err != nil {
		return err
	}
	if len(jsonScenes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Scene files:")
		for _, info := range jsonScenes {
			fmt.Fprintf(w, "  %-28s %s\n", info.FilePath, info.DisplayName)
		}
	}
	return nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Fprintf(w, "  %s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.<ext> unless -output is given")
}
