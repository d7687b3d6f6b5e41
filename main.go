package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	height    int
	fovDeg    float64
	depth     int
	workers   int
	output    string
	thumb     int
	upload    bool
	envFile   string
	help      bool
	set       map[string]bool // flags given explicitly
}

// newFlagSet registers every command line flag into opts
func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&opts.sceneName, "scene", "default", "Scene: a built-in name, a .json file, or the name of a .json file in the scenes directory")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.Float64Var(&opts.fovDeg, "fov", 0, "Field of view in degrees (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum recursion depth (negative = scene default, 0 = background only)")
	fs.IntVar(&opts.workers, "workers", 1, "Number of parallel row workers (1 = single-threaded)")
	fs.StringVar(&opts.output, "o", "", "Output file (.png, .jpg or .ppm); default output/<scene>/render_<timestamp>.png")
	fs.IntVar(&opts.thumb, "thumb", 0, "Also save a thumbnail this many pixels wide (0 = none)")
	fs.BoolVar(&opts.upload, "upload", false, "Upload the render to the configured S3 bucket")
	fs.StringVar(&opts.envFile, "env", ".env", "Environment file to load")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	return fs
}

func parseOptions(args []string) (*options, error) {
	opts := &options{set: make(map[string]bool)}
	fs := newFlagSet(opts)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.width < 0 || opts.height < 0 || opts.fovDeg < 0 || opts.thumb < 0 {
		return nil, errors.New("width, height, fov and thumb must not be negative")
	}
	return opts, nil
}

// cameraOverrides converts the size and fov flags into a camera override
func (o *options) cameraOverrides() geometry.CameraConfig {
	return geometry.CameraConfig{
		Width:  o.width,
		Height: o.height,
		FOV:    geometry.Radians(o.fovDeg),
	}
}

// resolveDepth picks the recursion depth: the flag, then the environment, then the scene
func resolveDepth(opts *options, cfg *config.Config, s *scene.Scene) int {
	if opts.depth >= 0 {
		return opts.depth
	}
	if cfg.MaxDepth > 0 {
		return cfg.MaxDepth
	}
	return s.MaxDepth
}

// resolveWorkers prefers the flag over the environment
func resolveWorkers(opts *options, cfg *config.Config) int {
	if opts.set["workers"] {
		return opts.workers
	}
	return cfg.Workers
}

// createScene resolves a scene name against the built-in scenes and the scenes directory
func createScene(sceneName, scenesDir string, overrides geometry.CameraConfig) (*scene.Scene, error) {
	s, err := scene.CreateScene(sceneName, scenesDir, overrides)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// createOutputPath returns <outputDir>/<scene id>/render_<timestamp>.png
func createOutputPath(outputDir, sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(outputDir, scene.SceneID(sceneName), fmt.Sprintf("render_%s.png", timestamp))
}

func printHelp(scenesDir string) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs := newFlagSet(&options{})
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	scenes, err := scene.ListScenes(scenesDir)
	if err != nil {
		fmt.Printf("  (failed to list scenes: %v)\n", err)
	}
	for _, info := range scenes {
		fmt.Printf("  %-16s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}

	if opts.help {
		printHelp(cfg.ScenesDir)
		return nil
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(opts.sceneName, cfg.ScenesDir, opts.cameraOverrides())
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	fmt.Printf("Using scene %s (%d spheres, %d lights)\n",
		selectedScene.Name, len(selectedScene.Shapes), len(selectedScene.Lights))

	filename := opts.output
	if filename == "" {
		filename = createOutputPath(cfg.OutputDir, opts.sceneName, time.Now())
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	renderConfig := renderer.RenderConfig{
		MaxDepth:   resolveDepth(opts, cfg, selectedScene),
		NumWorkers: resolveWorkers(opts, cfg),
	}
	raytracer := renderer.NewRaytracer(selectedScene, renderConfig, renderer.NewDefaultLogger())

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var stats renderer.RenderStats
	var img *image.RGBA
	if output.IsPPM(filename) && renderConfig.NumWorkers <= 1 && opts.thumb == 0 {
		stats, err = renderStreaming(ctx, raytracer, filename)
	} else {
		var fb *renderer.Framebuffer
		fb, stats, err = raytracer.RenderFramebuffer(ctx)
		if err == nil {
			img = fb.Image()
			if output.IsPPM(filename) {
				err = output.SaveFramebuffer(fb, filename)
			} else {
				err = output.SaveImage(img, filename)
			}
		}
	}
	if err != nil {
		return err
	}

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Rays: %d camera, %d shadow, %d reflection, %d refraction (%.1f per pixel, %d total internal reflections)\n",
		stats.Rays.CameraRays, stats.Rays.ShadowRays, stats.Rays.ReflectionRays, stats.Rays.RefractionRays,
		stats.RaysPerPixel(), stats.Rays.TotalInternalReflections)
	fmt.Printf("Render saved as %s\n", filename)

	files := []string{filename}
	if img != nil {
		fmt.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

		if opts.thumb > 0 {
			thumbPath := output.ThumbnailPath(filename)
			if err := output.SaveImage(output.Thumbnail(img, uint(opts.thumb)), thumbPath); err != nil {
				return err
			}
			fmt.Printf("Thumbnail saved as %s\n", thumbPath)
			files = append(files, thumbPath)
		}
	}

	if opts.upload {
		uploader, err := output.NewS3Uploader(cfg.S3, renderer.NewDefaultLogger())
		if err != nil {
			return err
		}
		for _, f := range files {
			key := filepath.ToSlash(filepath.Join(scene.SceneID(opts.sceneName), filepath.Base(f)))
			if err := uploader.UploadFile(ctx, f, key); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderStreaming writes pixels straight to a PPM file as they are shaded.
// A render that fails part way removes the truncated file.
func renderStreaming(ctx context.Context, raytracer *renderer.Raytracer, filename string) (renderer.RenderStats, error) {
	sink, err := output.CreatePPM(filename, raytracer.Width(), raytracer.Height())
	if err != nil {
		return renderer.RenderStats{}, err
	}
	stats, err := raytracer.Render(ctx, sink)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filename)
		return renderer.RenderStats{}, err
	}
	return stats, nil
}
