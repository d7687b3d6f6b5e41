package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	MaxDepth   int // Maximum recursion depth (clamped to integrator.MaxDepthLimit)
	NumWorkers int // Number of row workers (1 or less renders on the calling goroutine)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		MaxDepth:   integrator.DefaultMaxDepth,
		NumWorkers: 1,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	integrator.Scene
	GetCamera() *geometry.Camera
}

// Raytracer drives the camera over every pixel and shades each primary ray
type Raytracer struct {
	scene      Scene
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer using the Whitted integrator
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      scene,
		camera:     scene.GetCamera(),
		integrator: integrator.NewWhittedIntegrator(config.MaxDepth),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// Width returns the output width in pixels
func (rt *Raytracer) Width() int { return rt.camera.Width() }

// Height returns the output height in pixels
func (rt *Raytracer) Height() int { return rt.camera.Height() }

// RenderPixel shades the primary ray through pixel (x, y)
func (rt *Raytracer) RenderPixel(x, y int, rays *integrator.RayStats) core.Vec3 {
	return rt.integrator.RayColor(rt.camera.GetRay(x, y), rt.scene, rays)
}

// renderRow shades one row into its framebuffer slots
func (rt *Raytracer) renderRow(y int, fb *Framebuffer, rays *integrator.RayStats) {
	for x := 0; x < fb.Width(); x++ {
		fb.Set(x, y, rt.RenderPixel(x, y, rays))
	}
}

// Render shades every pixel and hands the results to sink in raster order.
// With a single worker pixels are streamed as they are shaded; otherwise rows are
// shaded in parallel into a framebuffer that is drained once complete.
func (rt *Raytracer) Render(ctx context.Context, sink FrameSink) (RenderStats, error) {
	start := time.Now()
	rt.logStart()

	var rays integrator.RayStats
	if rt.workers() <= 1 {
		if err := rt.renderSequential(ctx, sink, &rays); err != nil {
			return RenderStats{}, err
		}
	} else {
		fb := NewFramebuffer(rt.Width(), rt.Height())
		if err := rt.renderParallel(ctx, fb, &rays); err != nil {
			return RenderStats{}, err
		}
		if err := fb.Drain(sink); err != nil {
			return RenderStats{}, err
		}
	}

	return rt.finish(start, rays), nil
}

// RenderFramebuffer shades every pixel into a new framebuffer
func (rt *Raytracer) RenderFramebuffer(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	rt.logStart()

	fb := NewFramebuffer(rt.Width(), rt.Height())
	var rays integrator.RayStats
	var err error
	if rt.workers() <= 1 {
		err = rt.renderSequential(ctx, fb, &rays)
	} else {
		err = rt.renderParallel(ctx, fb, &rays)
	}
	if err != nil {
		return nil, RenderStats{}, err
	}

	return fb, rt.finish(start, rays), nil
}

// RenderImage renders the scene and returns the finalized 8-bit image
func (rt *Raytracer) RenderImage(ctx context.Context) (*image.RGBA, RenderStats, error) {
	fb, stats, err := rt.RenderFramebuffer(ctx)
	if err != nil {
		return nil, RenderStats{}, err
	}
	return fb.Image(), stats, nil
}

func (rt *Raytracer) renderSequential(ctx context.Context, sink FrameSink, rays *integrator.RayStats) error {
	for y := 0; y < rt.Height(); y++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("render cancelled at row %d: %w", y, err)
		}
		for x := 0; x < rt.Width(); x++ {
			if err := sink.WritePixel(rt.RenderPixel(x, y, rays)); err != nil {
				return fmt.Errorf("write pixel (%d,%d): %w", x, y, err)
			}
		}
	}
	return nil
}

func (rt *Raytracer) renderParallel(ctx context.Context, fb *Framebuffer, rays *integrator.RayStats) error {
	pool := NewWorkerPool(ctx, rt, fb.Height(), rt.workers())
	pool.Start()
	defer pool.Stop()

	for y := 0; y < fb.Height(); y++ {
		pool.SubmitTask(RowTask{Y: y, Framebuffer: fb})
	}

	var firstErr error
	for i := 0; i < fb.Height(); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("render cancelled at row %d: %w", result.Y, result.Error)
		}
		rays.Merge(result.Rays)
	}
	return firstErr
}

func (rt *Raytracer) workers() int {
	return max(1, rt.config.NumWorkers)
}

func (rt *Raytracer) logStart() {
	rt.logger.Printf("Rendering %dx%d (max depth %d, %d workers)...\n",
		rt.Width(), rt.Height(), integrator.ClampDepth(rt.config.MaxDepth), rt.workers())
}

func (rt *Raytracer) finish(start time.Time, rays integrator.RayStats) RenderStats {
	stats := RenderStats{
		Width:       rt.Width(),
		Height:      rt.Height(),
		TotalPixels: rt.Width() * rt.Height(),
		Workers:     rt.workers(),
		Rays:        rays,
		Duration:    time.Since(start),
	}
	rt.logger.Printf("Render completed in %v (%d rays, %.2f per pixel, %d total internal reflections)\n",
		stats.Duration, stats.Rays.Total(), stats.RaysPerPixel(), stats.Rays.TotalInternalReflections)
	return stats
}
