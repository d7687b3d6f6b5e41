package renderer

import (
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width       int                 // Image width in pixels
	Height      int                 // Image height in pixels
	TotalPixels int                 // Total number of pixels rendered
	Workers     int                 // Number of workers that rendered rows
	Rays        integrator.RayStats // Rays traced, by kind
	Duration    time.Duration       // Wall-clock render time
}

// RaysPerPixel returns the average number of rays traced per pixel
func (s RenderStats) RaysPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Rays.Total()) / float64(s.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an 8-bit image in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
		}
	}
	return total / float64(pixels)
}
