package renderer

import (
	"errors"
	"fmt"
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrFramebufferFull is returned when more pixels are written than the framebuffer holds
var ErrFramebufferFull = errors.New("framebuffer full")

// FrameSink receives one linear RGB pixel per call in raster order:
// rows top to bottom, pixels left to right within a row
type FrameSink interface {
	WritePixel(color core.Vec3) error
}

// Framebuffer holds a linear color per pixel in a pre-sized slice.
// Parallel renders write disjoint slots with Set; sequential renders append through WritePixel.
type Framebuffer struct {
	width  int
	height int
	pixels []core.Vec3
	cursor int
}

// NewFramebuffer creates a framebuffer for the given image size
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// WritePixel implements FrameSink
func (fb *Framebuffer) WritePixel(color core.Vec3) error {
	if fb.cursor >= len(fb.pixels) {
		return ErrFramebufferFull
	}
	fb.pixels[fb.cursor] = color
	fb.cursor++
	return nil
}

// Set stores the color of pixel (x, y)
func (fb *Framebuffer) Set(x, y int, color core.Vec3) {
	fb.pixels[y*fb.width+x] = color
}

// At returns the color of pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.pixels[y*fb.width+x]
}

// Width returns the framebuffer width
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height
func (fb *Framebuffer) Height() int { return fb.height }

// Pixels returns the pixel colors in raster order
func (fb *Framebuffer) Pixels() []core.Vec3 { return fb.pixels }

// Drain writes every pixel to sink in raster order
func (fb *Framebuffer) Drain(sink FrameSink) error {
	for i, c := range fb.pixels {
		if err := sink.WritePixel(c); err != nil {
			return fmt.Errorf("write pixel (%d,%d): %w", i%fb.width, i/fb.width, err)
		}
	}
	return nil
}

// Image converts the framebuffer into an 8-bit RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			img.SetRGBA(x, y, ToRGB(fb.At(x, y)))
		}
	}
	return img
}
