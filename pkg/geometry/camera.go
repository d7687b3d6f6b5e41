package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidCamera is returned when camera parameters are out of range
var ErrInvalidCamera = errors.New("invalid camera")

// CameraConfig contains the parameters of the pinhole camera
type CameraConfig struct {
	Width  int     // Image width in pixels
	Height int     // Image height in pixels
	FOV    float32 // Field of view in radians
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.FOV > 0 {
		result.FOV = override.FOV
	}
	return result
}

// Radians converts an angle in degrees to float32 radians
func Radians(degrees float64) float32 {
	return float32(degrees * math.Pi / 180)
}

// Validate checks the camera configuration
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidCamera, c.Width, c.Height)
	}
	if !(c.FOV > 0 && c.FOV < math32.Pi) {
		return fmt.Errorf("%w: field of view must be in (0, pi), got %v", ErrInvalidCamera, c.FOV)
	}
	return nil
}

// Camera is a fixed pinhole camera at the world origin looking down -z
type Camera struct {
	config      CameraConfig
	halfHeight  float32 // tan(fov/2)
	aspectRatio float32
}

// NewCamera creates a camera from the configuration
func NewCamera(config CameraConfig) *Camera {
	return &Camera{
		config:      config,
		halfHeight:  math32.Tan(config.FOV / 2),
		aspectRatio: float32(config.Width) / float32(config.Height),
	}
}

// GetRay returns the normalized primary ray through the center of pixel (x, y).
// Row 0 is the top of the image.
func (c *Camera) GetRay(x, y int) core.Ray {
	width := float32(c.config.Width)
	height := float32(c.config.Height)

	dirX := (2*(float32(x)+0.5)/width - 1) * c.halfHeight * c.aspectRatio
	dirY := -(2*(float32(y)+0.5)/height - 1) * c.halfHeight
	direction := core.NewVec3(dirX, dirY, -1).Normalize()

	return core.NewRay(core.NewVec3(0, 0, 0), direction)
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.config.Height }

// Config returns the camera configuration
func (c *Camera) Config() CameraConfig { return c.config }
