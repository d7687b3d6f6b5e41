package lights

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidLight is returned when a light parameter is out of range
var ErrInvalidLight = errors.New("invalid light")

// PointLight is an infinitesimal light source with a dimensionless intensity multiplier
type PointLight struct {
	Position  core.Vec3
	Intensity float32
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float32) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit direction from point toward the light and the distance to it.
// The direction is undefined (NaN) when the distance is zero.
func (l PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float32) {
	toLight := l.Position.Sub(point)
	distance := toLight.Len()
	return toLight.Mul(1 / distance), distance
}

// Validate checks the light parameters
func (l PointLight) Validate() error {
	if !(l.Intensity > 0) {
		return fmt.Errorf("%w: intensity must be positive, got %v", ErrInvalidLight, l.Intensity)
	}
	return nil
}
