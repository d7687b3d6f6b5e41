package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidShape is returned when a shape parameter is out of range
var ErrInvalidShape = errors.New("invalid shape")

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float32
	Mat    material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, mat material.Material) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		Mat:    mat,
	}
}

// Intersect tests the ray against the sphere using the geometric method.
// A ray starting inside the sphere returns the exit distance.
func (s *Sphere) Intersect(ray core.Ray) (float32, bool) {
	// Vector from ray origin to sphere center
	oc := s.Center.Sub(ray.Origin)

	// Distance along the ray to the point of closest approach
	tca := oc.Dot(ray.Direction)
	d2 := oc.Dot(oc) - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return 0, false
	}

	thc := math32.Sqrt(r2 - d2)
	t0 := tca - thc
	if t0 < 0 {
		t1 := tca + thc
		if t1 < 0 {
			return 0, false
		}
		return t1, true
	}
	return t0, true
}

// NormalAt returns the outward normal (from center through point)
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Sub(s.Center).Normalize()
}

// Material returns the sphere's material
func (s *Sphere) Material() material.Material {
	return s.Mat
}

// Validate checks the sphere's radius and material
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) {
		return fmt.Errorf("%w: sphere radius must be positive, got %v", ErrInvalidShape, s.Radius)
	}
	if err := s.Mat.Validate(); err != nil {
		return fmt.Errorf("sphere at %v: %w", s.Center, err)
	}
	return nil
}
