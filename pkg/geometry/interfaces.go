package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is the capability set the intersection loop needs from a primitive
type Shape interface {
	// Intersect returns the smallest non-negative distance along the ray at which it hits the shape
	Intersect(ray core.Ray) (float32, bool)
	// NormalAt returns the unit outward normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3
	Material() material.Material
}
