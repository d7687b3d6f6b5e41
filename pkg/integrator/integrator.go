package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene is the read-only view of a scene the integrator shades against
type Scene interface {
	GetShapes() []geometry.Shape
	GetLights() []lights.PointLight
	GetBackgroundColor() core.Vec3
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear RGB radiance arriving along a primary ray.
	// Ray counts are accumulated into stats when it is non-nil.
	RayColor(ray core.Ray, scene Scene, stats *RayStats) core.Vec3
}

// RayStats counts the rays traced while shading
type RayStats struct {
	CameraRays               int64
	ShadowRays               int64
	ReflectionRays           int64
	RefractionRays           int64
	TotalInternalReflections int64 // Refraction branches with no transmitted ray
}

// Merge adds other's counts into s
func (s *RayStats) Merge(other RayStats) {
	s.CameraRays += other.CameraRays
	s.ShadowRays += other.ShadowRays
	s.ReflectionRays += other.ReflectionRays
	s.RefractionRays += other.RefractionRays
	s.TotalInternalReflections += other.TotalInternalReflections
}

// Total returns the number of rays traced of any kind
func (s RayStats) Total() int64 {
	return s.CameraRays + s.ShadowRays + s.ReflectionRays + s.RefractionRays
}
