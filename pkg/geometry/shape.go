package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// SurfaceOffset is the distance secondary rays are pushed off a surface
const SurfaceOffset = 1e-3

// Hit contains information about the nearest ray-object intersection
type Hit struct {
	Shape    Shape             // The shape that was hit
	Material material.Material // Copy of the hit object's material
	Position core.Vec3         // Point of intersection
	Normal   core.Vec3         // Unit outward normal, independent of the approach side
	T        float32           // Parameter t along the ray
}

// OffsetOrigin returns the hit position nudged off the surface toward the side that dir leaves from
func (h *Hit) OffsetOrigin(dir core.Vec3) core.Vec3 {
	if dir.Dot(h.Normal) < 0 {
		return h.Position.Sub(h.Normal.Mul(SurfaceOffset))
	}
	return h.Position.Add(h.Normal.Mul(SurfaceOffset))
}

// SpawnRay creates a secondary ray leaving the surface in direction dir
func (h *Hit) SpawnRay(dir core.Vec3) core.Ray {
	return core.NewRay(h.OffsetOrigin(dir), dir)
}

// NearestHit finds the closest shape along the ray.
// Distances that do not compare (NaN) never replace the current best.
func NearestHit(ray core.Ray, shapes []Shape) (*Hit, bool) {
	var closest Shape
	var closestT float32

	for _, shape := range shapes {
		t, ok := shape.Intersect(ray)
		if !ok {
			continue
		}
		if closest == nil {
			if t == t {
				closest, closestT = shape, t
			}
			continue
		}
		if t < closestT {
			closest, closestT = shape, t
		}
	}

	if closest == nil {
		return nil, false
	}

	position := ray.At(closestT)
	return &Hit{
		Shape:    closest,
		Material: closest.Material(),
		Position: position,
		Normal:   closest.NormalAt(position),
		T:        closestT,
	}, true
}
