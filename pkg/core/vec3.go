package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a single-precision 3D vector used for points, directions and linear RGB colors
type Vec3 = mgl32.Vec3

// Vec4 is a single-precision 4D vector (material albedo weights)
type Vec4 = mgl32.Vec4

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// NewVec4 creates a new Vec4
func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{x, y, z, w}
}

// Reflect mirrors d about the unit normal n.
// d points away from the surface (toward the light or viewer); callers tracing a ray
// pass the negated ray direction.
func Reflect(d, n Vec3) Vec3 {
	return n.Mul(2 * d.Dot(n)).Sub(d)
}

// Refract bends the incident direction through a surface with the given refractive index
// using Snell's law. The ambient medium has index 1.0. When the incident direction
// approaches from inside (against the outward normal) the indices are swapped and the
// normal flipped. Returns false on total internal reflection, when no refracted ray exists.
func Refract(incident, normal Vec3, refractiveIndex float32) (Vec3, bool) {
	cosi := -mgl32.Clamp(normal.Dot(incident), -1, 1)
	etai, etat := float32(1), refractiveIndex
	if cosi < 0 {
		cosi = -cosi
		etai, etat = etat, etai
		normal = normal.Mul(-1)
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return Vec3{}, false
	}
	return incident.Mul(eta).Add(normal.Mul(eta*cosi - math32.Sqrt(k))), true
}

// MaxComponent returns the largest of the three components.
// NaN components are ignored unless every component is NaN.
func MaxComponent(v Vec3) float32 {
	m := v[0]
	for _, c := range v[1:] {
		if c > m || m != m {
			m = c
		}
	}
	return m
}

// Clamp returns a vector with components clamped to [minVal, maxVal]
func Clamp(v Vec3, minVal, maxVal float32) Vec3 {
	return Vec3{
		mgl32.Clamp(v[0], minVal, maxVal),
		mgl32.Clamp(v[1], minVal, maxVal),
		mgl32.Clamp(v[2], minVal, maxVal),
	}
}
