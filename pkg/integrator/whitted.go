package integrator

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

const (
	// DefaultMaxDepth is the recursion budget used when none is configured
	DefaultMaxDepth = 5
	// MaxDepthLimit caps any requested depth; every level can branch twice
	MaxDepthLimit = 16
)

// ClampDepth limits a requested recursion depth to [0, MaxDepthLimit]
func ClampDepth(depth int) int {
	return max(0, min(depth, MaxDepthLimit))
}

// WhittedIntegrator implements recursive Whitted-style ray tracing:
// Phong direct lighting with hard shadows plus mirror reflection and refraction
type WhittedIntegrator struct {
	maxDepth int
}

// NewWhittedIntegrator creates a new Whitted integrator with a clamped depth budget
func NewWhittedIntegrator(maxDepth int) *WhittedIntegrator {
	return &WhittedIntegrator{maxDepth: ClampDepth(maxDepth)}
}

// MaxDepth returns the recursion budget for primary rays
func (w *WhittedIntegrator) MaxDepth() int {
	return w.maxDepth
}

// RayColor computes the color seen along a primary ray
func (w *WhittedIntegrator) RayColor(ray core.Ray, scene Scene, stats *RayStats) core.Vec3 {
	if stats == nil {
		stats = &RayStats{}
	}
	stats.CameraRays++
	return w.CastRay(ray, scene, w.maxDepth, stats)
}

// CastRay returns the radiance along ray with the given remaining depth.
// At depth zero, or when nothing is hit, the scene background is returned.
func (w *WhittedIntegrator) CastRay(ray core.Ray, scene Scene, depth int, stats *RayStats) core.Vec3 {
	background := scene.GetBackgroundColor()
	if depth <= 0 {
		return background
	}

	hit, isHit := geometry.NearestHit(ray, scene.GetShapes())
	if !isHit {
		return background
	}

	mat := hit.Material
	diffuseIntensity, specularIntensity := w.directLighting(ray, hit, scene, stats)

	color := mat.DiffuseColor.Mul(diffuseIntensity * mat.Diffuse()).
		Add(core.NewVec3(1, 1, 1).Mul(specularIntensity * mat.Specular()))

	// Branches with zero weight contribute nothing and are not traced
	if mat.Reflective() != 0 {
		color = color.Add(w.reflectedColor(ray, hit, scene, depth, stats).Mul(mat.Reflective()))
	}
	if mat.Refractive() != 0 {
		color = color.Add(w.refractedColor(ray, hit, scene, depth, stats).Mul(mat.Refractive()))
	}

	return color
}

// directLighting accumulates the diffuse and specular intensities of every unshadowed light
func (w *WhittedIntegrator) directLighting(ray core.Ray, hit *geometry.Hit, scene Scene, stats *RayStats) (diffuse, specular float32) {
	shapes := scene.GetShapes()
	exponent := hit.Material.SpecularExponent

	for _, light := range scene.GetLights() {
		lightDir, lightDistance := light.DirectionFrom(hit.Position)
		// A light on the surface itself has no direction
		if !(lightDistance > 0) {
			continue
		}

		if w.inShadow(hit.SpawnRay(lightDir), lightDistance, shapes, stats) {
			continue
		}

		diffuse += light.Intensity * math32.Max(0, lightDir.Dot(hit.Normal))

		highlight := math32.Max(0, core.Reflect(lightDir.Mul(-1), hit.Normal).Dot(ray.Direction))
		specular += light.Intensity * math32.Pow(highlight, exponent)
	}

	return diffuse, specular
}

// inShadow reports whether anything lies strictly between the shadow ray origin and the light
func (w *WhittedIntegrator) inShadow(shadowRay core.Ray, lightDistance float32, shapes []geometry.Shape, stats *RayStats) bool {
	stats.ShadowRays++
	occluder, blocked := geometry.NearestHit(shadowRay, shapes)
	if !blocked {
		return false
	}
	return occluder.Position.Sub(shadowRay.Origin).Len() < lightDistance
}

// reflectedColor traces the mirror reflection of the incoming ray
func (w *WhittedIntegrator) reflectedColor(ray core.Ray, hit *geometry.Hit, scene Scene, depth int, stats *RayStats) core.Vec3 {
	direction := core.Reflect(ray.Direction.Mul(-1), hit.Normal).Normalize()
	stats.ReflectionRays++
	return w.CastRay(hit.SpawnRay(direction), scene, depth-1, stats)
}

// refractedColor traces the transmitted ray; total internal reflection contributes nothing
func (w *WhittedIntegrator) refractedColor(ray core.Ray, hit *geometry.Hit, scene Scene, depth int, stats *RayStats) core.Vec3 {
	direction, ok := core.Refract(ray.Direction, hit.Normal, hit.Material.RefractiveIndex)
	if !ok {
		stats.TotalInternalReflections++
		return core.Vec3{}
	}
	direction = direction.Normalize()
	stats.RefractionRays++
	return w.CastRay(hit.SpawnRay(direction), scene, depth-1, stats)
}
