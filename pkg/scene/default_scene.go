package scene

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultCameraConfig is the 1024x768 camera with a 90 degree field of view
var DefaultCameraConfig = geometry.CameraConfig{
	Width:  1024,
	Height: 768,
	FOV:    math32.Pi / 2,
}

// NewDefaultScene creates the four-sphere scene: ivory, glass, red rubber and a
// large mirror, lit by three point lights
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := newScene("default", DefaultCameraConfig, integrator.DefaultMaxDepth, cameraOverrides...)

	s.AddSphere(core.NewVec3(-3, 0, -16), 2, material.Ivory())
	s.AddSphere(core.NewVec3(-1, -1.5, -12), 2, material.Glass())
	s.AddSphere(core.NewVec3(1.5, -0.5, -18), 3, material.RedRubber())
	s.AddSphere(core.NewVec3(7, 5, -18), 4, material.Mirror())

	s.AddLight(core.NewVec3(-20, 20, 20), 1.5)
	s.AddLight(core.NewVec3(30, 50, -25), 1.8)
	s.AddLight(core.NewVec3(30, 20, 30), 1.7)

	return s
}

// NewSingleSphereScene creates one matte sphere lit from the upper left.
// Small enough to render in tests.
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaults := geometry.CameraConfig{Width: 64, Height: 48, FOV: math32.Pi / 2}
	s := newScene("single-sphere", defaults, integrator.DefaultMaxDepth, cameraOverrides...)

	s.AddSphere(core.NewVec3(0, 0, -5), 1, material.MatteIvory())
	s.AddLight(core.NewVec3(-2, 2, 0), 1)

	return s
}

// NewGlassScene creates a glass sphere in front of a row of colored spheres so
// the refraction is visible, with a mirror behind to catch the reflections
func NewGlassScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaults := geometry.CameraConfig{Width: 800, Height: 600, FOV: math32.Pi / 3}
	s := newScene("glass", defaults, 8, cameraOverrides...)

	s.AddSphere(core.NewVec3(0, 0, -8), 1.5, material.Glass())

	// Backdrop row
	backdrop := []core.Vec3{
		core.NewVec3(0.6, 0.1, 0.1),
		core.NewVec3(0.1, 0.6, 0.1),
		core.NewVec3(0.1, 0.1, 0.6),
		core.NewVec3(0.6, 0.6, 0.1),
	}
	for i, color := range backdrop {
		x := -4.5 + 3*float32(i)
		s.AddSphere(core.NewVec3(x, 0, -16), 1.2,
			material.NewMaterial(core.NewVec4(0.8, 0.2, 0, 0), color, 20, 1))
	}

	s.AddSphere(core.NewVec3(0, -1004, -12), 1000, material.Ivory())
	s.AddSphere(core.NewVec3(6, 3, -22), 4, material.Mirror())

	s.AddLight(core.NewVec3(-10, 15, 10), 1.4)
	s.AddLight(core.NewVec3(15, 20, -5), 1.2)

	return s
}
