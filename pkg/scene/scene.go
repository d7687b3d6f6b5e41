package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidScene is returned when a scene fails validation
var ErrInvalidScene = errors.New("invalid scene")

// DefaultBackground is the color returned by rays that hit nothing
var DefaultBackground = core.NewVec3(0.2, 0.7, 0.8)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name            string
	Camera          *geometry.Camera
	CameraConfig    geometry.CameraConfig
	Shapes          []geometry.Shape    // Objects in the scene
	Lights          []lights.PointLight // Lights in the scene
	BackgroundColor core.Vec3
	MaxDepth        int // Recursion depth the scene was designed for
}

// newScene creates an empty scene with the camera built from defaults and overrides
func newScene(name string, defaults geometry.CameraConfig, maxDepth int, cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := defaults
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaults, cameraOverrides[0])
	}

	return &Scene{
		Name:            name,
		Camera:          geometry.NewCamera(cameraConfig),
		CameraConfig:    cameraConfig,
		Shapes:          make([]geometry.Shape, 0),
		Lights:          make([]lights.PointLight, 0),
		BackgroundColor: DefaultBackground,
		MaxDepth:        maxDepth,
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, mat material.Material) {
	s.Shapes = append(s.Shapes, geometry.NewSphere(center, radius, mat))
}

// AddLight adds a point light to the scene
func (s *Scene) AddLight(position core.Vec3, intensity float32) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// GetCamera returns the scene's camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetShapes returns the shapes in the scene in insertion order
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// GetLights returns the point lights in the scene
func (s *Scene) GetLights() []lights.PointLight {
	return s.Lights
}

// GetBackgroundColor returns the color of rays that escape the scene
func (s *Scene) GetBackgroundColor() core.Vec3 {
	return s.BackgroundColor
}

// Validate checks the camera, every shape and every light
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("%w: no camera", ErrInvalidScene)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	for i, shape := range s.Shapes {
		var err error
		if v, ok := shape.(interface{ Validate() error }); ok {
			err = v.Validate()
		} else {
			err = shape.Material().Validate()
		}
		if err != nil {
			return fmt.Errorf("%w: shape %d: %w", ErrInvalidScene, i, err)
		}
	}

	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("%w: light %d: %w", ErrInvalidScene, i, err)
		}
	}

	for i, c := range s.BackgroundColor {
		if c < 0 || c != c {
			return fmt.Errorf("%w: background component %d is %v", ErrInvalidScene, i, c)
		}
	}
	return nil
}
