package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSceneFromFile creates a scene from a JSON scene file.
// Materials named in the file shadow the built-in presets of the same name.
func NewSceneFromFile(filename string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}

	name := sceneFile.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return convertSceneFile(name, sceneFile, cameraOverrides...)
}

func convertSceneFile(name string, sceneFile *loaders.SceneFile, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaults := geometry.MergeCameraConfig(DefaultCameraConfig, geometry.CameraConfig{
		Width:  sceneFile.Camera.Width,
		Height: sceneFile.Camera.Height,
		FOV:    geometry.Radians(float64(sceneFile.Camera.FOV)),
	})

	maxDepth := sceneFile.MaxDepth
	if maxDepth <= 0 {
		maxDepth = integrator.DefaultMaxDepth
	}

	s := newScene(name, defaults, maxDepth, cameraOverrides...)
	if sceneFile.Background != nil {
		bg := *sceneFile.Background
		s.BackgroundColor = core.NewVec3(bg[0], bg[1], bg[2])
	}

	materials := material.Presets()
	for matName, m := range sceneFile.Materials {
		materials[matName] = material.NewMaterial(
			core.NewVec4(m.Albedo[0], m.Albedo[1], m.Albedo[2], m.Albedo[3]),
			core.NewVec3(m.DiffuseColor[0], m.DiffuseColor[1], m.DiffuseColor[2]),
			m.SpecularExponent,
			m.RefractiveIndex,
		)
	}

	for i, sphere := range sceneFile.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d references unknown material %q", ErrInvalidScene, i, sphere.Material)
		}
		s.AddSphere(core.NewVec3(sphere.Center[0], sphere.Center[1], sphere.Center[2]), sphere.Radius, mat)
	}

	for _, light := range sceneFile.Lights {
		s.AddLight(core.NewVec3(light.Position[0], light.Position[1], light.Position[2]), light.Intensity)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
