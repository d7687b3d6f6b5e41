package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidSceneFile is returned when a scene file is malformed
var ErrInvalidSceneFile = errors.New("invalid scene file")

// SceneFile is the on-disk JSON description of a scene
type SceneFile struct {
	Name       string                  `json:"name"`
	Camera     CameraFile              `json:"camera"`
	MaxDepth   int                     `json:"maxDepth,omitempty"`
	Background *[3]float32             `json:"background,omitempty"`
	Materials  map[string]MaterialFile `json:"materials,omitempty"`
	Spheres    []SphereFile            `json:"spheres"`
	Lights     []LightFile             `json:"lights"`
}

// CameraFile holds the image size and field of view in degrees
type CameraFile struct {
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	FOV    float32 `json:"fov,omitempty"`
}

// MaterialFile describes a named material
type MaterialFile struct {
	Albedo           [4]float32 `json:"albedo"`
	DiffuseColor     [3]float32 `json:"diffuseColor"`
	SpecularExponent float32    `json:"specularExponent"`
	RefractiveIndex  float32    `json:"refractiveIndex"`
}

// SphereFile places a sphere with a material referenced by name
type SphereFile struct {
	Center   [3]float32 `json:"center"`
	Radius   float32    `json:"radius"`
	Material string     `json:"material"`
}

// LightFile describes a point light
type LightFile struct {
	Position  [3]float32 `json:"position"`
	Intensity float32    `json:"intensity"`
}

// LoadSceneFile reads and decodes a JSON scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sceneFile, err := DecodeSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sceneFile, nil
}

// DecodeSceneFile decodes a JSON scene description. Unknown fields are rejected.
func DecodeSceneFile(r io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var sceneFile SceneFile
	if err := decoder.Decode(&sceneFile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSceneFile, err)
	}
	if len(sceneFile.Spheres) == 0 {
		return nil, fmt.Errorf("%w: no spheres", ErrInvalidSceneFile)
	}
	for i, sphere := range sceneFile.Spheres {
		if sphere.Material == "" {
			return nil, fmt.Errorf("%w: sphere %d has no material", ErrInvalidSceneFile, i)
		}
	}
	return &sceneFile, nil
}
