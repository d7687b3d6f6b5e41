package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// ErrUnknownScene is returned when a scene name matches neither a built-in scene nor a scene file
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Name accepted by CreateScene
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "json"
	FilePath    string `json:"filePath,omitempty"` // Path to scene file (json type only)
}

type builtinScene struct {
	info   SceneInfo
	create func(...geometry.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Ivory, glass, red rubber and mirror spheres under three point lights",
			Type:        "builtin",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "single-sphere",
			DisplayName: "Single Sphere",
			Description: "One matte sphere and one light",
			Type:        "builtin",
		},
		create: NewSingleSphereScene,
	},
	{
		info: SceneInfo{
			ID:          "glass",
			DisplayName: "Glass",
			Description: "Glass sphere refracting a row of colored spheres",
			Type:        "builtin",
		},
		create: NewGlassScene,
	},
}

// ListScenes returns the built-in scenes followed by the JSON scenes found in scenesDir
func ListScenes(scenesDir string) ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}

	jsonScenes, err := ListJSONScenes(scenesDir)
	if err != nil {
		return nil, err
	}
	return append(scenes, jsonScenes...), nil
}

// ListJSONScenes scans scenesDir for *.json scene files. A missing directory yields no scenes.
func ListJSONScenes(scenesDir string) ([]SceneInfo, error) {
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(scenesDir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		scenes = append(scenes, parseJSONSceneInfo(filePath))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// parseJSONSceneInfo builds metadata for a scene file, falling back to the file name
// when the file cannot be read
func parseJSONSceneInfo(filePath string) SceneInfo {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:          nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "json",
		FilePath:    filePath,
	}

	sceneFile, err := loaders.LoadSceneFile(filePath)
	if err != nil {
		return info
	}
	if sceneFile.Name != "" {
		info.DisplayName = sceneFile.Name
	}
	info.Description = fmt.Sprintf("%d spheres, %d lights", len(sceneFile.Spheres), len(sceneFile.Lights))
	return info
}

// CreateScene resolves a scene by name: a built-in scene ID, a path to a .json file,
// or the base name of a .json file in scenesDir
func CreateScene(name, scenesDir string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty scene name", ErrUnknownScene)
	}

	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(cameraOverrides...), nil
		}
	}

	if strings.HasSuffix(name, ".json") {
		return NewSceneFromFile(name, cameraOverrides...)
	}

	if scenesDir != "" {
		path := filepath.Join(scenesDir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return NewSceneFromFile(path, cameraOverrides...)
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// SceneID returns the short name used for output directories
func SceneID(name string) string {
	if strings.HasSuffix(name, ".json") {
		return strings.TrimSuffix(filepath.Base(name), ".json")
	}
	return name
}

// titleCase converts kebab-case or snake_case to Title Case
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
