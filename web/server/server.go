package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Image size limits for web renders
const (
	minImageSize = 1
	maxImageSize = 2000
)

// Server handles web requests for the raytracer
type Server struct {
	port       int
	scenesDir  string
	maxWorkers int
}

// NewServer creates a new web server from the loaded configuration
func NewServer(cfg *config.Config) *Server {
	return &Server{
		port:       cfg.Port,
		scenesDir:  cfg.ScenesDir,
		maxWorkers: max(1, cfg.Workers),
	}
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/scenes", s.handleScenes)
	mux.HandleFunc("GET /api/render", s.handleRender)
	mux.HandleFunc("GET /api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and discovered JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes(s.scenesDir)
	if err != nil {
		log.Printf("Failed to list scenes: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list scenes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scenes})
}

// SceneRequest holds the scene selection shared by the render and inspect endpoints
type SceneRequest struct {
	Scene  string
	Width  int
	Height int
	FOV    float64 // Degrees, 0 keeps the scene's
}

// parseSceneRequest parses the scene and camera parameters
func parseSceneRequest(values url.Values) (*SceneRequest, error) {
	req := &SceneRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(values, "fov", 0, 1, 179); err != nil {
		return nil, err
	}
	return req, nil
}

// createScene builds the requested scene with the camera overrides applied
func (s *Server) createScene(req *SceneRequest) (*scene.Scene, error) {
	overrides := geometry.CameraConfig{
		Width:  req.Width,
		Height: req.Height,
		FOV:    geometry.Radians(req.FOV),
	}
	sceneObj, err := scene.CreateScene(req.Scene, s.scenesDir, overrides)
	if err != nil {
		return nil, err
	}
	if w, h := sceneObj.Camera.Width(), sceneObj.Camera.Height(); w > maxImageSize || h > maxImageSize {
		return nil, fmt.Errorf("scene size %dx%d exceeds %d pixels, pass width and height", w, h, maxImageSize)
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, err
	}
	return sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
