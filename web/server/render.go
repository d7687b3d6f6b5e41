package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

var renderCounter atomic.Int64

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	MaxDepth int    // Recursion depth, negative keeps the scene's
	Workers  int    // Row workers
	Format   string // "png", "ppm" or "json"
}

// RenderResponse is the body returned for format=json
type RenderResponse struct {
	RenderID  string           `json:"renderId"`
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels              int     `json:"totalPixels"`
	CameraRays               int64   `json:"cameraRays"`
	ShadowRays               int64   `json:"shadowRays"`
	ReflectionRays           int64   `json:"reflectionRays"`
	RefractionRays           int64   `json:"refractionRays"`
	TotalInternalReflections int64   `json:"totalInternalReflections"`
	RaysPerPixel             float64 `json:"raysPerPixel"`
	AverageLuminance         float64 `json:"averageLuminance"`
	ElapsedMs                int64   `json:"elapsedMs"`
}

func newStats(stats renderer.RenderStats, img *image.RGBA) Stats {
	return Stats{
		TotalPixels:              stats.TotalPixels,
		CameraRays:               stats.Rays.CameraRays,
		ShadowRays:               stats.Rays.ShadowRays,
		ReflectionRays:           stats.Rays.ReflectionRays,
		RefractionRays:           stats.Rays.RefractionRays,
		TotalInternalReflections: stats.Rays.TotalInternalReflections,
		RaysPerPixel:             stats.RaysPerPixel(),
		AverageLuminance:         renderer.CalculateAverageLuminance(img),
		ElapsedMs:                stats.Duration.Milliseconds(),
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	sceneReq, err := parseSceneRequest(values)
	if err != nil {
		return nil, err
	}

	req := &RenderRequest{SceneRequest: *sceneReq}
	if req.MaxDepth, err = parseIntParam(values, "depth", -1, 0, integrator.MaxDepthLimit); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(values, "workers", s.maxWorkers, 1, s.maxWorkers); err != nil {
		return nil, err
	}

	req.Format = values.Get("format")
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "ppm", "json":
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}
	return req, nil
}

// handleRender renders a scene and returns it as PNG, PPM or JSON with statistics
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(&req.SceneRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	consoleChan := make(chan ConsoleMessage, 16)
	webLogger := NewWebLogger(renderID, consoleChan)

	depth := req.MaxDepth
	if depth < 0 {
		depth = sceneObj.MaxDepth
	}
	raytracer := renderer.NewRaytracer(sceneObj, renderer.RenderConfig{
		MaxDepth:   depth,
		NumWorkers: req.Workers,
	}, webLogger)

	if req.Format == "ppm" && req.Workers <= 1 {
		s.streamPPM(w, r, raytracer)
		return
	}

	fb, stats, err := raytracer.RenderFramebuffer(r.Context())
	if err != nil {
		log.Printf("[%s] Render error: %v", renderID, err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	switch req.Format {
	case "ppm":
		w.Header().Set("Content-Type", "image/x-portable-pixmap")
		setStatsHeaders(w, stats)
		if err := output.WritePPM(w, fb); err != nil {
			log.Printf("[%s] Failed to write PPM: %v", renderID, err)
		}
	case "json":
		img := fb.Image()
		imageData, err := s.imageToBase64PNG(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to encode image")
			return
		}
		writeJSON(w, http.StatusOK, RenderResponse{
			RenderID:  renderID,
			Scene:     sceneObj.Name,
			Width:     fb.Width(),
			Height:    fb.Height(),
			ImageData: imageData,
			Stats:     newStats(stats, img),
			Console:   drainConsole(consoleChan),
		})
	default:
		w.Header().Set("Content-Type", "image/png")
		setStatsHeaders(w, stats)
		if err := output.EncodePNG(w, fb.Image()); err != nil {
			log.Printf("[%s] Failed to encode PNG: %v", renderID, err)
		}
	}
}

// streamPPM writes pixels to the response as they are shaded
func (s *Server) streamPPM(w http.ResponseWriter, r *http.Request, raytracer *renderer.Raytracer) {
	w.Header().Set("Content-Type", "image/x-portable-pixmap")
	sink, err := output.NewPPMSink(w, raytracer.Width(), raytracer.Height())
	if err != nil {
		log.Printf("Failed to start PPM stream: %v", err)
		return
	}
	if _, err := raytracer.Render(r.Context(), sink); err != nil {
		// Part of the body may already be written, so the truncated image is the only signal left
		log.Printf("PPM stream aborted: %v", err)
		return
	}
	if err := sink.Close(); err != nil {
		log.Printf("Failed to finish PPM stream: %v", err)
	}
}

func setStatsHeaders(w http.ResponseWriter, stats renderer.RenderStats) {
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Rays-Per-Pixel", strconv.FormatFloat(stats.RaysPerPixel(), 'f', 2, 64))
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
