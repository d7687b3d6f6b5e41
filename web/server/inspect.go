package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Color        [3]float32             `json:"color"`    // Linear radiance of the pixel
	ColorHex     string                 `json:"colorHex"` // Finalized 8-bit color
	Rays         integrator.RayStats    `json:"rays"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// extractMaterialInfo extracts the shading parameters of a material
func extractMaterialInfo(mat material.Material) map[string]interface{} {
	return map[string]interface{}{
		"diffuse":          mat.Diffuse(),
		"specular":         mat.Specular(),
		"reflective":       mat.Reflective(),
		"refractive":       mat.Refractive(),
		"diffuseColor":     vecArray(mat.DiffuseColor),
		"specularExponent": mat.SpecularExponent,
		"refractiveIndex":  mat.RefractiveIndex,
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit   *geometry.Hit
	Shape geometry.Shape // The shape that was hit, nil when nothing was hit
}

// inspectPixel casts the primary ray through the pixel center and returns the nearest hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	ray := sceneObj.Camera.GetRay(pixelX, pixelY)

	hit, isHit := geometry.NearestHit(ray, sceneObj.Shapes)
	if !isHit {
		return InspectResult{}
	}
	return InspectResult{Hit: hit, Shape: hit.Shape}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	sceneReq, err := parseSceneRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(sceneReq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Camera.Width() || pixelY < 0 || pixelY >= sceneObj.Camera.Height() {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	// Shade the pixel with the same integrator a render would use
	raytracer := renderer.NewRaytracer(sceneObj, renderer.RenderConfig{MaxDepth: sceneObj.MaxDepth, NumWorkers: 1}, quietLogger{})
	var rays integrator.RayStats
	color := raytracer.RenderPixel(pixelX, pixelY, &rays)
	rgb := renderer.ToRGB(color)

	response := InspectResponse{
		Color:    vecArray(color),
		ColorHex: fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B),
		Rays:     rays,
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if result.Hit != nil {
		geometryType, geometryProps := extractGeometryInfo(result.Shape)
		response.Hit = true
		response.GeometryType = geometryType
		response.Point = vecArray(result.Hit.Position)
		response.Normal = vecArray(result.Hit.Normal)
		response.Distance = result.Hit.T
		response.Properties = map[string]interface{}{
			"material": extractMaterialInfo(result.Hit.Material),
			"geometry": geometryProps,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func vecArray(v core.Vec3) [3]float32 {
	return [3]float32{v[0], v[1], v[2]}
}

// quietLogger drops the per-render log lines of single-pixel inspections
type quietLogger struct{}

func (quietLogger) Printf(format string, args ...interface{}) {}
