package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrInvalidMaterial is returned when a material parameter is out of range
var ErrInvalidMaterial = errors.New("invalid material")

// Albedo component indices
const (
	AlbedoDiffuse = iota
	AlbedoSpecular
	AlbedoReflective
	AlbedoRefractive
)

// Material describes how a surface scatters light.
// Materials are immutable values and are copied into every shape and hit that uses them.
type Material struct {
	Albedo           core.Vec4 // Weights for diffuse, specular, reflective and refractive terms
	DiffuseColor     core.Vec3 // Linear RGB color of the diffuse term
	SpecularExponent float32   // Phong shininess
	RefractiveIndex  float32   // Index of refraction (1.0 for no bending)
}

// NewMaterial creates a new material
func NewMaterial(albedo core.Vec4, diffuseColor core.Vec3, specularExponent, refractiveIndex float32) Material {
	return Material{
		Albedo:           albedo,
		DiffuseColor:     diffuseColor,
		SpecularExponent: specularExponent,
		RefractiveIndex:  refractiveIndex,
	}
}

// Diffuse returns the diffuse weight
func (m Material) Diffuse() float32 { return m.Albedo[AlbedoDiffuse] }

// Specular returns the specular weight
func (m Material) Specular() float32 { return m.Albedo[AlbedoSpecular] }

// Reflective returns the mirror reflection weight
func (m Material) Reflective() float32 { return m.Albedo[AlbedoReflective] }

// Refractive returns the transmission weight
func (m Material) Refractive() float32 { return m.Albedo[AlbedoRefractive] }

// Validate checks that the material parameters are usable for shading
func (m Material) Validate() error {
	for i, w := range m.Albedo {
		if !(w >= 0) {
			return fmt.Errorf("%w: albedo[%d] must be non-negative, got %v", ErrInvalidMaterial, i, w)
		}
	}
	if !(m.SpecularExponent > 0) {
		return fmt.Errorf("%w: specular exponent must be positive, got %v", ErrInvalidMaterial, m.SpecularExponent)
	}
	if !(m.RefractiveIndex > 0) {
		return fmt.Errorf("%w: refractive index must be positive, got %v", ErrInvalidMaterial, m.RefractiveIndex)
	}
	return nil
}
