package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Ivory is a mostly diffuse off-white with a soft highlight
func Ivory() Material {
	return NewMaterial(core.NewVec4(0.6, 0.3, 0.1, 0), core.NewVec3(0.4, 0.4, 0.3), 50, 1)
}

// Glass is a clear refractive material
func Glass() Material {
	return NewMaterial(core.NewVec4(0, 0.5, 0.1, 0.8), core.NewVec3(0.6, 0.7, 0.8), 125, 1.5)
}

// RedRubber is a dull red with a weak highlight
func RedRubber() Material {
	return NewMaterial(core.NewVec4(0.9, 0.1, 0, 0), core.NewVec3(0.3, 0.1, 0.1), 10, 1)
}

// Mirror is a strongly reflective material with a very tight highlight
func Mirror() Material {
	return NewMaterial(core.NewVec4(0, 10, 0.8, 0), core.NewVec3(1, 1, 1), 1425, 1)
}

// MatteIvory is Ivory with only the diffuse term
func MatteIvory() Material {
	return NewMaterial(core.NewVec4(1, 0, 0, 0), core.NewVec3(0.4, 0.4, 0.3), 50, 1)
}

// Presets returns the named built-in materials
func Presets() map[string]Material {
	return map[string]Material{
		"ivory":       Ivory(),
		"glass":       Glass(),
		"red_rubber":  RedRubber(),
		"mirror":      Mirror(),
		"matte_ivory": MatteIvory(),
	}
}
