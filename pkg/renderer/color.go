package renderer

import (
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ToRGB converts an unbounded linear color to 8-bit RGBA.
// Colors brighter than 1.0 in any channel are scaled down by that channel so hue is kept,
// then every channel is clamped to [0, 1] and truncated to [0, 255].
func ToRGB(c core.Vec3) color.RGBA {
	if m := core.MaxComponent(c); m > 1 {
		c = c.Mul(1 / m)
	}
	c = core.Clamp(c, 0, 1)

	return color.RGBA{
		R: uint8(255 * c[0]),
		G: uint8(255 * c[1]),
		B: uint8(255 * c[2]),
		A: 255,
	}
}
