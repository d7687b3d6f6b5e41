package core

import (
	"testing"

	"github.com/chewxy/math32"
)

const tolerance = 1e-5

func TestReflect_Involution(t *testing.T) {
	tests := []struct {
		name   string
		d      Vec3
		normal Vec3
	}{
		{"head-on", NewVec3(0, 0, 1), NewVec3(0, 0, 1)},
		{"oblique", NewVec3(1, 2, 3), NewVec3(0, 1, 0)},
		{"non-axis normal", NewVec3(-0.3, 0.8, 0.1), NewVec3(1, 1, 1).Normalize()},
		{"grazing", NewVec3(1, 0, 0), NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			twice := Reflect(Reflect(tt.d, tt.normal), tt.normal)
			if !twice.ApproxEqualThreshold(tt.d, tolerance) {
				t.Errorf("reflect(reflect(d)) = %v, expected %v", twice, tt.d)
			}

			negated := Reflect(Reflect(tt.d, tt.normal).Mul(-1), tt.normal).Mul(-1)
			if !negated.ApproxEqualThreshold(tt.d, tolerance) {
				t.Errorf("-reflect(-reflect(d)) = %v, expected %v", negated, tt.d)
			}
		})
	}
}

func TestReflect_MirrorsAboutNormal(t *testing.T) {
	// Light arriving at 45 degrees leaves at 45 degrees on the other side
	toLight := NewVec3(-1, 1, 0).Normalize()
	reflected := Reflect(toLight, NewVec3(0, 1, 0))
	expected := NewVec3(1, 1, 0).Normalize()

	if !reflected.ApproxEqualThreshold(expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestRefract_UnitIndexPassesThrough(t *testing.T) {
	normal := NewVec3(0, 0, 1)
	tests := []struct {
		name     string
		incident Vec3
	}{
		{"entering head-on", NewVec3(0, 0, -1)},
		{"entering oblique", NewVec3(0.6, 0, -0.8)},
		{"exiting oblique", NewVec3(0.6, 0, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refracted, ok := Refract(tt.incident, normal, 1.0)
			if !ok {
				t.Fatal("Expected a refracted ray")
			}
			if !refracted.ApproxEqualThreshold(tt.incident, tolerance) {
				t.Errorf("Expected unchanged direction %v, got %v", tt.incident, refracted)
			}
		})
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	incident := NewVec3(1, -1, 0).Normalize() // 45 degrees from the normal
	ior := float32(1.5)

	refracted, ok := Refract(incident, normal, ior)
	if !ok {
		t.Fatal("Expected a refracted ray")
	}

	sinI := math32.Sqrt(0.5)
	sinT := refracted.Normalize()[0]
	if math32.Abs(sinI-ior*sinT) > tolerance {
		t.Errorf("Snell's law violated: sin(i)=%f, n*sin(t)=%f", sinI, ior*sinT)
	}
	if refracted[1] >= 0 {
		t.Errorf("Refracted ray should continue into the surface, got %v", refracted)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Leaving glass at a steep angle: sin(t) = 1.5 * sin(60 deg) > 1
	normal := NewVec3(0, 1, 0)
	incident := NewVec3(math32.Sin(math32.Pi/3), math32.Cos(math32.Pi/3), 0)

	refracted, ok := Refract(incident, normal, 1.5)
	if ok {
		t.Errorf("Expected total internal reflection, got %v", refracted)
	}
	if refracted != (Vec3{}) {
		t.Errorf("Expected zero vector on total internal reflection, got %v", refracted)
	}
}

func TestMaxComponent(t *testing.T) {
	nan := math32.NaN()
	tests := []struct {
		name     string
		v        Vec3
		expected float32
	}{
		{"first", NewVec3(3, 1, 2), 3},
		{"last", NewVec3(0.1, 0.2, 0.3), 0.3},
		{"negative", NewVec3(-1, -2, -0.5), -0.5},
		{"nan ignored", NewVec3(nan, 0.4, 0.2), 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaxComponent(tt.v); got != tt.expected {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -1))
	point := ray.At(2.5)
	expected := NewVec3(1, 2, 0.5)

	if !point.ApproxEqualThreshold(expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, point)
	}
}
