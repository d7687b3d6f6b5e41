package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func newTestSphere(center core.Vec3, radius float32) *Sphere {
	return NewSphere(center, radius, material.Ivory())
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := newTestSphere(core.NewVec3(0, 0, 0), 1.0)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if dist, ok := sphere.Intersect(ray); ok {
		t.Errorf("Expected miss, but got hit at t=%f", dist)
	}
}

func TestSphere_Intersect(t *testing.T) {
	sphere := newTestSphere(core.NewVec3(0, 0, -5), 1.0)

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expectHit bool
		expectedT float32
	}{
		{
			name:      "toward center hits near root",
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, -1),
			expectHit: true,
			expectedT: 4,
		},
		{
			name:      "oblique toward center hits near root",
			origin:    core.NewVec3(3, 0, -1),
			direction: core.NewVec3(-3, 0, -4).Normalize(),
			expectHit: true,
			expectedT: 4,
		},
		{
			name:      "away from center misses",
			origin:    core.NewVec3(0, 0, 0),
			direction: core.NewVec3(0, 0, 1),
			expectHit: false,
		},
		{
			name:      "inside returns exit root",
			origin:    core.NewVec3(0, 0, -5),
			direction: core.NewVec3(1, 0, 0),
			expectHit: true,
			expectedT: 1,
		},
		{
			name:      "inside off-center returns exit root",
			origin:    core.NewVec3(0, 0, -5.5),
			direction: core.NewVec3(0, 0, 1),
			expectHit: true,
			expectedT: 1.5,
		},
		{
			name:      "tangent grazes",
			origin:    core.NewVec3(1, 0, 0),
			direction: core.NewVec3(0, 0, -1),
			expectHit: true,
			expectedT: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ok := sphere.Intersect(core.NewRay(tt.origin, tt.direction))

			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.expectHit, ok, dist)
			}
			if ok && math.Abs(float64(dist-tt.expectedT)) > 1e-4 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, dist)
			}
		})
	}
}

func TestSphere_NormalAt_PointsOutward(t *testing.T) {
	sphere := newTestSphere(core.NewVec3(1, 2, 3), 2.0)

	tests := []struct {
		point    core.Vec3
		expected core.Vec3
	}{
		{core.NewVec3(3, 2, 3), core.NewVec3(1, 0, 0)},
		{core.NewVec3(1, 0, 3), core.NewVec3(0, -1, 0)},
		{core.NewVec3(1, 2, 5), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		normal := sphere.NormalAt(tt.point)
		if !normal.ApproxEqualThreshold(tt.expected, 1e-6) {
			t.Errorf("NormalAt(%v): expected %v, got %v", tt.point, tt.expected, normal)
		}
	}
}

func TestSphere_Validate(t *testing.T) {
	if err := newTestSphere(core.NewVec3(0, 0, 0), 1).Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := newTestSphere(core.NewVec3(0, 0, 0), 0).Validate(); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("Expected ErrInvalidShape, got %v", err)
	}

	bad := NewSphere(core.NewVec3(0, 0, 0), 1, material.NewMaterial(core.NewVec4(1, 0, 0, 0), core.NewVec3(1, 1, 1), 10, -1))
	if err := bad.Validate(); !errors.Is(err, material.ErrInvalidMaterial) {
		t.Errorf("Expected ErrInvalidMaterial, got %v", err)
	}
}
