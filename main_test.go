package main

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"single sphere scene", "single-sphere", false},
		{"glass scene", "glass", false},

		// JSON scenes
		{"json by name", "tinyraytracer", false},
		{"json by path", "scenes/tinyraytracer.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid json path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, "scenes", geometry.CameraConfig{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CameraConfig.Width <= 0 || s.CameraConfig.Height <= 0 {
				t.Errorf("Scene camera size should be positive, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
			}
		})
	}
}

func TestSampleSceneMatchesDefault(t *testing.T) {
	fromFile, err := createScene("tinyraytracer", "scenes", geometry.CameraConfig{})
	if err != nil {
		t.Fatalf("Failed to load sample scene: %v", err)
	}
	builtin := scene.NewDefaultScene()

	gotCam, wantCam := fromFile.CameraConfig, builtin.CameraConfig
	if gotCam.Width != wantCam.Width || gotCam.Height != wantCam.Height || math.Abs(float64(gotCam.FOV-wantCam.FOV)) > 1e-6 {
		t.Errorf("camera = %+v, want %+v", gotCam, wantCam)
	}
	if len(fromFile.Shapes) != len(builtin.Shapes) || len(fromFile.Lights) != len(builtin.Lights) {
		t.Fatalf("sample has %d shapes, %d lights; default has %d, %d",
			len(fromFile.Shapes), len(fromFile.Lights), len(builtin.Shapes), len(builtin.Lights))
	}
	for i := range builtin.Shapes {
		got := fromFile.Shapes[i].(*geometry.Sphere)
		want := builtin.Shapes[i].(*geometry.Sphere)
		if *got != *want {
			t.Errorf("sphere %d = %+v, want %+v", i, got, want)
		}
	}
	for i := range builtin.Lights {
		if fromFile.Lights[i] != builtin.Lights[i] {
			t.Errorf("light %d = %+v, want %+v", i, fromFile.Lights[i], builtin.Lights[i])
		}
	}
}

func TestCreateOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 30, 15, 0, time.UTC)
	tests := []struct {
		name      string
		sceneType string
		expected  string
	}{
		{"built-in scene", "default", filepath.Join("output", "default", "render_20240305_143015.png")},
		{"json by name", "tinyraytracer", filepath.Join("output", "tinyraytracer", "render_20240305_143015.png")},
		{"json by path", "scenes/sub/my-scene.json", filepath.Join("output", "my-scene", "render_20240305_143015.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := createOutputPath("output", tt.sceneType, now); got != tt.expected {
				t.Errorf("createOutputPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"-scene", "glass", "-width", "320", "-fov", "45", "-workers", "4"})
	if err != nil {
		t.Fatalf("parseOptions() error = %v", err)
	}
	if opts.sceneName != "glass" || opts.width != 320 || opts.height != 0 {
		t.Errorf("opts = %+v", opts)
	}
	if !opts.set["workers"] || opts.set["depth"] {
		t.Errorf("explicit flags = %v, want workers only among depth/workers", opts.set)
	}
	overrides := opts.cameraOverrides()
	if overrides.Width != 320 || overrides.FOV < 0.785 || overrides.FOV > 0.786 {
		t.Errorf("cameraOverrides() = %+v, want width 320 and fov pi/4", overrides)
	}

	if _, err := parseOptions([]string{"-width", "-5"}); err == nil {
		t.Error("expected error for negative width")
	}
	if _, err := parseOptions([]string{"-nope"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestResolveDepthAndWorkers(t *testing.T) {
	s := scene.NewGlassScene()

	tests := []struct {
		name        string
		args        []string
		cfg         config.Config
		wantDepth   int
		wantWorkers int
	}{
		{"scene defaults", nil, config.Config{Workers: 1}, s.MaxDepth, 1},
		{"environment", nil, config.Config{Workers: 3, MaxDepth: 2}, 2, 3},
		{"flags win", []string{"-depth", "4", "-workers", "2"}, config.Config{Workers: 3, MaxDepth: 2}, 4, 2},
		{"explicit zero depth", []string{"-depth", "0"}, config.Config{Workers: 1, MaxDepth: 2}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOptions(tt.args)
			if err != nil {
				t.Fatalf("parseOptions() error = %v", err)
			}
			if got := resolveDepth(opts, &tt.cfg, s); got != tt.wantDepth {
				t.Errorf("resolveDepth() = %d, want %d", got, tt.wantDepth)
			}
			if got := resolveWorkers(opts, &tt.cfg); got != tt.wantWorkers {
				t.Errorf("resolveWorkers() = %d, want %d", got, tt.wantWorkers)
			}
		})
	}
}

func TestRun(t *testing.T) {
	t.Setenv("RAYTRACER_MAX_DEPTH", "")
	t.Setenv("RAYTRACER_WORKERS", "")
	dir := t.TempDir()
	noEnv := filepath.Join(dir, "missing.env")

	tests := []struct {
		name   string
		args   []string
		files  []string
		header []byte
	}{
		{
			name:   "streamed ppm",
			args:   []string{"-o", filepath.Join(dir, "a.ppm")},
			files:  []string{"a.ppm"},
			header: []byte("P6\n32 24\n255\n"),
		},
		{
			name:   "parallel png with thumbnail",
			args:   []string{"-o", filepath.Join(dir, "b.png"), "-workers", "3", "-thumb", "8"},
			files:  []string{"b.png", "b_thumb.png"},
			header: []byte("\x89PNG"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-scene", "single-sphere", "-width", "32", "-height", "24", "-env", noEnv}, tt.args...)
			if err := run(context.Background(), args); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			for _, f := range tt.files {
				if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
					t.Errorf("expected %s to exist: %v", f, err)
				}
			}
			data, err := os.ReadFile(filepath.Join(dir, tt.files[0]))
			if err != nil {
				t.Fatalf("failed to read output: %v", err)
			}
			if !bytes.HasPrefix(data, tt.header) {
				t.Errorf("output starts with %q, want %q", data[:len(tt.header)], tt.header)
			}
		})
	}
}

func TestRun_CancelledStreamRemovesFile(t *testing.T) {
	t.Setenv("RAYTRACER_WORKERS", "")
	dir := t.TempDir()
	filename := filepath.Join(dir, "cancelled.ppm")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	args := []string{"-scene", "single-sphere", "-width", "8", "-height", "8",
		"-o", filename, "-env", filepath.Join(dir, "missing.env")}
	if err := run(ctx, args); !errors.Is(err, context.Canceled) {
		t.Fatalf("run() error = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(filename); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected partial %s to be removed, stat error = %v", filename, err)
	}
}

func TestRun_Errors(t *testing.T) {
	noEnv := filepath.Join(t.TempDir(), "missing.env")
	t.Setenv("S3_BUCKET", "")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown scene", []string{"-scene", "nonexistent"}, "unknown scene"},
		{"upload without bucket", []string{"-scene", "single-sphere", "-width", "4", "-height", "4",
			"-o", filepath.Join(t.TempDir(), "c.png"), "-upload"}, "not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), append(tt.args, "-env", noEnv))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("run() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
