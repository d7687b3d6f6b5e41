package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

func TestPPMSink_Layout(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewPPMSink(&buf, 2, 1)
	if err != nil {
		t.Fatalf("NewPPMSink() error = %v", err)
	}

	// Second pixel is over-bright: scaled by its max channel, then truncated
	if err := sink.WritePixel(core.NewVec3(0.2, 0.7, 0.8)); err != nil {
		t.Fatalf("WritePixel() error = %v", err)
	}
	if err := sink.WritePixel(core.NewVec3(2, 1, 0)); err != nil {
		t.Fatalf("WritePixel() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := append([]byte("P6\n2 1\n255\n"), 51, 178, 204, 255, 127, 0)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("PPM bytes = %v, want %v", buf.Bytes(), want)
	}
}

func TestPPMSink_PixelCount(t *testing.T) {
	var buf bytes.Buffer
	sink, err := NewPPMSink(&buf, 1, 1)
	if err != nil {
		t.Fatalf("NewPPMSink() error = %v", err)
	}

	if err := sink.Close(); !errors.Is(err, ErrIncompleteImage) {
		t.Errorf("Close() before any pixel error = %v, want ErrIncompleteImage", err)
	}

	if err := sink.WritePixel(core.Vec3{}); err != nil {
		t.Fatalf("WritePixel() error = %v", err)
	}
	if err := sink.WritePixel(core.Vec3{}); !errors.Is(err, ErrTooManyPixels) {
		t.Errorf("extra WritePixel() error = %v, want ErrTooManyPixels", err)
	}
}

func TestWritePPM(t *testing.T) {
	fb := renderer.NewFramebuffer(3, 2)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			fb.Set(x, y, core.NewVec3(float32(x)/2, float32(y), 0))
		}
	}

	var buf bytes.Buffer
	if err := WritePPM(&buf, fb); err != nil {
		t.Fatalf("WritePPM() error = %v", err)
	}

	header := []byte("P6\n3 2\n255\n")
	if !bytes.HasPrefix(buf.Bytes(), header) {
		t.Fatalf("missing header, got %q", buf.Bytes()[:len(header)])
	}
	data := buf.Bytes()[len(header):]
	if len(data) != 3*2*3 {
		t.Fatalf("pixel data length = %d, want %d", len(data), 3*2*3)
	}

	// Pixel (1, 1) is (0.5, 1, 0)
	offset := (1*3 + 1) * 3
	if data[offset] != 127 || data[offset+1] != 255 || data[offset+2] != 0 {
		t.Errorf("pixel (1,1) = %v, want [127 255 0]", data[offset:offset+3])
	}
}

func TestCreatePPM_StreamsRender(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "render.ppm")
	sink, err := CreatePPM(filename, 2, 2)
	if err != nil {
		t.Fatalf("CreatePPM() error = %v", err)
	}

	for i := 0; i < 4; i++ {
		if err := sink.WritePixel(core.NewVec3(1, 1, 1)); err != nil {
			t.Fatalf("WritePixel() error = %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(data) != len("P6\n2 2\n255\n")+12 {
		t.Errorf("file size = %d, want %d", len(data), len("P6\n2 2\n255\n")+12)
	}
}
