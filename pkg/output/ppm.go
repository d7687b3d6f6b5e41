package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

var (
	// ErrTooManyPixels is returned when a sink receives more pixels than its image holds
	ErrTooManyPixels = errors.New("too many pixels")
	// ErrIncompleteImage is returned when a sink is closed before every pixel was written
	ErrIncompleteImage = errors.New("incomplete image")
)

// PPMSink streams pixels as a binary PPM (P6) image: an ASCII header followed by
// three bytes per pixel with no padding
type PPMSink struct {
	w       *bufio.Writer
	closer  io.Closer
	width   int
	height  int
	written int
}

// NewPPMSink writes the PPM header to w and returns a sink for the pixel data
func NewPPMSink(w io.Writer, width, height int) (*PPMSink, error) {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", width, height); err != nil {
		return nil, fmt.Errorf("failed to write PPM header: %w", err)
	}
	return &PPMSink{w: bw, width: width, height: height}, nil
}

// CreatePPM creates filename and returns a sink writing to it. Close flushes and closes the file.
func CreatePPM(filename string, width, height int) (*PPMSink, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", filename, err)
	}
	sink, err := NewPPMSink(file, width, height)
	if err != nil {
		file.Close()
		return nil, err
	}
	sink.closer = file
	return sink, nil
}

// WritePixel implements renderer.FrameSink
func (s *PPMSink) WritePixel(color core.Vec3) error {
	if s.written >= s.width*s.height {
		return ErrTooManyPixels
	}
	rgb := renderer.ToRGB(color)
	if _, err := s.w.Write([]byte{rgb.R, rgb.G, rgb.B}); err != nil {
		return err
	}
	s.written++
	return nil
}

// Close flushes buffered pixel data and closes the underlying file if the sink owns one.
// Closing before the last pixel returns ErrIncompleteImage.
func (s *PPMSink) Close() error {
	err := s.w.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("failed to finish PPM: %w", err)
	}
	if s.written != s.width*s.height {
		return fmt.Errorf("%w: wrote %d of %d pixels", ErrIncompleteImage, s.written, s.width*s.height)
	}
	return nil
}

// WritePPM writes a rendered framebuffer to w as a binary PPM image
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	sink, err := NewPPMSink(w, fb.Width(), fb.Height())
	if err != nil {
		return err
	}
	if err := fb.Drain(sink); err != nil {
		return err
	}
	return sink.Close()
}
