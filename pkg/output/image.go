package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// JPEGQuality is the quality used for .jpg output
const JPEGQuality = 95

// IsPPM reports whether filename has a .ppm extension
func IsPPM(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".ppm")
}

// SaveFramebuffer writes a rendered framebuffer to filename, choosing the format from the extension.
// .ppm is written directly from the linear colors; every other extension goes through SaveImage.
func SaveFramebuffer(fb *renderer.Framebuffer, filename string) error {
	if !IsPPM(filename) {
		return SaveImage(fb.Image(), filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := WritePPM(file, fb); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// SaveImage encodes img to filename in the format named by its extension (png, jpg, gif, tif, bmp)
func SaveImage(img image.Image, filename string) error {
	if err := imaging.Save(img, filename, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	return nil
}

// EncodePNG writes img to w as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// Thumbnail scales img down to width pixels wide, keeping the aspect ratio.
// Images already narrower than width are returned unchanged.
func Thumbnail(img image.Image, width uint) image.Image {
	if width == 0 || int(width) >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(width, 0, img, resize.Bilinear)
}

// ThumbnailPath returns the path a thumbnail of filename is saved to: the same
// directory and base name with a _thumb suffix, always as PNG
func ThumbnailPath(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_thumb.png"
}
