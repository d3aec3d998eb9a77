package output

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/funnsam/termray/pkg/renderer"
)

// Format names an image encoding
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// FormatFromPath picks the encoding from a file extension
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", ext)
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save writes frame to path, creating parent directories as needed.
// The format follows the file extension.
func Save(path string, frame renderer.Frame) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if frame.Width() == 0 {
		return fmt.Errorf("cannot save an empty frame")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := Encode(file, frame.Image(), format); err != nil {
		file.Close()
		return fmt.Errorf("error encoding %s: %w", format, err)
	}
	return file.Close()
}

// StillPath returns output/<scene>/render_<timestamp>.png under dir
func StillPath(dir, sceneName string, at time.Time) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' || r == ':' {
			return '_'
		}
		return r
	}, strings.ToLower(sceneName))
	if name == "" {
		name = "scene"
	}
	return filepath.Join(dir, name, fmt.Sprintf("render_%s.png", at.Format("20060102_150405")))
}
