// Package output encodes rendered images by file extension.
package output

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

var ErrUnknownFormat = errors.New("output: unknown image format")

// Encode writes img to w as format: webp (lossless), png or jpg. quality
// only applies to jpg.
func Encode(w io.Writer, img image.Image, format string, quality int) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Write creates path, including missing directories, and encodes img in
// the format named by its extension.
func Write(path string, img image.Image, quality int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("output: mkdir %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}

	if err := Encode(f, img, filepath.Ext(path), quality); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("output: close %s: %w", path, err)
	}
	return nil
}
