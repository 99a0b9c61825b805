// Package texture decodes model textures and uploads them to OpenGL.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Format names a container format by its extension.
func Format(path, mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/png":
		return "png"
	case "image/jpeg", "image/jpg":
		return "jpeg"
	case "image/bmp":
		return "bmp"
	case "image/webp":
		return "webp"
	case "image/x-tga", "image/tga", "image/x-targa":
		return "tga"
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".bmp":
		return "bmp"
	case ".webp":
		return "webp"
	case ".tga":
		return "tga"
	}
	return ""
}

// Decode decodes image data. TGA has no magic number, so it is chosen by
// name or MIME type; everything else is sniffed.
func Decode(data []byte, path, mimeType string) (*image.RGBA, error) {
	var (
		img image.Image
		err error
	)
	if Format(path, mimeType) == "tga" {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", displayName(path), err)
	}
	return ImageToRGBA(img), nil
}

func displayName(path string) string {
	if path == "" {
		return "embedded image"
	}
	return filepath.Base(path)
}
