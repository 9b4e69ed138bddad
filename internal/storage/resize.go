package storage

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Default bounding box for gallery images.
const (
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1080
)

// FitImage downsizes an image to fit within maxWidth x maxHeight, preserving
// aspect ratio, and re-encodes it. Images already within bounds come back
// unchanged. WebP is stored as uploaded (no encoder).
func FitImage(data []byte, contentType string, maxWidth, maxHeight int) ([]byte, error) {
	var format imaging.Format
	switch contentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image illisible: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth && bounds.Dy() <= maxHeight {
		return data, nil
	}

	resized := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("échec du ré-encodage: %w", err)
	}
	return buf.Bytes(), nil
}
