package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxBytes     = 10 << 20
	DefaultMaxDimension = 6000
)

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// Validated carries the raw bytes plus the content type derived from the
// decoded format, which may differ from what the client declared.
type Validated struct {
	Bytes       []byte
	ContentType string
	Width       int
	Height      int
}

var formatContentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Validate reads the upload fully, enforces size and dimension bounds and
// checks that the payload actually decodes as a supported image format.
func Validate(upload Upload, maxBytes int64, maxDimension int) (*Validated, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if upload.Size > maxBytes {
		return nil, fmt.Errorf("media: image exceeds %d bytes", maxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(upload.Reader, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("media: image exceeds %d bytes", maxBytes)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode image: %w", err)
	}
	contentType, ok := formatContentTypes[format]
	if !ok {
		return nil, fmt.Errorf("media: unsupported image format %q", format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("media: invalid image dimensions")
	}
	if cfg.Width > maxDimension || cfg.Height > maxDimension {
		return nil, fmt.Errorf("media: image dimensions %dx%d exceed %dpx", cfg.Width, cfg.Height, maxDimension)
	}
	return &Validated{Bytes: data, ContentType: contentType, Width: cfg.Width, Height: cfg.Height}, nil
}

