package thumbnail

import (
	"bytes"
	"encoding/json"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/thumbforge/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatJSON Format = "json"
)

// Formats lists every supported format; PNG is the default.
var Formats = []Format{FormatPNG, FormatJPEG, FormatJSON}

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 95

// ParseFormat resolves a format name. "jpg" is accepted for JPEG and an
// empty string means PNG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, jpeg, json)", s)
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatJSON:
		return "application/json"
	}
	return "image/png"
}

// Encode writes img in a raster format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return imaging.Encode(w, img, imaging.PNG)
	case FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	}
	return errors.New(errors.ErrCodeInvalidFormat, "format %q is not a raster format", f)
}

// RenderBytes renders cfg and encodes it. The "json" format exports the
// composition plan instead of pixels.
func (r *Renderer) RenderBytes(cfg Config, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if f == FormatJSON {
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r.Plan(cfg)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if err := Encode(&buf, r.Render(cfg), f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPNG renders cfg with the default renderer and encodes it as PNG.
func RenderPNG(cfg Config) ([]byte, error) {
	return defaultRenderer.RenderBytes(cfg, FormatPNG)
}
