package thumbnail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/thumbforge/pkg/errors"
)

// Color is a non-premultiplied RGBA color that marshals as "#rrggbb" or
// "#rrggbbaa" (alpha only when not fully opaque).
type Color color.NRGBA

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

// Alpha returns c with its alpha channel scaled by f, clamped to [0, 1].
func (c Color) Alpha(f float64) color.NRGBA {
	f = min(max(f, 0), 1)
	n := color.NRGBA(c)
	n.A = uint8(float64(n.A)*f + 0.5)
	return n
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when alpha is below 255.
func (c Color) Hex() string {
	hex := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
	if c.A == 0xff {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, errors.New(errors.ErrCodeInvalidScheme, "invalid color %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidScheme, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

// MustColor is like ParseColor but panics on malformed input.
// It is meant for package-level tables.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ColorScheme is a named palette. Background holds the two gradient stops;
// the second stop doubles as the dark ink for text drawn on accent pills.
type ColorScheme struct {
	Name       string   `json:"name"`
	Background [2]Color `json:"background"`
	Accent     Color    `json:"accent"`
	Text       Color    `json:"text"`
	Overlay    Color    `json:"overlay"`
}

// IsZero reports whether s is the zero scheme.
func (s ColorScheme) IsZero() bool {
	return s == ColorScheme{}
}

// Dark returns the color used for text on accent-filled shapes.
func (s ColorScheme) Dark() Color { return s.Background[1] }

// UnmarshalJSON accepts either a scheme name ("Danger Red") or a full object.
func (s *ColorScheme) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		found, err := SchemeByName(name)
		if err != nil {
			return err
		}
		*s = found
		return nil
	}
	type plain ColorScheme
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScheme, err, "decode color scheme")
	}
	*s = ColorScheme(p)
	return nil
}

// Schemes is the fixed palette, in index order.
var Schemes = []ColorScheme{
	{Name: "Danger Red", Background: [2]Color{MustColor("#FF0000"), MustColor("#8B0000")}, Accent: MustColor("#FFDD00"), Text: MustColor("#FFFFFF"), Overlay: MustColor("#0000008c")},
	{Name: "Electric Blue", Background: [2]Color{MustColor("#0066FF"), MustColor("#001a66")}, Accent: MustColor("#00FF88"), Text: MustColor("#FFFFFF"), Overlay: MustColor("#00002880")},
	{Name: "Fire Orange", Background: [2]Color{MustColor("#FF6B00"), MustColor("#CC3300")}, Accent: MustColor("#FFFFFF"), Text: MustColor("#FFFFFF"), Overlay: MustColor("#28000080")},
	{Name: "Royal Purple", Background: [2]Color{MustColor("#7B2FBE"), MustColor("#2D004F")}, Accent: MustColor("#FFD700"), Text: MustColor("#FFFFFF"), Overlay: MustColor("#14002880")},
	{Name: "Fresh Teal", Background: [2]Color{MustColor("#00C9A7"), MustColor("#004D40")}, Accent: MustColor("#FFFFFF"), Text: MustColor("#FFFFFF"), Overlay: MustColor("#00141480")},
	{Name: "Hot Pink", Background: [2]Color{MustColor("#FF1493"), MustColor("#8B0060")}, Accent: MustColor("#FFFF00"), Text: MustColor("#FFFFFF"), Overlay: MustColor("#28001480")},
	{Name: "Dark Cinematic", Background: [2]Color{MustColor("#1a1a2e"), MustColor("#16213e")}, Accent: MustColor("#e94560"), Text: MustColor("#FFFFFF"), Overlay: MustColor("#00000066")},
	{Name: "Bold Gold", Background: [2]Color{MustColor("#F7DC6F"), MustColor("#F39C12")}, Accent: MustColor("#2C3E50"), Text: MustColor("#2C3E50"), Overlay: MustColor("#00000040")},
}

// SchemeAt returns Schemes[i], or Schemes[0] when i is out of range.
func SchemeAt(i int) ColorScheme {
	if i < 0 || i >= len(Schemes) {
		return Schemes[0]
	}
	return Schemes[i]
}

// SchemeIndex returns the palette index of s, or -1 for custom schemes.
func SchemeIndex(s ColorScheme) int {
	for i, known := range Schemes {
		if known == s {
			return i
		}
	}
	return -1
}

// SchemeByName looks a scheme up by name, ignoring case and surrounding space.
// A decimal index ("3") is accepted as well.
func SchemeByName(name string) (ColorScheme, error) {
	name = strings.TrimSpace(name)
	for _, s := range Schemes {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < len(Schemes) {
		return Schemes[i], nil
	}
	return ColorScheme{}, errors.New(errors.ErrCodeInvalidScheme, "unknown color scheme: %q", name)
}
