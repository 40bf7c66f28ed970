// Package fonts provides the typefaces used to rasterize thumbnails.
//
// The Go font family is embedded via golang.org/x/image/font/gofont, so a
// binary renders identically on every machine without system fonts. Fonts
// are parsed once per process; the per-size faces and outline readers handed
// out by a [Set] carry glyph caches and must not be shared between
// goroutines, so callers build them fresh for every render.
//
// Go fonts have no emoji glyphs. A monochrome TrueType emoji font can be
// loaded with [Load]; without one, emojis fall back to the regular face and
// render as placeholder boxes.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Weight selects a face within the family.
type Weight int

const (
	Regular Weight = iota
	Bold
)

func (w Weight) String() string {
	if w == Bold {
		return "bold"
	}
	return "regular"
}

// Set is an immutable collection of parsed fonts. It is safe for concurrent
// use; the values it returns are not.
type Set struct {
	faces    map[Weight]*truetype.Font
	outlines map[Weight]*sfnt.Font
	emoji    *truetype.Font
}

var (
	defaultSet     *Set
	defaultSetErr  error
	defaultSetOnce sync.Once
)

// Default returns the embedded Go font set, parsed on first use.
func Default() (*Set, error) {
	defaultSetOnce.Do(func() {
		defaultSet, defaultSetErr = parse(map[Weight][]byte{
			Regular: goregular.TTF,
			Bold:    gobold.TTF,
		})
	})
	return defaultSet, defaultSetErr
}

// MustDefault is like Default but panics if the embedded fonts fail to parse.
func MustDefault() *Set {
	s, err := Default()
	if err != nil {
		panic(err)
	}
	return s
}

// Load returns the default set extended with the emoji font at emojiPath.
// An empty path returns the default set unchanged.
func Load(emojiPath string) (*Set, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if emojiPath == "" {
		return base, nil
	}
	data, err := os.ReadFile(emojiPath)
	if err != nil {
		return nil, fmt.Errorf("read emoji font: %w", err)
	}
	emoji, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse emoji font %s: %w", emojiPath, err)
	}
	return &Set{faces: base.faces, outlines: base.outlines, emoji: emoji}, nil
}

func parse(src map[Weight][]byte) (*Set, error) {
	s := &Set{
		faces:    make(map[Weight]*truetype.Font, len(src)),
		outlines: make(map[Weight]*sfnt.Font, len(src)),
	}
	for w, data := range src {
		tt, err := truetype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s face: %w", w, err)
		}
		of, err := sfnt.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s outline: %w", w, err)
		}
		s.faces[w] = tt
		s.outlines[w] = of
	}
	return s, nil
}

// Face returns a new face of weight w at size pixels (72 DPI, unhinted).
func (s *Set) Face(w Weight, size float64) font.Face {
	f, ok := s.faces[w]
	if !ok {
		f = s.faces[Regular]
	}
	return newFace(f, size)
}

// EmojiFace returns a face for emoji glyphs, falling back to the regular face.
func (s *Set) EmojiFace(size float64) font.Face {
	if s.HasEmoji() {
		return newFace(s.emoji, size)
	}
	return s.Face(Regular, size)
}

// HasEmoji reports whether a dedicated emoji font is loaded.
func (s *Set) HasEmoji() bool { return s.emoji != nil }

// Outline returns a new outline reader for weight w.
func (s *Set) Outline(w Weight) *Outline {
	f, ok := s.outlines[w]
	if !ok {
		f = s.outlines[Regular]
	}
	return &Outline{font: f}
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
