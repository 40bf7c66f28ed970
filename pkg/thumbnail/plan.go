package thumbnail

import (
	"strings"

	"golang.org/x/image/font"

	"github.com/matzehuels/thumbforge/pkg/fonts"
)

// Fixed sizes of the secondary elements.
const (
	SubtextMinSize   = 32
	SubtextSizeRatio = 0.42
	BadgeFontSize    = 30
	EmojiFontSize    = 72
	EmojiOpacity     = 0.9
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Headline is the placed headline block.
type Headline struct {
	TextBlock
	X           float64 `json:"x"`
	Top         float64 `json:"top"`
	StrokeWidth float64 `json:"stroke_width"`
}

// Pill is a rounded, accent-filled label with centered text.
type Pill struct {
	Text     string  `json:"text"`
	Rect     Rect    `json:"rect"`
	Radius   float64 `json:"radius"`
	FontSize float64 `json:"font_size"`
	// TextX is the horizontal text center; Baseline the alphabetic baseline.
	TextX    float64 `json:"text_x"`
	Baseline float64 `json:"baseline"`
	Border   bool    `json:"border,omitempty"`
}

// Mark is a single emoji centered on (X, Y).
type Mark struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Composition is the full geometry of one render: everything the draw
// passes need, resolved up front. It is what the "json" format exports.
type Composition struct {
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Layout     Layout      `json:"layout"`
	Scheme     ColorScheme `json:"color_scheme"`
	Seed       int         `json:"seed"`
	Blobs      []Blob      `json:"blobs"`
	Decoration Decoration  `json:"decoration"`
	Headline   Headline    `json:"headline"`
	Subtext    *Pill       `json:"subtext,omitempty"`
	Badge      *Pill       `json:"badge,omitempty"`
	Emojis     []Mark      `json:"emojis,omitempty"`
	Frame      Rect        `json:"frame"`
}

// typesetter measures text for a single render. It owns font faces with
// glyph caches and must not outlive the call that created it.
type typesetter struct {
	set     *fonts.Set
	outline *fonts.Outline
	faces   map[float64]font.Face
}

func newTypesetter(set *fonts.Set) *typesetter {
	return &typesetter{
		set:     set,
		outline: set.Outline(fonts.Bold),
		faces:   make(map[float64]font.Face),
	}
}

// Measure implements Measurer with headline outlines.
func (t *typesetter) Measure(size float64) MeasureFunc {
	return func(s string) float64 { return t.outline.Measure(size, s) }
}

func (t *typesetter) face(size float64) font.Face {
	f, ok := t.faces[size]
	if !ok {
		f = t.set.Face(fonts.Bold, size)
		t.faces[size] = f
	}
	return f
}

func (t *typesetter) width(f font.Face, s string) float64 {
	return float64(font.MeasureString(f, s)) / 64
}

// middle returns the baseline that vertically centers a line of f on y.
func middle(f font.Face, y float64) float64 {
	m := f.Metrics()
	return y + (float64(m.Ascent)-float64(m.Descent))/64/2
}

// top returns the baseline for a line of f whose em box starts at y.
func top(f font.Face, y float64) float64 {
	return y + float64(f.Metrics().Ascent)/64
}

func (t *typesetter) close() {
	for _, f := range t.faces {
		f.Close()
	}
}

func (r *Renderer) plan(cfg Config, ts *typesetter) Composition {
	cfg = cfg.Normalize()
	p := PlacementFor(cfg.Layout)
	seed := Seed(cfg.Headline)

	fit := r.fit
	fit.BaseSize = p.BaseFontSize
	fit.MaxWidth = p.MaxWidth()
	block := Fit(cfg.HeadlineText(), fit, ts)

	stroke := 5.0
	if block.Size > 60 {
		stroke = 8
	}
	headline := Headline{
		TextBlock:   block,
		X:           p.TextX(),
		Top:         p.HeadlineTop(block.Height),
		StrokeWidth: stroke,
	}

	c := Composition{
		Width:      Width,
		Height:     Height,
		Layout:     cfg.Layout,
		Scheme:     cfg.Scheme,
		Seed:       seed,
		Blobs:      Blobs(seed),
		Decoration: p.Decoration,
		Headline:   headline,
		Frame:      Rect{X: 16, Y: 16, W: Width - 32, H: Height - 32},
	}

	if cfg.Subtext != "" {
		size := max(SubtextMinSize, SubtextSizeRatio*block.Size)
		text := strings.ToUpper(cfg.Subtext)
		face := ts.face(size)
		w := ts.width(face, text) + 44
		y := headline.Top + block.Height + 24
		c.Subtext = &Pill{
			Text:     text,
			Rect:     Rect{X: headline.X - w/2, Y: y - 6, W: w, H: size + 24},
			Radius:   12,
			FontSize: size,
			TextX:    headline.X,
			Baseline: top(face, y+2),
		}
	}

	if cfg.Badge != "" {
		text := strings.ToUpper(cfg.Badge)
		face := ts.face(BadgeFontSize)
		w := ts.width(face, text) + 34
		h := float64(BadgeFontSize + 22)
		x, y := p.BadgeOrigin(w)
		c.Badge = &Pill{
			Text:     text,
			Rect:     Rect{X: x, Y: y, W: w, H: h},
			Radius:   8,
			FontSize: BadgeFontSize,
			TextX:    x + w/2,
			Baseline: middle(face, y+h/2),
			Border:   true,
		}
	}

	for i, e := range cfg.Emojis {
		x, y := p.EmojiCenter(i)
		c.Emojis = append(c.Emojis, Mark{Text: e, X: x, Y: y})
	}
	return c
}

// Plan computes the geometry of cfg without drawing it.
func (r *Renderer) Plan(cfg Config) Composition {
	ts := newTypesetter(r.fonts)
	defer ts.close()
	return r.plan(cfg, ts)
}
