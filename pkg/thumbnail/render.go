package thumbnail

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"

	"github.com/matzehuels/thumbforge/pkg/fonts"
)

var (
	transparent  = color.NRGBA{}
	shadowColor  = color.NRGBA{A: 179} // black at 0.7
	outlineColor = color.NRGBA{A: 230} // black at 0.9
	vignetteEnd  = color.NRGBA{A: 153} // black at 0.6
	topShade     = color.NRGBA{A: 128} // black at 0.5
	badgeBorder  = color.NRGBA{R: 255, G: 255, B: 255, A: 102}
	frameColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 26}
)

// Renderer draws configurations. The zero value is not usable; use
// [NewRenderer].
type Renderer struct {
	fonts *fonts.Set
	fit   FitParams
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithFonts sets the font set, e.g. one carrying an emoji font.
func WithFonts(s *fonts.Set) Option {
	return func(r *Renderer) {
		if s != nil {
			r.fonts = s
		}
	}
}

// WithFit overrides the auto-fit tuning. Base size and width always come
// from the layout.
func WithFit(p FitParams) Option {
	return func(r *Renderer) { r.fit = p.withDefaults() }
}

// NewRenderer returns a renderer using the embedded fonts.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{fonts: fonts.MustDefault(), fit: DefaultFit}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = NewRenderer()

// Render draws cfg with the default renderer.
func Render(cfg Config) *image.RGBA { return defaultRenderer.Render(cfg) }

// Plan computes the geometry of cfg with the default renderer.
func Plan(cfg Config) Composition { return defaultRenderer.Plan(cfg) }

// Render draws cfg onto a fresh 1280×720 canvas. It never fails: empty
// fields are defaulted or skipped.
func (r *Renderer) Render(cfg Config) *image.RGBA {
	ts := newTypesetter(r.fonts)
	defer ts.close()
	c := r.plan(cfg, ts)

	dc := gg.NewContext(Width, Height)
	passes := []func(*gg.Context, Composition, *typesetter){
		drawBackground,
		drawBlobs,
		drawDecoration,
		drawVignette,
		drawHeadline,
		drawSubtext,
		drawBadge,
		r.drawEmojis,
		drawFrame,
	}
	for _, pass := range passes {
		pass(dc, c, ts)
	}
	return toRGBA(dc.Image())
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

func drawBackground(dc *gg.Context, c Composition, _ *typesetter) {
	g := gg.NewLinearGradient(0, 0, Width, Height)
	g.AddColorStop(0, c.Scheme.Background[0])
	g.AddColorStop(1, c.Scheme.Background[1])
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()
}

func drawBlobs(dc *gg.Context, c Composition, _ *typesetter) {
	for _, b := range c.Blobs {
		g := gg.NewRadialGradient(b.X, b.Y, 0, b.X, b.Y, b.R)
		g.AddColorStop(0, c.Scheme.Accent.Alpha(BlobOpacity))
		g.AddColorStop(1, transparent)
		dc.SetFillStyle(g)
		dc.DrawCircle(b.X, b.Y, b.R)
		dc.Fill()
	}
}

func drawDecoration(dc *gg.Context, c Composition, _ *typesetter) {
	switch c.Decoration {
	case DecorationDiagonal:
		dc.SetColor(c.Scheme.Accent.Alpha(0.15))
		dc.MoveTo(Width*0.55, 0)
		dc.LineTo(Width*0.75, 0)
		dc.LineTo(Width*0.45, Height)
		dc.LineTo(Width*0.25, Height)
		dc.ClosePath()
		dc.Fill()
	case DecorationTopShade:
		fillVertical(dc, 0, Height*0.5, topShade, transparent)
	}
}

func drawVignette(dc *gg.Context, _ Composition, _ *typesetter) {
	fillVertical(dc, Height*0.4, Height, transparent, vignetteEnd)
}

// fillVertical covers the canvas with a vertical gradient from c0 at y0 to
// c1 at y1; outside that span the end colors extend.
func fillVertical(dc *gg.Context, y0, y1 float64, c0, c1 color.Color) {
	g := gg.NewLinearGradient(0, y0, 0, y1)
	g.AddColorStop(0, c0)
	g.AddColorStop(1, c1)
	dc.SetFillStyle(g)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()
}

func drawHeadline(dc *gg.Context, c Composition, ts *typesetter) {
	h := c.Headline
	ascent, _ := ts.outline.Metrics(h.Size)
	for i, line := range h.Lines {
		left := h.X - ts.outline.Measure(h.Size, line)/2
		baseline := h.Top + float64(i)*h.LineHeight + ascent

		ts.outline.Path(dc, h.Size, left+4, baseline+4, line)
		dc.SetColor(shadowColor)
		dc.Fill()

		ts.outline.Path(dc, h.Size, left, baseline, line)
		dc.SetColor(outlineColor)
		dc.SetLineWidth(h.StrokeWidth)
		dc.SetLineJoin(gg.LineJoinRound)
		dc.StrokePreserve()
		dc.SetColor(c.Scheme.Text)
		dc.Fill()
	}
}

func drawSubtext(dc *gg.Context, c Composition, ts *typesetter) {
	if c.Subtext != nil {
		drawPill(dc, c.Scheme, *c.Subtext, ts)
	}
}

func drawBadge(dc *gg.Context, c Composition, ts *typesetter) {
	if c.Badge != nil {
		drawPill(dc, c.Scheme, *c.Badge, ts)
	}
}

func drawPill(dc *gg.Context, s ColorScheme, p Pill, ts *typesetter) {
	dc.DrawRoundedRectangle(p.Rect.X, p.Rect.Y, p.Rect.W, p.Rect.H, p.Radius)
	dc.SetColor(s.Accent)
	if p.Border {
		dc.FillPreserve()
		dc.SetColor(badgeBorder)
		dc.SetLineWidth(2)
		dc.Stroke()
	} else {
		dc.Fill()
	}

	face := ts.face(p.FontSize)
	dc.SetFontFace(face)
	dc.SetColor(s.Dark())
	dc.DrawString(p.Text, p.TextX-ts.width(face, p.Text)/2, p.Baseline)
}

func (r *Renderer) drawEmojis(dc *gg.Context, c Composition, _ *typesetter) {
	if len(c.Emojis) == 0 {
		return
	}
	face := r.fonts.EmojiFace(EmojiFontSize)
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(c.Scheme.Text.Alpha(EmojiOpacity))
	for _, m := range c.Emojis {
		w, _ := dc.MeasureString(m.Text)
		dc.DrawString(m.Text, m.X-w/2, middle(face, m.Y))
	}
}

func drawFrame(dc *gg.Context, c Composition, _ *typesetter) {
	dc.SetColor(frameColor)
	dc.SetLineWidth(4)
	dc.DrawRectangle(c.Frame.X, c.Frame.Y, c.Frame.W, c.Frame.H)
	dc.Stroke()
}
