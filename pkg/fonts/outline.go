package fonts

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// PathBuilder receives glyph contours. *gg.Context satisfies it.
type PathBuilder interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	CubicTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
}

// Outline turns text into vector contours so it can be filled and stroked
// like any other path. It reuses an internal buffer and is therefore not
// safe for concurrent use.
type Outline struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size*64 + 0.5)
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Metrics returns the ascent and descent of the font at size, both positive.
func (o *Outline) Metrics(size float64) (ascent, descent float64) {
	m, err := o.font.Metrics(&o.buf, ppem(size), font.HintingNone)
	if err != nil {
		return 0.8 * size, 0.2 * size
	}
	return toFloat(m.Ascent), toFloat(m.Descent)
}

// Measure returns the advance width of text at size, kerning included.
func (o *Outline) Measure(size float64, text string) float64 {
	return toFloat(o.walk(ppem(size), text, nil))
}

// Path appends the contours of text to p with the baseline origin at (x, y).
// Unknown runes produce the font's placeholder glyph.
func (o *Outline) Path(p PathBuilder, size, x, y float64, text string) {
	scale := ppem(size)
	o.walk(scale, text, func(idx sfnt.GlyphIndex, pen fixed.Int26_6) {
		o.glyph(p, idx, scale, x+toFloat(pen), y)
	})
}

func (o *Outline) glyph(p PathBuilder, idx sfnt.GlyphIndex, scale fixed.Int26_6, x, y float64) {
	segs, err := o.font.LoadGlyph(&o.buf, idx, scale, nil)
	if err != nil {
		return
	}
	pt := func(v fixed.Point26_6) (float64, float64) {
		return x + toFloat(v.X), y + toFloat(v.Y)
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.ClosePath()
			}
			p.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := pt(s.Args[0])
			x2, y2 := pt(s.Args[1])
			p.QuadraticTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(s.Args[0])
			x2, y2 := pt(s.Args[1])
			x3, y3 := pt(s.Args[2])
			p.CubicTo(x1, y1, x2, y2, x3, y3)
		}
	}
	if open {
		p.ClosePath()
	}
}

// walk advances a pen over text, calling visit (when non-nil) with each
// glyph and the pen position it starts at. It returns the final pen position.
func (o *Outline) walk(scale fixed.Int26_6, text string, visit func(sfnt.GlyphIndex, fixed.Int26_6)) fixed.Int26_6 {
	var pen fixed.Int26_6
	prev, first := sfnt.GlyphIndex(0), true
	for _, r := range text {
		idx, err := o.font.GlyphIndex(&o.buf, r)
		if err != nil {
			continue
		}
		if !first {
			if k, err := o.font.Kern(&o.buf, prev, idx, scale, font.HintingNone); err == nil {
				pen += k
			}
		}
		if visit != nil {
			visit(idx, pen)
		}
		if adv, err := o.font.GlyphAdvance(&o.buf, idx, scale, font.HintingNone); err == nil {
			pen += adv
		}
		prev, first = idx, false
	}
	return pen
}
