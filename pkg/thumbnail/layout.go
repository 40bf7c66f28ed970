package thumbnail

import (
	"strconv"
	"strings"

	"github.com/matzehuels/thumbforge/pkg/errors"
)

// Layout names one of the fixed composition templates.
type Layout string

// The closed set of layouts, in index order.
const (
	LayoutCenteredImpact Layout = "centered-impact"
	LayoutSplitDiagonal  Layout = "split-diagonal"
	LayoutBottomHeavy    Layout = "bottom-heavy"
	LayoutTopBanner      Layout = "top-banner"
	LayoutCornerBurst    Layout = "corner-burst"
)

// Layouts lists every layout in index order.
var Layouts = []Layout{
	LayoutCenteredImpact,
	LayoutSplitDiagonal,
	LayoutBottomHeavy,
	LayoutTopBanner,
	LayoutCornerBurst,
}

// LayoutAt returns Layouts[i], or the first layout when i is out of range.
func LayoutAt(i int) Layout {
	if i < 0 || i >= len(Layouts) {
		return Layouts[0]
	}
	return Layouts[i]
}

// Index returns the position of l in Layouts, or -1.
func (l Layout) Index() int {
	for i, known := range Layouts {
		if known == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of Layouts.
func (l Layout) Valid() bool { return l.Index() >= 0 }

func (l Layout) String() string { return string(l) }

// ParseLayout resolves a layout tag or decimal index.
func ParseLayout(s string) (Layout, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if l := Layout(s); l.Valid() {
		return l, nil
	}
	if i, err := strconv.Atoi(s); err == nil && i >= 0 && i < len(Layouts) {
		return Layouts[i], nil
	}
	return "", errors.New(errors.ErrCodeInvalidLayout, "unknown layout: %q", s)
}

// Decoration is the extra shape drawn between the blobs and the vignette.
type Decoration string

const (
	DecorationNone     Decoration = "none"
	DecorationDiagonal Decoration = "diagonal-band"
	DecorationTopShade Decoration = "top-shade"
)

// Corner is where the badge sits.
type Corner string

const (
	CornerTopLeft  Corner = "top-left"
	CornerTopRight Corner = "top-right"
)

// EmojiArrangement selects the emoji position formula.
type EmojiArrangement string

const (
	// EmojiFan spreads emojis leftwards along the bottom edge.
	EmojiFan EmojiArrangement = "fan"
	// EmojiStack zig-zags emojis down the right-of-center region.
	EmojiStack EmojiArrangement = "stack"
)

// Placement holds every layout-dependent parameter of a render.
// Fractions are relative to the canvas width or height.
type Placement struct {
	BaseFontSize float64
	MaxWidthFrac float64

	// TopFrac and TopPx give the headline's top edge as TopFrac·H + TopPx.
	// When CenterBlock is set the block is centered vertically instead and
	// CenterOffset is added.
	TopFrac      float64
	TopPx        float64
	CenterBlock  bool
	CenterOffset float64

	TextXFrac  float64
	Decoration Decoration
	Badge      Corner
	Emojis     EmojiArrangement
}

var placements = map[Layout]Placement{
	LayoutCenteredImpact: {
		BaseFontSize: 88, MaxWidthFrac: 0.85,
		CenterBlock: true, CenterOffset: -20,
		TextXFrac: 0.5, Decoration: DecorationNone, Badge: CornerTopLeft, Emojis: EmojiFan,
	},
	LayoutSplitDiagonal: {
		BaseFontSize: 78, MaxWidthFrac: 0.5,
		TopFrac:   0.22,
		TextXFrac: 0.3, Decoration: DecorationDiagonal, Badge: CornerTopLeft, Emojis: EmojiStack,
	},
	LayoutBottomHeavy: {
		BaseFontSize: 86, MaxWidthFrac: 0.88,
		TopFrac:   0.45,
		TextXFrac: 0.5, Decoration: DecorationNone, Badge: CornerTopLeft, Emojis: EmojiFan,
	},
	LayoutTopBanner: {
		BaseFontSize: 82, MaxWidthFrac: 0.85,
		TopPx:     100,
		TextXFrac: 0.5, Decoration: DecorationTopShade, Badge: CornerTopLeft, Emojis: EmojiFan,
	},
	LayoutCornerBurst: {
		BaseFontSize: 76, MaxWidthFrac: 0.6,
		TopFrac:   0.15,
		TextXFrac: 0.5, Decoration: DecorationNone, Badge: CornerTopRight, Emojis: EmojiFan,
	},
}

// PlacementFor returns the placement rules of l. Unknown layouts get the
// rules of the first layout.
func PlacementFor(l Layout) Placement {
	if p, ok := placements[l]; ok {
		return p
	}
	return placements[Layouts[0]]
}

// MaxWidth is the headline wrap width in pixels.
func (p Placement) MaxWidth() float64 { return p.MaxWidthFrac * Width }

// TextX is the horizontal center of the headline and subtext.
func (p Placement) TextX() float64 { return p.TextXFrac * Width }

// HeadlineTop returns the top edge of a headline block of the given height.
func (p Placement) HeadlineTop(blockHeight float64) float64 {
	if p.CenterBlock {
		return (Height-blockHeight)/2 + p.CenterOffset
	}
	return p.TopFrac*Height + p.TopPx
}

// EmojiCenter returns the center of the i-th emoji.
func (p Placement) EmojiCenter(i int) (x, y float64) {
	if p.Emojis == EmojiStack {
		return 0.75*Width + float64(i%2)*80, 0.3*Height + float64(i)*110
	}
	return Width - 100 - float64(i)*95, Height - 100
}

// BadgeOrigin returns the top-left corner of a badge of width w.
func (p Placement) BadgeOrigin(w float64) (x, y float64) {
	const inset = 30
	if p.Badge == CornerTopRight {
		return Width - w - inset, inset
	}
	return inset, inset
}
