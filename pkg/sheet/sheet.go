// Package sheet lays out one configuration across every layout or every
// color scheme as a labelled grid, for comparing variants side by side.
//
//	img, err := sheet.Build(renderer, cfg, sheet.Options{By: sheet.ByLayout})
package sheet

import (
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/fonts"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

// By selects the dimension that varies across tiles.
type By string

const (
	ByLayout By = "layout"
	ByScheme By = "scheme"
)

// ParseBy resolves a dimension name.
func ParseBy(s string) (By, error) {
	switch By(s) {
	case "", ByLayout:
		return ByLayout, nil
	case ByScheme:
		return ByScheme, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid sheet dimension %q (must be layout or scheme)", s)
}

// Defaults for Options.
const (
	DefaultColumns   = 3
	DefaultTileWidth = 400
	DefaultGap       = 16
	labelHeight      = 32
	labelSize        = 18
)

var (
	sheetBackground = color.NRGBA{R: 0x18, G: 0x18, B: 0x1b, A: 0xff}
	labelColor      = color.NRGBA{R: 0xe4, G: 0xe4, B: 0xe7, A: 0xff}
)

// Options controls the grid.
type Options struct {
	By        By
	Columns   int
	TileWidth int

	// Gap is the spacing around tiles in pixels. Zero takes the default;
	// a negative gap packs tiles edge to edge.
	Gap int
}

func (o Options) withDefaults() Options {
	if o.By == "" {
		o.By = ByLayout
	}
	if o.Columns <= 0 {
		o.Columns = DefaultColumns
	}
	if o.TileWidth <= 0 {
		o.TileWidth = DefaultTileWidth
	}
	if o.Gap < 0 {
		o.Gap = 0
	} else if o.Gap == 0 {
		o.Gap = DefaultGap
	}
	return o
}

// TileHeight keeps the thumbnail aspect ratio.
func (o Options) TileHeight() int {
	return o.TileWidth * thumbnail.Height / thumbnail.Width
}

// Tile is one cell of the sheet.
type Tile struct {
	Label  string
	Config thumbnail.Config
}

// Variants returns cfg once per layout or per scheme, in table order.
func Variants(cfg thumbnail.Config, by By) ([]Tile, error) {
	cfg = cfg.Normalize()
	var tiles []Tile
	switch by {
	case ByLayout, "":
		for _, l := range thumbnail.Layouts {
			tiles = append(tiles, Tile{Label: string(l), Config: cfg.WithLayout(l)})
		}
	case ByScheme:
		for _, s := range thumbnail.Schemes {
			tiles = append(tiles, Tile{Label: s.Name, Config: cfg.WithScheme(s)})
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid sheet dimension %q", by)
	}
	return tiles, nil
}

// Build renders the variants of cfg into one image.
func Build(r *thumbnail.Renderer, cfg thumbnail.Config, opts Options) (*image.NRGBA, error) {
	opts = opts.withDefaults()
	tiles, err := Variants(cfg, opts.By)
	if err != nil {
		return nil, err
	}
	return compose(r, tiles, opts), nil
}

// Compose renders tiles concurrently and pastes them into a grid, each
// with its label underneath.
func Compose(r *thumbnail.Renderer, tiles []Tile, opts Options) *image.NRGBA {
	return compose(r, tiles, opts.withDefaults())
}

func compose(r *thumbnail.Renderer, tiles []Tile, opts Options) *image.NRGBA {
	if r == nil {
		r = thumbnail.NewRenderer()
	}

	thumbs := make([]*image.NRGBA, len(tiles))
	var wg sync.WaitGroup
	for i, t := range tiles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			thumbs[i] = imaging.Resize(r.Render(t.Config), opts.TileWidth, opts.TileHeight(), imaging.Lanczos)
		}()
	}
	wg.Wait()

	cols := min(opts.Columns, max(len(tiles), 1))
	rows := (len(tiles) + cols - 1) / cols
	cellW := opts.TileWidth + opts.Gap
	cellH := opts.TileHeight() + labelHeight + opts.Gap
	w := opts.Gap + cols*cellW
	h := opts.Gap + rows*cellH

	canvas := imaging.New(w, h, sheetBackground)
	for i, thumb := range thumbs {
		x := opts.Gap + (i%cols)*cellW
		y := opts.Gap + (i/cols)*cellH
		canvas = imaging.Paste(canvas, thumb, image.Pt(x, y))
	}
	return drawLabels(canvas, tiles, opts, cols)
}

func drawLabels(canvas *image.NRGBA, tiles []Tile, opts Options, cols int) *image.NRGBA {
	dc := gg.NewContextForImage(canvas)
	face := fonts.MustDefault().Face(fonts.Bold, labelSize)
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(labelColor)

	cellW := opts.TileWidth + opts.Gap
	cellH := opts.TileHeight() + labelHeight + opts.Gap
	for i, t := range tiles {
		x := float64(opts.Gap + (i%cols)*cellW + opts.TileWidth/2)
		y := float64(opts.Gap + (i/cols)*cellH + opts.TileHeight() + labelHeight/2)
		dc.DrawStringAnchored(t.Label, x, y, 0.5, 0.35)
	}
	return imaging.Clone(dc.Image())
}
