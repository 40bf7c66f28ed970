package thumbnail

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/fonts"
)

func scenario() Config {
	return Config{
		Headline: "THIS CHANGES EVERYTHING",
		Subtext:  "WATCH NOW",
		Badge:    "NEW",
		Emojis:   []string{"🔥"},
		Scheme:   SchemeAt(0),
		Layout:   LayoutCenteredImpact,
	}
}

func TestRenderDimensions(t *testing.T) {
	img := Render(scenario())
	if b := img.Bounds(); b.Dx() != Width || b.Dy() != Height {
		t.Fatalf("bounds = %v, want %dx%d", b, Width, Height)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := Render(scenario())
	b := Render(scenario())
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same config rendered different pixels")
	}
}

func TestRenderConcurrent(t *testing.T) {
	r := NewRenderer()
	want := r.Render(scenario())

	var wg sync.WaitGroup
	results := make([]*image.RGBA, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = r.Render(scenario())
		}()
	}
	wg.Wait()
	for i, got := range results {
		if !bytes.Equal(got.Pix, want.Pix) {
			t.Errorf("concurrent render %d differs", i)
		}
	}
}

func TestRenderEmptyConfig(t *testing.T) {
	img := Render(Config{})
	if img.Bounds().Dx() != Width {
		t.Fatal("empty config must still render a full canvas")
	}
	c := Plan(Config{})
	if got := strings.Join(c.Headline.Lines, " "); got != DefaultHeadline {
		t.Errorf("headline = %q, want %q", got, DefaultHeadline)
	}
	if c.Scheme != Schemes[0] || c.Layout != Layouts[0] {
		t.Errorf("defaults = %q/%q", c.Scheme.Name, c.Layout)
	}
	if c.Subtext != nil || c.Badge != nil || len(c.Emojis) != 0 {
		t.Error("empty optional fields must be skipped")
	}
	if c.Seed != 0 {
		t.Errorf("Seed = %d, want 0 for empty headline", c.Seed)
	}
}

func TestRenderBadgePixels(t *testing.T) {
	// (35, 40) lies inside the badge pill left of the label.
	accent := color.RGBA{R: 0xff, G: 0xdd, A: 0xff}

	with := Render(scenario())
	if got := with.RGBAAt(35, 40); got != accent {
		t.Errorf("badge pixel = %v, want accent %v", got, accent)
	}

	without := Render(scenario().WithBadge(""))
	if got := without.RGBAAt(35, 40); got == accent {
		t.Error("badge drawn although the badge text is empty")
	}
}

func TestRenderSubtextPixels(t *testing.T) {
	accent := color.RGBA{R: 0xff, G: 0xdd, A: 0xff}
	pill := Plan(scenario()).Subtext
	if pill == nil {
		t.Fatal("scenario should plan a subtext pill")
	}
	// Inside the pill, left of the label padding.
	x, y := int(pill.Rect.X)+6, int(pill.Rect.Y+pill.Rect.H/2)

	if got := Render(scenario()).RGBAAt(x, y); got != accent {
		t.Errorf("subtext pill pixel (%d,%d) = %v, want accent %v", x, y, got, accent)
	}
	if got := Render(scenario().WithSubtext("")).RGBAAt(x, y); got == accent {
		t.Errorf("subtext pill drawn at (%d,%d) although the subtext is empty", x, y)
	}
}

func TestRenderEmojiPixels(t *testing.T) {
	base := scenario()
	base.Emojis = nil
	never := Render(base)
	cleared := Render(scenario().WithEmojis())
	with := Render(scenario())

	// The first fan slot is centered on (1180, 620).
	region := image.Rect(1180-EmojiFontSize/2, 620-EmojiFontSize/2, 1180+EmojiFontSize/2, 620+EmojiFontSize/2)
	touched := false
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if cleared.RGBAAt(x, y) != never.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) differs from a render that never had emojis", x, y)
			}
			if with.RGBAAt(x, y) != never.RGBAAt(x, y) {
				touched = true
			}
		}
	}
	if !touched {
		t.Error("the emoji pass left its slot untouched")
	}
	if cleared.RGBAAt(1180, 620) != never.RGBAAt(1180, 620) {
		t.Error("emoji center pixel differs after clearing the emojis")
	}
}

func TestPlanScenario(t *testing.T) {
	c := Plan(scenario())

	h := c.Headline
	if len(h.Lines) == 0 || len(h.Lines) > DefaultFit.MaxLines {
		t.Errorf("headline has %d lines", len(h.Lines))
	}
	if h.Size > 88 || h.Size < DefaultFit.MinSize {
		t.Errorf("headline size = %v", h.Size)
	}
	if h.X != 640 {
		t.Errorf("headline x = %v, want 640", h.X)
	}
	if !approx(h.Top, (Height-h.Height)/2-20) {
		t.Errorf("headline top = %v, want centered block raised by 20", h.Top)
	}
	wantStroke := 5.0
	if h.Size > 60 {
		wantStroke = 8
	}
	if h.StrokeWidth != wantStroke {
		t.Errorf("stroke width = %v, want %v", h.StrokeWidth, wantStroke)
	}

	sub := c.Subtext
	if sub == nil {
		t.Fatal("missing subtext pill")
	}
	if sub.Text != "WATCH NOW" || sub.TextX != 640 {
		t.Errorf("subtext = %q at %v", sub.Text, sub.TextX)
	}
	if !approx(sub.Rect.X+sub.Rect.W/2, 640) {
		t.Errorf("subtext pill not centered: %+v", sub.Rect)
	}
	if !approx(sub.Rect.Y, h.Top+h.Height+24-6) {
		t.Errorf("subtext pill y = %v", sub.Rect.Y)
	}
	if sub.FontSize != max(SubtextMinSize, SubtextSizeRatio*h.Size) {
		t.Errorf("subtext size = %v", sub.FontSize)
	}

	badge := c.Badge
	if badge == nil {
		t.Fatal("missing badge")
	}
	if badge.Rect.X != 30 || badge.Rect.Y != 30 || badge.Rect.H != 52 || !badge.Border {
		t.Errorf("badge = %+v", badge)
	}

	if len(c.Emojis) != 1 || c.Emojis[0] != (Mark{Text: "🔥", X: 1180, Y: 620}) {
		t.Errorf("emojis = %+v", c.Emojis)
	}
	if c.Frame != (Rect{X: 16, Y: 16, W: Width - 32, H: Height - 32}) {
		t.Errorf("frame = %+v", c.Frame)
	}
}

func TestPlanLayoutsDiffer(t *testing.T) {
	type geometry struct {
		top, x float64
		deco   Decoration
	}
	seen := make(map[geometry]Layout)
	for _, l := range Layouts {
		c := Plan(scenario().WithLayout(l))
		g := geometry{c.Headline.Top, c.Headline.X, c.Decoration}
		if prev, ok := seen[g]; ok {
			t.Errorf("%s and %s share geometry %+v", prev, l, g)
		}
		seen[g] = l
	}
}

func TestPlanAutoFitRealFont(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("UNBELIEVABLE RESULTS ", 6))
	outline := fonts.MustDefault().Outline(fonts.Bold)

	for _, l := range Layouts {
		t.Run(string(l), func(t *testing.T) {
			h := Plan(scenario().WithHeadline(long).WithLayout(l)).Headline
			p := PlacementFor(l)
			if h.Size >= p.BaseFontSize {
				t.Errorf("size = %v, expected shrink below %v", h.Size, p.BaseFontSize)
			}
			if len(h.Lines) > DefaultFit.MaxLines && h.Size > DefaultFit.MinSize {
				t.Errorf("%d lines at size %v; expected floor", len(h.Lines), h.Size)
			}
			for _, line := range h.Lines {
				if strings.Contains(line, " ") && outline.Measure(h.Size, line) > p.MaxWidth() {
					t.Errorf("line %q overflows %v", line, p.MaxWidth())
				}
			}
		})
	}
}

func TestPlanCornerBurstBadge(t *testing.T) {
	c := Plan(scenario().WithLayout(LayoutCornerBurst))
	if !approx(c.Badge.Rect.X+c.Badge.Rect.W, Width-30) {
		t.Errorf("badge right edge = %v, want %d", c.Badge.Rect.X+c.Badge.Rect.W, Width-30)
	}
}

func TestRenderBytes(t *testing.T) {
	r := NewRenderer()
	for _, f := range []Format{FormatPNG, FormatJPEG} {
		t.Run(string(f), func(t *testing.T) {
			data, err := r.RenderBytes(scenario(), f)
			if err != nil {
				t.Fatal(err)
			}
			cfg, name, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Width != Width || cfg.Height != Height {
				t.Errorf("decoded %dx%d", cfg.Width, cfg.Height)
			}
			if name != string(f) {
				t.Errorf("decoded as %q, want %q", name, f)
			}
		})
	}

	t.Run("json", func(t *testing.T) {
		data, err := r.RenderBytes(scenario(), FormatJSON)
		if err != nil {
			t.Fatal(err)
		}
		var c Composition
		if err := json.Unmarshal(data, &c); err != nil {
			t.Fatal(err)
		}
		if c.Width != Width || c.Layout != LayoutCenteredImpact || c.Scheme != Schemes[0] {
			t.Errorf("decoded plan %+v", c)
		}
	})

	t.Run("default renderer", func(t *testing.T) {
		want, err := r.RenderBytes(scenario(), FormatPNG)
		if err != nil {
			t.Fatal(err)
		}
		got, err := RenderPNG(scenario())
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Error("RenderPNG differs from a fresh renderer's PNG")
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ext  string
	}{
		{"", FormatPNG, "png"},
		{"PNG", FormatPNG, "png"},
		{"jpg", FormatJPEG, "jpg"},
		{"jpeg", FormatJPEG, "jpg"},
		{"json", FormatJSON, "json"},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tt.in, err)
		}
		if got != tt.want || got.Extension() != tt.ext {
			t.Errorf("ParseFormat(%q) = %q (.%s)", tt.in, got, got.Extension())
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif: error = %v, want INVALID_FORMAT", err)
	}
}
