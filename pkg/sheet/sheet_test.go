package sheet

import (
	"testing"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

func TestParseBy(t *testing.T) {
	tests := []struct {
		in      string
		want    By
		wantErr bool
	}{
		{"", ByLayout, false},
		{"layout", ByLayout, false},
		{"scheme", ByScheme, false},
		{"emoji", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseBy(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseBy(%q) code = %s", tt.in, errors.GetCode(err))
		}
	}
}

func TestVariants(t *testing.T) {
	cfg := thumbnail.Config{Headline: "same text", Badge: "NEW"}

	byLayout, err := Variants(cfg, ByLayout)
	if err != nil {
		t.Fatal(err)
	}
	if len(byLayout) != len(thumbnail.Layouts) {
		t.Fatalf("got %d layout tiles", len(byLayout))
	}
	for i, tile := range byLayout {
		if tile.Config.Layout != thumbnail.Layouts[i] || tile.Label != string(thumbnail.Layouts[i]) {
			t.Errorf("tile %d = %q/%q", i, tile.Label, tile.Config.Layout)
		}
		if tile.Config.Scheme != thumbnail.Schemes[0] || tile.Config.Headline != "same text" {
			t.Errorf("tile %d changed more than the layout: %+v", i, tile.Config)
		}
	}

	byScheme, err := Variants(cfg.WithLayout(thumbnail.LayoutTopBanner), ByScheme)
	if err != nil {
		t.Fatal(err)
	}
	if len(byScheme) != len(thumbnail.Schemes) || byScheme[6].Label != "Dark Cinematic" {
		t.Errorf("scheme tiles = %d, label[6] = %q", len(byScheme), byScheme[6].Label)
	}
	for _, tile := range byScheme {
		if tile.Config.Layout != thumbnail.LayoutTopBanner {
			t.Errorf("scheme tile %q has layout %q", tile.Label, tile.Config.Layout)
		}
	}

	if _, err := Variants(cfg, "size"); err == nil {
		t.Error("unknown dimension should fail")
	}
}

func TestBuildGeometry(t *testing.T) {
	img, err := Build(nil, thumbnail.Config{Headline: "grid"}, Options{By: ByLayout, Columns: 2, TileWidth: 160, Gap: 10})
	if err != nil {
		t.Fatal(err)
	}
	// 5 tiles in 2 columns: 3 rows of 90px tiles plus labels.
	wantW := 10 + 2*(160+10)
	wantH := 10 + 3*(90+labelHeight+10)
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("sheet is %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}

	// Corner gap shows the sheet background; the tile area does not.
	if got := img.NRGBAAt(2, 2); got != sheetBackground {
		t.Errorf("gap pixel = %v, want background", got)
	}
	if got := img.NRGBAAt(10+80, 10+45); got == sheetBackground {
		t.Error("tile pixel shows the background")
	}
	// The sixth cell is empty.
	emptyX, emptyY := 10+170+80, 10+2*(90+labelHeight+10)+45
	if got := img.NRGBAAt(emptyX, emptyY); got != sheetBackground {
		t.Errorf("empty cell pixel = %v, want background", got)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.By != ByLayout || o.Columns != DefaultColumns || o.TileWidth != DefaultTileWidth || o.Gap != DefaultGap {
		t.Errorf("defaults = %+v", o)
	}
	if o.TileHeight() != 225 {
		t.Errorf("TileHeight() = %d, want 225", o.TileHeight())
	}
	if (Options{Gap: -1}).withDefaults().Gap != 0 {
		t.Error("negative gap should mean none")
	}

	img := Compose(nil, []Tile{{Label: "one", Config: thumbnail.Config{}}}, Options{TileWidth: 128, Gap: -1})
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 72+labelHeight {
		t.Errorf("edge-to-edge sheet is %dx%d", b.Dx(), b.Dy())
	}
}
