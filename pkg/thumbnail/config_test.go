package thumbnail

import (
	"encoding/json"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/matzehuels/thumbforge/pkg/errors"
)

func sampleConfig() Config {
	return Config{
		Headline: "This changes everything",
		Subtext:  "Watch now",
		Badge:    "New",
		Emojis:   []string{"🔥", "😱"},
		Scheme:   SchemeAt(0),
		Layout:   LayoutCenteredImpact,
	}
}

func TestConfigWithCopies(t *testing.T) {
	orig := sampleConfig()
	snapshot := orig.Clone()

	edited := orig.
		WithHeadline("Other").
		WithSubtext("").
		WithBadge("Live").
		WithEmojis("💯").
		WithScheme(SchemeAt(3)).
		WithLayout(LayoutTopBanner)

	if !reflect.DeepEqual(orig, snapshot) {
		t.Errorf("receiver changed: %+v", orig)
	}
	if edited.Headline != "Other" || edited.Subtext != "" || edited.Badge != "Live" {
		t.Errorf("text edits not applied: %+v", edited)
	}
	if !reflect.DeepEqual(edited.Emojis, []string{"💯"}) {
		t.Errorf("Emojis = %q", edited.Emojis)
	}
	if edited.Scheme.Name != "Royal Purple" || edited.Layout != LayoutTopBanner {
		t.Errorf("scheme/layout edits not applied: %s %s", edited.Scheme.Name, edited.Layout)
	}
}

func TestConfigCloneDoesNotAlias(t *testing.T) {
	orig := sampleConfig()
	c := orig.Clone()
	c.Emojis[0] = "X"
	if orig.Emojis[0] != "🔥" {
		t.Error("Clone shares the emoji slice")
	}

	emojis := []string{"A"}
	w := orig.WithEmojis(emojis...)
	emojis[0] = "B"
	if w.Emojis[0] != "A" {
		t.Error("WithEmojis kept a reference to the caller's slice")
	}
}

func TestConfigNormalize(t *testing.T) {
	c := Config{Headline: "hi", Layout: "nope"}.Normalize()
	if c.Scheme != Schemes[0] {
		t.Errorf("Scheme = %q, want %q", c.Scheme.Name, Schemes[0].Name)
	}
	if c.Layout != LayoutCenteredImpact {
		t.Errorf("Layout = %q, want %q", c.Layout, LayoutCenteredImpact)
	}
	if c.Headline != "hi" {
		t.Errorf("Normalize must not touch text, got %q", c.Headline)
	}

	custom := Config{Scheme: SchemeAt(5), Layout: LayoutCornerBurst}.Normalize()
	if custom.Scheme != Schemes[5] || custom.Layout != LayoutCornerBurst {
		t.Error("Normalize replaced valid fields")
	}
}

func TestConfigHeadlineText(t *testing.T) {
	if got := (Config{}).HeadlineText(); got != DefaultHeadline {
		t.Errorf("empty headline = %q, want %q", got, DefaultHeadline)
	}
	if got := (Config{Headline: "Straße test"}).HeadlineText(); got != "STRASSE TEST" && got != "STRAßE TEST" {
		t.Errorf("HeadlineText() = %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		code errors.Code
	}{
		{"ok", sampleConfig(), ""},
		{"empty", Config{}, ""},
		{"bad layout", Config{Layout: "spiral"}, errors.ErrCodeInvalidLayout},
		{"control char", Config{Badge: "a\nb"}, errors.ErrCodeInvalidConfig},
		{"too many emojis", Config{Emojis: make([]string, 9)}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q (%v), want %q", got, err, tt.code)
			}
		})
	}
}

func TestConfigShuffleKeepsText(t *testing.T) {
	orig := sampleConfig()
	rng := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		s := orig.Shuffle(rng)
		if s.Headline != orig.Headline || s.Subtext != orig.Subtext || s.Badge != orig.Badge {
			t.Fatalf("shuffle changed text: %+v", s)
		}
		if !reflect.DeepEqual(s.Emojis, orig.Emojis) {
			t.Fatalf("shuffle changed emojis: %q", s.Emojis)
		}
		if SchemeIndex(s.Scheme) < 0 || !s.Layout.Valid() {
			t.Fatalf("shuffle produced %q / %q", s.Scheme.Name, s.Layout)
		}
	}
}

func TestConfigShuffleCoversTables(t *testing.T) {
	rng := NewRand(42)
	schemes := make(map[string]bool)
	layouts := make(map[Layout]bool)
	for range 500 {
		s := sampleConfig().Shuffle(rng)
		schemes[s.Scheme.Name] = true
		layouts[s.Layout] = true
	}
	if len(schemes) != len(Schemes) || len(layouts) != len(Layouts) {
		t.Errorf("shuffle reached %d schemes and %d layouts", len(schemes), len(layouts))
	}
}

func TestConfigShuffleSeeded(t *testing.T) {
	a := sampleConfig().Shuffle(NewRand(7))
	b := sampleConfig().Shuffle(NewRand(7))
	if a.Scheme != b.Scheme || a.Layout != b.Layout {
		t.Error("same seed should give the same shuffle")
	}
	if NewRand(0) != nil {
		t.Error("seed 0 should select the global source")
	}
	_ = sampleConfig().Shuffle(nil)
}

func TestConfigJSON(t *testing.T) {
	in := `{
		"headline": "This changes everything",
		"subtext": "Watch now",
		"badge": "New",
		"emojis": ["🔥"],
		"color_scheme": "Danger Red",
		"layout": "centered-impact"
	}`
	var c Config
	if err := json.Unmarshal([]byte(in), &c); err != nil {
		t.Fatal(err)
	}
	if c.Scheme != Schemes[0] || c.Layout != LayoutCenteredImpact || c.Badge != "New" {
		t.Errorf("decoded %+v", c)
	}
}
