package thumbnail

import (
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/matzehuels/thumbforge/pkg/errors"
)

// DefaultHeadline is drawn when a config has no headline.
const DefaultHeadline = "YOUR VIDEO TITLE"

// Config describes what to draw. It is a value type: the With* methods and
// Shuffle return modified copies and never touch the receiver.
type Config struct {
	Headline string      `json:"headline"`
	Subtext  string      `json:"subtext,omitempty"`
	Badge    string      `json:"badge,omitempty"`
	Emojis   []string    `json:"emojis,omitempty"`
	Scheme   ColorScheme `json:"color_scheme"`
	Layout   Layout      `json:"layout"`
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	c.Emojis = slices.Clone(c.Emojis)
	return c
}

// WithHeadline returns a copy of c with the headline replaced.
func (c Config) WithHeadline(s string) Config {
	c = c.Clone()
	c.Headline = s
	return c
}

// WithSubtext returns a copy of c with the subtext replaced.
func (c Config) WithSubtext(s string) Config {
	c = c.Clone()
	c.Subtext = s
	return c
}

// WithBadge returns a copy of c with the badge replaced.
func (c Config) WithBadge(s string) Config {
	c = c.Clone()
	c.Badge = s
	return c
}

// WithEmojis returns a copy of c with the emoji list replaced.
func (c Config) WithEmojis(emojis ...string) Config {
	c.Emojis = slices.Clone(emojis)
	return c
}

// WithScheme returns a copy of c with the color scheme replaced.
func (c Config) WithScheme(s ColorScheme) Config {
	c = c.Clone()
	c.Scheme = s
	return c
}

// WithLayout returns a copy of c with the layout replaced.
func (c Config) WithLayout(l Layout) Config {
	c = c.Clone()
	c.Layout = l
	return c
}

// Normalize resolves defaults: a zero scheme becomes Schemes[0] and an empty
// or unknown layout becomes the first layout. Text fields are left alone so
// the background seed still sees the raw headline.
func (c Config) Normalize() Config {
	c = c.Clone()
	if c.Scheme.IsZero() {
		c.Scheme = Schemes[0]
	}
	if !c.Layout.Valid() {
		c.Layout = Layouts[0]
	}
	return c
}

// Validate checks the text fields against the API limits.
func (c Config) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"headline", c.Headline},
		{"subtext", c.Subtext},
		{"badge", c.Badge},
	} {
		if err := errors.ValidateText(f.name, f.value); err != nil {
			return err
		}
	}
	if err := errors.ValidateEmojis(c.Emojis); err != nil {
		return err
	}
	if c.Layout != "" && !c.Layout.Valid() {
		return errors.New(errors.ErrCodeInvalidLayout, "unknown layout: %q", c.Layout)
	}
	return nil
}

// HeadlineText is the headline as drawn: upper-cased, or the default.
func (c Config) HeadlineText() string {
	if c.Headline == "" {
		return DefaultHeadline
	}
	return strings.ToUpper(c.Headline)
}

// Shuffle returns a copy of c with scheme and layout drawn independently
// and uniformly from the fixed tables. Text fields are untouched. A nil rng
// uses the global source.
func (c Config) Shuffle(rng *rand.Rand) Config {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	c = c.Clone()
	c.Scheme = Schemes[intN(len(Schemes))]
	c.Layout = Layouts[intN(len(Layouts))]
	return c
}

// NewRand returns a deterministic generator for Shuffle. Seed zero draws
// from the global source instead.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
