package thumbnail

import "strings"

// MeasureFunc returns the rendered width of s in pixels.
type MeasureFunc func(s string) float64

// Measurer builds a MeasureFunc for a font size.
type Measurer interface {
	Measure(size float64) MeasureFunc
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(size float64) MeasureFunc

// Measure implements Measurer.
func (f MeasurerFunc) Measure(size float64) MeasureFunc { return f(size) }

// FitParams tunes the auto-fit loop. The zero value of any field falls back
// to DefaultFit.
type FitParams struct {
	BaseSize        float64
	MaxWidth        float64
	MinSize         float64
	Step            float64
	MaxLines        int
	LineHeightRatio float64
}

// DefaultFit holds the tuning constants of the headline auto-fit.
var DefaultFit = FitParams{
	MinSize:         40,
	Step:            4,
	MaxLines:        3,
	LineHeightRatio: 1.15,
}

func (p FitParams) withDefaults() FitParams {
	if p.MinSize <= 0 {
		p.MinSize = DefaultFit.MinSize
	}
	if p.Step <= 0 {
		p.Step = DefaultFit.Step
	}
	if p.MaxLines <= 0 {
		p.MaxLines = DefaultFit.MaxLines
	}
	if p.LineHeightRatio <= 0 {
		p.LineHeightRatio = DefaultFit.LineHeightRatio
	}
	return p
}

// TextBlock is the resolved layout of a wrapped headline.
type TextBlock struct {
	Size       float64  `json:"size"`
	Lines      []string `json:"lines"`
	LineHeight float64  `json:"line_height"`
	Height     float64  `json:"height"`
}

// Wrap packs the whitespace-separated words of text into lines no wider than
// maxWidth. A word wider than maxWidth gets a line of its own; words are
// never split.
func Wrap(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// Fit wraps text at p.BaseSize and shrinks the size by p.Step while the
// block has more than p.MaxLines lines and the size is above p.MinSize.
// The step is never shortened, so a base size that is not MinSize plus a
// multiple of Step ends below MinSize (78 ends at 38 with the defaults).
// Too many lines at that point are accepted.
func Fit(text string, p FitParams, m Measurer) TextBlock {
	p = p.withDefaults()
	size := p.BaseSize
	lines := Wrap(text, p.MaxWidth, m.Measure(size))
	for len(lines) > p.MaxLines && size > p.MinSize {
		size -= p.Step
		lines = Wrap(text, p.MaxWidth, m.Measure(size))
	}
	lh := size * p.LineHeightRatio
	return TextBlock{
		Size:       size,
		Lines:      lines,
		LineHeight: lh,
		Height:     float64(len(lines)) * lh,
	}
}
