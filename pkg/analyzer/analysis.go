package analyzer

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

// Analysis is what a model proposes for a script. Indices refer to
// [thumbnail.Schemes] and [thumbnail.Layouts] and are not range-checked
// until [Analysis.Config].
type Analysis struct {
	Headline         string   `json:"headline"`
	Subtext          string   `json:"subtext"`
	Badge            string   `json:"badge"`
	Emojis           []string `json:"emojis"`
	ColorSchemeIndex Index    `json:"colorSchemeIndex"`
	LayoutIndex      Index    `json:"layoutIndex"`
	Reasoning        string   `json:"reasoning"`
}

// Config converts the analysis into a render configuration. Out-of-range
// indices fall back to the first scheme and layout.
func (a *Analysis) Config() thumbnail.Config {
	return thumbnail.Config{
		Headline: strings.TrimSpace(a.Headline),
		Subtext:  strings.TrimSpace(a.Subtext),
		Badge:    strings.TrimSpace(a.Badge),
		Emojis:   cleanEmojis(a.Emojis),
		Scheme:   thumbnail.SchemeAt(int(a.ColorSchemeIndex)),
		Layout:   thumbnail.LayoutAt(int(a.LayoutIndex)),
	}
}

func cleanEmojis(in []string) []string {
	var out []string
	for _, e := range in {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Index is a table index as models write it. It decodes from a number, a
// numeric string or a float (truncated); anything else, including null,
// decodes to 0 rather than failing the whole analysis.
type Index int

// UnmarshalJSON implements json.Unmarshaler.
func (i *Index) UnmarshalJSON(data []byte) error {
	*i = 0
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return nil
	}
	*i = Index(int(f))
	return nil
}

// FromConfig is the inverse of Config for table schemes and layouts. A
// custom scheme maps to index 0.
func FromConfig(cfg thumbnail.Config, reasoning string) *Analysis {
	return &Analysis{
		Headline:         cfg.Headline,
		Subtext:          cfg.Subtext,
		Badge:            cfg.Badge,
		Emojis:           cfg.Emojis,
		ColorSchemeIndex: Index(max(thumbnail.SchemeIndex(cfg.Scheme), 0)),
		LayoutIndex:      Index(max(cfg.Layout.Index(), 0)),
		Reasoning:        reasoning,
	}
}
