package thumbnail

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// monospace measures every rune as 0.5 em wide.
var monospace = MeasurerFunc(func(size float64) MeasureFunc {
	return func(s string) float64 { return float64(utf8.RuneCountInString(s)) * size / 2 }
})

func TestWrap(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) * 10 }
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"empty", "", 100, nil},
		{"blank", "   ", 100, nil},
		{"fits", "ONE TWO", 100, []string{"ONE TWO"}},
		{"exact fit", "ONE TWO", 70, []string{"ONE TWO"}},
		{"breaks", "ONE TWO THREE", 70, []string{"ONE TWO", "THREE"}},
		{"long word alone", "A SUPERCALIFRAGILISTIC B", 50, []string{"A", "SUPERCALIFRAGILISTIC", "B"}},
		{"collapses spaces", "ONE   TWO\tTHREE", 1000, []string{"ONE TWO THREE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.maxWidth, measure)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap(%q, %v) = %q, want %q", tt.text, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestFitNoShrinkWhenItFits(t *testing.T) {
	block := Fit("THIS CHANGES EVERYTHING", FitParams{BaseSize: 88, MaxWidth: 1088}, monospace)
	if block.Size != 88 {
		t.Errorf("Size = %v, want 88", block.Size)
	}
	if len(block.Lines) != 1 {
		t.Errorf("Lines = %q, want one line", block.Lines)
	}
	if !approx(block.LineHeight, 88*1.15) {
		t.Errorf("LineHeight = %v, want %v", block.LineHeight, 88*1.15)
	}
	if !approx(block.Height, block.LineHeight) {
		t.Errorf("Height = %v, want %v", block.Height, block.LineHeight)
	}
}

func TestFitShrinksToLineBudget(t *testing.T) {
	// Eight four-letter words: at 88px only two fit on a 500px line.
	text := "WORD WORD WORD WORD WORD WORD WORD WORD"
	block := Fit(text, FitParams{BaseSize: 88, MaxWidth: 500}, monospace)

	if block.Size >= 88 {
		t.Errorf("Size = %v, want below base 88", block.Size)
	}
	if block.Size != 68 || len(block.Lines) != 3 {
		t.Errorf("got %d lines at size %v; want 3 lines at 68", len(block.Lines), block.Size)
	}
	if got := strings.Join(block.Lines, " "); got != text {
		t.Errorf("lines rejoin to %q, want %q", got, text)
	}
	if !approx(block.Height, float64(len(block.Lines))*block.LineHeight) {
		t.Errorf("Height = %v, want lines × line height", block.Height)
	}
}

func TestFitStopsAtFloor(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("HEADLINE ", 20))
	tests := []struct {
		base float64
		want float64
	}{
		{88, 40},
		{86, 38},
		{82, 38},
		{78, 38},
		{76, 40},
	}
	for _, tt := range tests {
		block := Fit(text, FitParams{BaseSize: tt.base, MaxWidth: 640}, monospace)
		if block.Size != tt.want {
			t.Errorf("base %v: Size = %v, want %v", tt.base, block.Size, tt.want)
		}
		if len(block.Lines) <= 3 {
			t.Errorf("base %v: expected more than 3 lines past the floor, got %d", tt.base, len(block.Lines))
		}
	}
}

func TestFitCustomParams(t *testing.T) {
	text := "A B C D E F"
	// Each letter is 10px at size 20; a line holds "A B" (30px) at most.
	p := FitParams{BaseSize: 20, MaxWidth: 30, MinSize: 2, Step: 2, MaxLines: 2, LineHeightRatio: 1}
	block := Fit(text, p, monospace)
	if len(block.Lines) > 2 {
		t.Errorf("got %d lines, want at most 2", len(block.Lines))
	}
	if block.LineHeight != block.Size {
		t.Errorf("LineHeight = %v, want %v with ratio 1", block.LineHeight, block.Size)
	}
}

func TestFitStepSequence(t *testing.T) {
	tests := []struct {
		base float64
		want []float64
	}{
		{52, []float64{52, 48, 44, 40}},
		{78, []float64{78, 74, 70, 66, 62, 58, 54, 50, 46, 42, 38}},
		{42, []float64{42, 38}},
		{40, []float64{40}},
	}
	for _, tt := range tests {
		var sizes []float64
		m := MeasurerFunc(func(size float64) MeasureFunc {
			sizes = append(sizes, size)
			return func(string) float64 { return 1e9 }
		})
		block := Fit("A B C D", FitParams{BaseSize: tt.base, MaxWidth: 10}, m)

		if !reflect.DeepEqual(sizes, tt.want) {
			t.Errorf("base %v: tried sizes %v, want %v", tt.base, sizes, tt.want)
		}
		if last := tt.want[len(tt.want)-1]; block.Size != last {
			t.Errorf("base %v: Size = %v, want %v", tt.base, block.Size, last)
		}
	}
}
