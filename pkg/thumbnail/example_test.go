package thumbnail_test

import (
	"fmt"
	"unicode/utf8"

	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

func ExampleSchemeAt() {
	s := thumbnail.SchemeAt(3)
	fmt.Println(s.Name, s.Accent.Hex())
	fmt.Println(thumbnail.SchemeAt(42).Name)
	// Output:
	// Royal Purple #ffd700
	// Danger Red
}

func ExampleBlobs() {
	seed := thumbnail.Seed("THIS CHANGES EVERYTHING")
	b := thumbnail.Blobs(seed)[0]
	fmt.Printf("seed=%d first blob at (%.1f, %.1f) r=%.0f\n", seed, b.X, b.Y, b.R)
	// Output:
	// seed=23 first blob at (193.3, 556.6) r=127
}

func ExampleFit() {
	// A toy measurer: every character is half a font size wide.
	measure := thumbnail.MeasurerFunc(func(size float64) thumbnail.MeasureFunc {
		return func(s string) float64 { return float64(utf8.RuneCountInString(s)) * size / 2 }
	})
	block := thumbnail.Fit("WORD WORD WORD WORD WORD WORD WORD WORD", thumbnail.FitParams{
		BaseSize: 88,
		MaxWidth: 500,
	}, measure)
	fmt.Println(block.Size, len(block.Lines))
	for _, l := range block.Lines {
		fmt.Println(l)
	}
	// Output:
	// 68 3
	// WORD WORD WORD
	// WORD WORD WORD
	// WORD WORD
}

func ExampleConfig_Shuffle() {
	cfg := thumbnail.Config{Headline: "Same words, new look"}
	shuffled := cfg.Shuffle(thumbnail.NewRand(7))
	fmt.Println(shuffled.Headline)
	fmt.Println(shuffled.Layout.Valid(), thumbnail.SchemeIndex(shuffled.Scheme) >= 0)
	// Output:
	// Same words, new look
	// true true
}
