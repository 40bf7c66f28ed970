package thumbnail

import "unicode/utf8"

// BlobCount is the number of decorative blobs behind every thumbnail.
const BlobCount = 14

// BlobOpacity is the opacity the blobs are composited at.
const BlobOpacity = 0.08

// Blob is a soft radial accent spot.
type Blob struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Seed derives the background seed from the raw headline: its length in
// characters. Edits that keep the length keep the background.
func Seed(headline string) int {
	return utf8.RuneCountInString(headline)
}

// Blobs computes the blob field for seed with plain modular arithmetic so
// the same seed always yields the same field.
func Blobs(seed int) []Blob {
	blobs := make([]Blob, BlobCount)
	for i := range blobs {
		blobs[i] = Blob{
			X: float64((seed*137+i*311)%1000) / 1000 * Width,
			Y: float64((seed*251+i*173)%1000) / 1000 * Height,
			R: float64(80 + (seed*89+i*53)%200),
		}
	}
	return blobs
}
