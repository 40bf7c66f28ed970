package thumbnail

import (
	"reflect"
	"testing"
)

func TestSeed(t *testing.T) {
	tests := []struct {
		headline string
		want     int
	}{
		{"", 0},
		{"THIS CHANGES EVERYTHING", 23},
		{"this changes everything", 23},
		{"Größe", 5},
		{"🔥🔥", 2},
	}
	for _, tt := range tests {
		if got := Seed(tt.headline); got != tt.want {
			t.Errorf("Seed(%q) = %d, want %d", tt.headline, got, tt.want)
		}
	}
}

func TestBlobs(t *testing.T) {
	blobs := Blobs(23)
	if len(blobs) != BlobCount {
		t.Fatalf("len = %d, want %d", len(blobs), BlobCount)
	}

	// i = 1: (23·137 + 311) mod 1000 = 462, (23·251 + 173) mod 1000 = 946,
	// 80 + (23·89 + 53) mod 200 = 80 + 100.
	want := Blob{X: 0.462 * Width, Y: 0.946 * Height, R: 180}
	got := blobs[1]
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) || got.R != want.R {
		t.Errorf("Blobs(23)[1] = %+v, want %+v", got, want)
	}

	zero := Blobs(0)[0]
	if zero != (Blob{X: 0, Y: 0, R: 80}) {
		t.Errorf("Blobs(0)[0] = %+v, want origin with radius 80", zero)
	}
}

func TestBlobsDeterministic(t *testing.T) {
	if !reflect.DeepEqual(Blobs(17), Blobs(17)) {
		t.Error("Blobs must be a pure function of the seed")
	}
	if reflect.DeepEqual(Blobs(17), Blobs(18)) {
		t.Error("different seeds should move the blobs")
	}
}

func TestBlobsStayInBounds(t *testing.T) {
	for seed := range 300 {
		for i, b := range Blobs(seed) {
			if b.X < 0 || b.X >= Width || b.Y < 0 || b.Y >= Height {
				t.Fatalf("Blobs(%d)[%d] center (%v, %v) off canvas", seed, i, b.X, b.Y)
			}
			if b.R < 80 || b.R >= 280 {
				t.Fatalf("Blobs(%d)[%d] radius %v outside [80, 280)", seed, i, b.R)
			}
		}
	}
}
