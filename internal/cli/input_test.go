package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"headline":"Big news","color_scheme":"Fresh Teal","layout":"top-banner"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"headline":`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		stdin    string
		wantCode errors.Code
		want     string
	}{
		{name: "no path", path: "", want: ""},
		{name: "file", path: good, want: "Big news"},
		{name: "stdin", path: "-", stdin: `{"headline":"From pipe"}`, want: "From pipe"},
		{name: "missing file", path: filepath.Join(dir, "nope.json"), wantCode: errors.ErrCodeNotFound},
		{name: "broken json", path: bad, wantCode: errors.ErrCodeInvalidInput},
		{name: "unknown scheme", path: "-", stdin: `{"color_scheme":"Neon Void"}`, wantCode: errors.ErrCodeInvalidScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := readConfig(tt.path, strings.NewReader(tt.stdin))
			if tt.wantCode != "" {
				if got := errors.GetCode(err); got != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("readConfig: %v", err)
			}
			if cfg.Headline != tt.want {
				t.Errorf("Headline = %q, want %q", cfg.Headline, tt.want)
			}
		})
	}
}

func TestReadConfigDecodesSchemeAndLayout(t *testing.T) {
	cfg, err := readConfig("-", strings.NewReader(`{"color_scheme":"fresh teal","layout":"top-banner"}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scheme.Name != "Fresh Teal" || cfg.Layout != thumbnail.LayoutTopBanner {
		t.Errorf("got %q / %q", cfg.Scheme.Name, cfg.Layout)
	}
}

func TestReadScript(t *testing.T) {
	got, err := readScript("", strings.NewReader("today we test"))
	if err != nil || got != "today we test" {
		t.Fatalf("readScript(stdin) = %q, %v", got, err)
	}
	if _, err := readScript(filepath.Join(t.TempDir(), "none.txt"), nil); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing script error = %v, want NOT_FOUND", err)
	}
}

func newFlagsCommand(flags *configFlags, args ...string) (*cobra.Command, error) {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	flags.register(cmd)
	return cmd, cmd.ParseFlags(args)
}

func TestConfigFlagsApply(t *testing.T) {
	base := thumbnail.Config{Headline: "From file", Badge: "OLD", Layout: thumbnail.LayoutBottomHeavy}

	tests := []struct {
		name     string
		args     []string
		check    func(t *testing.T, cfg thumbnail.Config)
		wantCode errors.Code
	}{
		{
			name: "unset flags keep the file",
			args: nil,
			check: func(t *testing.T, cfg thumbnail.Config) {
				if cfg.Headline != "From file" || cfg.Badge != "OLD" || cfg.Layout != thumbnail.LayoutBottomHeavy {
					t.Errorf("config changed: %+v", cfg)
				}
			},
		},
		{
			name: "empty badge clears it",
			args: []string{"--badge", ""},
			check: func(t *testing.T, cfg thumbnail.Config) {
				if cfg.Badge != "" {
					t.Errorf("Badge = %q, want empty", cfg.Badge)
				}
			},
		},
		{
			name: "scheme by index and layout by tag",
			args: []string{"--scheme", "3", "--layout", "corner-burst", "--headline", "New"},
			check: func(t *testing.T, cfg thumbnail.Config) {
				if cfg.Scheme.Name != "Royal Purple" || cfg.Layout != thumbnail.LayoutCornerBurst || cfg.Headline != "New" {
					t.Errorf("got %q / %q / %q", cfg.Scheme.Name, cfg.Layout, cfg.Headline)
				}
			},
		},
		{
			name: "repeatable emoji",
			args: []string{"--emoji", "🔥", "--emoji", "🚀"},
			check: func(t *testing.T, cfg thumbnail.Config) {
				if !slices.Equal(cfg.Emojis, []string{"🔥", "🚀"}) {
					t.Errorf("Emojis = %v", cfg.Emojis)
				}
			},
		},
		{name: "unknown scheme", args: []string{"--scheme", "Mauve"}, wantCode: errors.ErrCodeInvalidScheme},
		{name: "layout out of range", args: []string{"--layout", "9"}, wantCode: errors.ErrCodeInvalidLayout},
		{name: "headline too long", args: []string{"--headline", strings.Repeat("x", errors.MaxTextLength+1)}, wantCode: errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags configFlags
			cmd, err := newFlagsCommand(&flags, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			cfg, err := flags.apply(cmd, base)
			if tt.wantCode != "" {
				if got := errors.GetCode(err); got != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", got, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestOutputFlagsParse(t *testing.T) {
	tests := []struct {
		name     string
		out      outputFlags
		fallback string
		want     []thumbnail.Format
	}{
		{"fallback", outputFlags{}, "png", []thumbnail.Format{thumbnail.FormatPNG}},
		{"extension decides", outputFlags{output: "out/thumb.jpg"}, "png", []thumbnail.Format{thumbnail.FormatJPEG}},
		{"unknown extension falls back", outputFlags{output: "thumb.webp"}, "png", []thumbnail.Format{thumbnail.FormatPNG}},
		{"explicit formats win", outputFlags{output: "thumb.jpg", formats: "png,json"}, "png", []thumbnail.Format{thumbnail.FormatPNG, thumbnail.FormatJSON}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.out.parse(tt.fallback)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("parse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output   string
		format   thumbnail.Format
		multiple bool
		want     string
	}{
		{"", thumbnail.FormatPNG, false, "thumbnail.png"},
		{"", thumbnail.FormatJPEG, true, "thumbnail.jpg"},
		{"out/cover.png", thumbnail.FormatPNG, false, "out/cover.png"},
		{"out/cover.png", thumbnail.FormatJSON, true, "out/cover.json"},
		{"cover", thumbnail.FormatJPEG, false, "cover.jpg"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.output, tt.format, tt.multiple); got != tt.want {
			t.Errorf("outputPath(%q, %s, %v) = %q, want %q", tt.output, tt.format, tt.multiple, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "thumb")
	formats := []thumbnail.Format{thumbnail.FormatPNG, thumbnail.FormatJSON}
	artifacts := map[thumbnail.Format][]byte{
		thumbnail.FormatPNG:  []byte("png-bytes"),
		thumbnail.FormatJSON: []byte("{}"),
	}

	paths, err := writeArtifacts(base, formats, artifacts)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{base + ".png", base + ".json"}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(want[0])
	if err != nil || string(data) != "png-bytes" {
		t.Errorf("png file = %q, %v", data, err)
	}
}
