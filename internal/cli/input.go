package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/pipeline"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

// defaultOutput is the file name stem used when -o is not given.
const defaultOutput = "thumbnail"

// =============================================================================
// Config Input
// =============================================================================

// readConfig decodes a config from path. An empty path yields the zero
// config and "-" reads from stdin.
func readConfig(path string, stdin io.Reader) (thumbnail.Config, error) {
	var cfg thumbnail.Config
	if path == "" {
		return cfg, nil
	}
	data, err := readInput(path, stdin)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		if errors.GetCode(err) != "" {
			return cfg, err
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config %s", displayName(path))
	}
	return cfg, nil
}

// readScript reads a video script from path, or from stdin when path is
// empty or "-".
func readScript(path string, stdin io.Reader) (string, error) {
	if path == "" {
		path = "-"
	}
	data, err := readInput(path, stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}

func displayName(path string) string {
	if path == "-" {
		return "from stdin"
	}
	return path
}

func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// =============================================================================
// Config Flags
// =============================================================================

// configFlags edit a config from the command line. Only flags the user
// actually set override the file.
type configFlags struct {
	headline string
	subtext  string
	badge    string
	emojis   []string
	scheme   string
	layout   string
}

func (f *configFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.headline, "headline", "", "headline text")
	fs.StringVar(&f.subtext, "subtext", "", "subtext shown in a pill under the headline")
	fs.StringVar(&f.badge, "badge", "", "short badge in the corner, e.g. NEW")
	fs.StringArrayVar(&f.emojis, "emoji", nil, "emoji to place (repeatable)")
	fs.StringVar(&f.scheme, "scheme", "", "color scheme name or index (see 'thumbforge schemes')")
	fs.StringVar(&f.layout, "layout", "", "layout tag or index (see 'thumbforge layouts')")
}

// apply returns cfg with the set flags applied.
func (f *configFlags) apply(cmd *cobra.Command, cfg thumbnail.Config) (thumbnail.Config, error) {
	changed := cmd.Flags().Changed
	if changed("headline") {
		cfg = cfg.WithHeadline(f.headline)
	}
	if changed("subtext") {
		cfg = cfg.WithSubtext(f.subtext)
	}
	if changed("badge") {
		cfg = cfg.WithBadge(f.badge)
	}
	if changed("emoji") {
		cfg = cfg.WithEmojis(f.emojis...)
	}
	if changed("scheme") {
		s, err := thumbnail.SchemeByName(f.scheme)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.WithScheme(s)
	}
	if changed("layout") {
		l, err := thumbnail.ParseLayout(f.layout)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.WithLayout(l)
	}
	return cfg, cfg.Validate()
}

// loadConfig combines the optional config argument with the flags.
func (f *configFlags) loadConfig(cmd *cobra.Command, args []string) (thumbnail.Config, error) {
	cfg, err := readConfig(argOrEmpty(args), cmd.InOrStdin())
	if err != nil {
		return cfg, err
	}
	return f.apply(cmd, cfg)
}

// =============================================================================
// Output
// =============================================================================

// writeConfigJSON writes cfg as indented JSON that render accepts back.
func writeConfigJSON(w io.Writer, cfg thumbnail.Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(cfg)
}

// outputFlags select the formats and destination of a render.
type outputFlags struct {
	output  string
	formats string
	noCache bool
}

func (o *outputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&o.output, "output", "o", "", "output file (default thumbnail.<ext>)")
	fs.StringVarP(&o.formats, "format", "f", "", "output formats: png, jpeg, json (comma separated; default from config)")
	fs.BoolVar(&o.noCache, "no-cache", false, "disable caching")
}

// parse resolves the formats. Without -f the output extension decides,
// then the configured default.
func (o *outputFlags) parse(fallback string) ([]thumbnail.Format, error) {
	if o.formats != "" {
		return pipeline.ParseFormats(o.formats)
	}
	if ext := strings.TrimPrefix(filepath.Ext(o.output), "."); ext != "" {
		if f, err := thumbnail.ParseFormat(ext); err == nil {
			return []thumbnail.Format{f}, nil
		}
	}
	return pipeline.ParseFormats(fallback)
}

// outputPath derives the file for format f. A single format keeps an
// explicit extension; several formats replace it with their own.
func outputPath(output string, f thumbnail.Format, multiple bool) string {
	if output == "" {
		output = defaultOutput
	}
	ext := filepath.Ext(output)
	if ext != "" && !multiple {
		return output
	}
	return strings.TrimSuffix(output, ext) + "." + f.Extension()
}

// writeArtifacts writes each rendered format and returns the paths in
// format order.
func writeArtifacts(output string, formats []thumbnail.Format, artifacts map[thumbnail.Format][]byte) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := outputPath(output, f, len(formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
