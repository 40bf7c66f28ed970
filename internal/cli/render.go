package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/pipeline"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags configFlags
		out   outputFlags
	)

	cmd := &cobra.Command{
		Use:   "render [config.json|-]",
		Short: "Render a thumbnail from a config file or flags",
		Long: `Render a thumbnail from a JSON config, from flags, or both (flags win).

The config has the shape written by 'thumbforge analyze --json':

  {"headline": "This changes everything", "subtext": "Watch now",
   "badge": "NEW", "emojis": ["🔥"], "color_scheme": "Danger Red",
   "layout": "centered-impact"}

color_scheme may be a scheme name or a full object with custom colors.

Emojis are drawn with the font at render.emoji_font in the config file.
Without it they render as placeholder boxes.`,
		Example: `  thumbforge render --headline "This changes everything" --badge NEW --emoji 🔥
  thumbforge render config.json -o out/thumb.jpg
  thumbforge render config.json -f png,json -o out/thumb`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return c.renderAndWrite(cmd, cfg, &out)
		},
	}

	flags.register(cmd)
	out.register(cmd)
	return cmd
}

// renderAndWrite renders cfg in the requested formats and writes the files.
func (c *CLI) renderAndWrite(cmd *cobra.Command, cfg thumbnail.Config, out *outputFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	settings, err := c.config()
	if err != nil {
		return err
	}
	formats, err := out.parse(settings.Render.Format)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, out.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		Config:  &cfg,
		Formats: formats,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(out.output, formats, result.Artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))

	p := newPrinter(cmd)
	p.success("Rendered %s", StyleHeadline.Render(result.Config.HeadlineText()))
	for _, path := range paths {
		p.file(path)
	}
	p.renderStats(result.Config, result.CacheInfo.RenderHit)
	if len(result.Config.Emojis) > 0 && settings.Render.EmojiFont == "" {
		p.warning("Emojis drawn without an emoji font; set render.emoji_font in the config file")
	}
	return nil
}
