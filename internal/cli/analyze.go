package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/analyzer"
	"github.com/matzehuels/thumbforge/pkg/errors"
	"github.com/matzehuels/thumbforge/pkg/pipeline"
	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		out     outputFlags
		asJSON  bool
		render  bool
		shuffle bool
		seed    uint64
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [script-file|-]",
		Short: "Generate a thumbnail config from a video script",
		Long: `Send a video script to the configured analyzer and print the proposed
headline, subtext, badge, emojis, color scheme and layout.

The script is read from the file argument, or from stdin when the argument is
"-" or missing. Results are cached per provider, model and script.`,
		Example: `  thumbforge analyze script.txt
  thumbforge analyze script.txt --json > config.json
  cat script.txt | thumbforge analyze --render -o thumb.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			script, err := readScript(argOrEmpty(args), cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := errors.ValidateScript(script); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, out.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			if runner.Analyzer == nil {
				return errors.New(errors.ErrCodeMisconfigured, "no analyzer credential configured")
			}

			opts := pipeline.Options{
				Script:  script,
				Shuffle: shuffle,
				Seed:    seed,
				Refresh: refresh,
				Logger:  logger,
			}

			spin := newSpinner(ctx, cmd.ErrOrStderr(),
				fmt.Sprintf("Analyzing script with %s (%s)...", runner.Analyzer.Provider(), runner.Analyzer.Model()))
			spin.Start()

			if render {
				settings, err := c.config()
				if err != nil {
					spin.Stop()
					return err
				}
				if opts.Formats, err = out.parse(settings.Render.Format); err != nil {
					spin.Stop()
					return err
				}
				result, err := runner.Execute(ctx, opts)
				spin.Stop()
				if err != nil {
					return err
				}
				if err := printAnalysis(cmd.OutOrStdout(), result.Analysis, result.Config, asJSON); err != nil {
					return err
				}
				paths, err := writeArtifacts(out.output, opts.Formats, result.Artifacts)
				if err != nil {
					return err
				}
				for _, path := range paths {
					newPrinter(cmd).file(path)
				}
				return nil
			}

			a, hit, err := runner.AnalyzeWithCacheInfo(ctx, opts)
			spin.Stop()
			if err != nil {
				return err
			}
			cfg := a.Config()
			if shuffle {
				cfg = cfg.Shuffle(thumbnail.NewRand(seed))
			}
			logger.Debug("analysis ready", "cached", hit)
			if err := printAnalysis(cmd.OutOrStdout(), a, cfg.Normalize(), asJSON); err != nil {
				return err
			}
			if !asJSON {
				newPrinter(cmd).nextStep("Render it with", "thumbforge analyze --render "+argOrEmpty(args))
			}
			return nil
		},
	}

	out.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the config as JSON")
	cmd.Flags().BoolVar(&render, "render", false, "also render the thumbnail")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "re-roll scheme and layout after analysis")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed (0 picks one at random)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cached analysis")
	return cmd
}

// printAnalysis prints the config as JSON, or as a summary with the
// model's reasoning.
func printAnalysis(w io.Writer, a *analyzer.Analysis, cfg thumbnail.Config, asJSON bool) error {
	if asJSON {
		return writeConfigJSON(w, cfg)
	}
	p := printer{w: w}
	p.keyValue("Headline", StyleHeadline.Render(cfg.Headline))
	if cfg.Subtext != "" {
		p.keyValue("Subtext", cfg.Subtext)
	}
	if cfg.Badge != "" {
		p.keyValue("Badge", cfg.Badge)
	}
	if len(cfg.Emojis) > 0 {
		p.keyValue("Emojis", strings.Join(cfg.Emojis, " "))
	}
	p.keyValue("Scheme", StyleHighlight.Render(cfg.Scheme.Name))
	p.keyValue("Layout", StyleHighlight.Render(string(cfg.Layout)))
	if a != nil && a.Reasoning != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleDim.Render(a.Reasoning))
	}
	return nil
}
