package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

func (c *CLI) shuffleCommand() *cobra.Command {
	var (
		flags  configFlags
		out    outputFlags
		seed   uint64
		render bool
	)

	cmd := &cobra.Command{
		Use:   "shuffle [config.json|-]",
		Short: "Re-roll the color scheme and layout of a config",
		Long: `Pick a new color scheme and layout for a config and print it as JSON.
Text and emojis are kept. The same --seed always gives the same result.`,
		Example: `  thumbforge shuffle config.json --seed 42 > shuffled.json
  thumbforge shuffle --headline "Top 10 tricks" --render`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd, args)
			if err != nil {
				return err
			}
			cfg = cfg.Shuffle(thumbnail.NewRand(seed))
			loggerFromContext(cmd.Context()).Debug("shuffled", "scheme", cfg.Scheme.Name, "layout", cfg.Layout, "seed", seed)

			if render {
				return c.renderAndWrite(cmd, cfg, &out)
			}
			return writeConfigJSON(cmd.OutOrStdout(), cfg)
		},
	}

	flags.register(cmd)
	out.register(cmd)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "shuffle seed (0 picks one at random)")
	cmd.Flags().BoolVar(&render, "render", false, "render the shuffled config instead of printing it")
	return cmd
}
