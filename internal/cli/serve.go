package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/thumbforge/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the render, analyze and shuffle endpoints over HTTP until interrupted.

Other thumbforge installations can use this server as their analyzer with
provider = "proxy" and base_url pointing here, so only the server needs an API key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()
			if runner.Analyzer == nil {
				newPrinter(cmd).warning("No analyzer credential configured; /api/v1/analyze will answer 503")
			}

			srv := server.New(server.Options{
				Runner:       runner,
				Logger:       loggerFromContext(ctx),
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				ReadTimeout:  cfg.Server.ReadTimeout.Duration,
				WriteTimeout: cfg.Server.WriteTimeout.Duration,
			})
			newPrinter(cmd).info("Serving on %s", StyleLink.Render(displayAddr(addr)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// displayAddr turns ":8080" into a clickable URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
