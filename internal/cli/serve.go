package cli

import (
	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP rendering
// server until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var redisURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if redisURL != "" {
				cfg.Cache.Backend = "redis"
				cfg.Cache.RedisURL = redisURL
			}

			srv, err := server.New(cmd.Context(), cfg, c.Logger)
			if err != nil {
				return err
			}
			return srv.Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared result cache (overrides config)")

	return cmd
}
