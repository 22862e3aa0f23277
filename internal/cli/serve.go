package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfectmaze/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the maze HTTP API",
		Long: `Serve the maze HTTP API until interrupted.

  POST /api/v1/mazes              generate and store a maze
  GET  /api/v1/mazes              recent mazes
  GET  /api/v1/mazes/{id}         one maze
  GET  /api/v1/mazes/{id}/render  render a stored maze`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			c.Logger.Info("serving", "store", c.Config.Store.Backend, "cache", c.Config.Cache.Backend)
			return server.New(runner, st, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
