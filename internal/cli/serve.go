package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trig29/Flowchart-Json-Editor/internal/server"
)

// newServeCmd creates the serve command that runs the document HTTP API
// over the configured store backend.
func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the document HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			st, err := openStore(ctx, cfg.Store)
			if err != nil {
				return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
			}
			defer st.Close()

			addr := cfg.Listen
			if listen != "" {
				addr = listen
			}

			logger.Info("starting server", "backend", cfg.Store.Backend)
			return server.New(st, logger).ListenAndServe(addr)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (overrides config)")
	return cmd
}
