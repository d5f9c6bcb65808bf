package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symcanon/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the canonicalizer and its tools over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.canon, a.logger)
			return srv.ListenAndServe(ctx, addr, server.Timeouts{
				Read:  a.cfg.Server.ReadTimeout,
				Write: a.cfg.Server.WriteTimeout,
				Idle:  a.cfg.Server.IdleTimeout,
			})
		},
	}
	c.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from the configuration)")
	return c
}
