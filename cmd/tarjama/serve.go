package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/FaizanAhmed099/tarjama/internal/httpapi"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(global *globalFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if port == 0 {
				port = a.cfg.Server.Port
			}
			gin.SetMode(a.cfg.Server.Mode)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.New(a.translator, httpapi.WithLogger(a.logger))
			return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (overrides server.port)")
	return cmd
}
