package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/justrob12/seclab/internal/app"
	"github.com/justrob12/seclab/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the greeting web app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			addr := cfg.WebAddress
			if addr == "" {
				return errors.New("web_address is not configured")
			}

			grp, ctx := errgroup.WithContext(cmd.Context())
			listener, err := server.Listen(ctx, addr)
			if err != nil {
				return err
			}

			srv := app.New(cfg, logger, store)
			logger.InfoContext(ctx,
				"starting app server...",
				slog.String("address", listener.Addr().String()),
			)
			server.Serve(ctx, grp, srv.Server, listener)
			return grp.Wait()
		},
	}
}
