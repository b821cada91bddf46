package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/productadvisor/backend/config"
	httpDelivery "github.com/productadvisor/backend/internal/delivery/http"
	"github.com/productadvisor/backend/internal/infrastructure/storage"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(cfg *config.Config) *cobra.Command {
	var (
		port      string
		ephemeral bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Server.Port = port
			}
			if ephemeral {
				cfg.Favorites.Backend = storage.BackendMemory
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			httpDelivery.Version = Version
			handler := httpDelivery.NewHandler(a.catalog, a.favorites, a.recommendations)
			router := httpDelivery.SetupRouter(cfg, handler)

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info().
				Str("version", Version).
				Str("environment", cfg.Server.Environment).
				Str("addr", srv.Addr).
				Str("cache", cfg.Cache.Type).
				Str("favorites_backend", cfg.Favorites.Backend).
				Bool("remote", cfg.RemoteEnabled()).
				Int("products", a.catalog.Len()).
				Int("favorites_count", a.favorites.Count(ctx)).
				Msg("starting product advisor")

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides server.port)")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep favorites in memory only")
	return cmd
}
