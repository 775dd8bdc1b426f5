package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tradecal/chinacal"
	"github.com/tradecal/chinacal/internal/server"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the calendar HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			table, err := loadTable(cfg)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			cal := chinacal.New(table)

			var auth *server.Auth
			if cfg.AuthFile != "" {
				auth, err = server.LoadAuthFile(cfg.AuthFile)
				if err != nil {
					return fmt.Errorf("load auth file: %w", err)
				}
			}

			min, max := table.SupportedRange()
			logger.Info("starting calendar API",
				zap.String("listen", cfg.Listen),
				zap.String("range", min.Format(chinacal.DateLayout)+".."+max.Format(chinacal.DateLayout)),
				zap.Bool("auth", auth != nil))

			srv := &http.Server{
				Addr:              cfg.Listen,
				Handler:           server.New(cal, logger, auth),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Bind address, overrides the config file (e.g. :8000)")

	return cmd
}
