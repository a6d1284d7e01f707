package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rgehrsitz/basereg/internal/api"
	"github.com/rgehrsitz/basereg/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the simulation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd, "json")
			if os.Getenv("LOG_LEVEL") == "" {
				if debugMode, _ := cmd.Flags().GetBool("debug"); !debugMode {
					logger.SetLevel(logrus.InfoLevel)
				}
			}

			engine, ref, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}
			dir := referenceDir(cmd)

			var origins []string
			if raw, _ := cmd.Flags().GetString("cors-origins"); raw != "" {
				origins = strings.Split(raw, ",")
			}
			handler := api.NewHandler(engine, config.Describe(dir, ref), logger)
			addr, _ := cmd.Flags().GetString("addr")
			srv := api.NewServer(addr, api.NewRouter(handler, origins))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Infof("listening on %s (reference data %s)", addr, dir)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", ":8080", "Listen address")
	cmd.Flags().String("cors-origins", "", "Comma-separated list of allowed CORS origins")
	return cmd
}
