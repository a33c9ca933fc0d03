package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkhub-io/linkhub/app/aggregate"
	"github.com/linkhub-io/linkhub/app/api"
	"github.com/linkhub-io/linkhub/app/cfg"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the published collections over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg.Get()

		sites := siteStore()
		categories := categoryStore()
		aggregator := aggregate.NewAggregator(sites, categories, c.DataDir)

		handler := api.NewHandler(aggregator, sites, categories)
		router := api.NewServer(handler)

		server := &http.Server{
			Addr:    ":" + c.Port,
			Handler: router,
		}

		go func() {
			slog.Info("Starting catalog server", "port", c.Port, "version", c.Version)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Server failed", "error", err)
				os.Exit(1)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		slog.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		slog.Info("Server exited")
		return nil
	},
}
