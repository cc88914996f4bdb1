package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mkosler/linkcast/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the local dashboard until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		srv := web.New(settings, cfg.SettingsPath, cfg.OBS)
		addr := fmt.Sprintf("127.0.0.1:%d", cfg.DashboardPort)
		httpSrv := &http.Server{
			Addr:    addr,
			Handler: srv.Router(),
		}

		go func() {
			log.Info().Str("module", "cli").Str("addr", addr).Msg("dashboard started")
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("dashboard error")
			}
		}()

		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("dashboard forced to shut down")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
