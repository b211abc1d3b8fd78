package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/roicalc/internal/scenario"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator page, the JSON API and saved scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		for _, warning := range cfg.Warnings() {
			zap.L().Warn("incomplete configuration", zap.String("warning", warning))
		}
		if !cfg.IsDev() && cfg.Server.SessionSecret == "" {
			return eris.New("ROI_SERVER_SESSION_SECRET is required outside dev")
		}

		database, err := openDatabase(ctx, cfg.Store.AutoMigrate, cfg.Store.SeedOnStartup)
		if err != nil {
			return err
		}
		defer database.Close()

		s := &server{
			auth:      newAuthService(database, cfg.Server.SessionSecret),
			scenarios: scenario.NewStore(database),
			logger:    zap.L(),
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           s.routes(cfg.Server.CORSOrigins),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.String("db", cfg.Store.DBPath))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
