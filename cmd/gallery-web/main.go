// Package main runs the prompt gallery JSON API as a local HTTP server.
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

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/prompt-gallery/internal/api"
	"github.com/fpang/prompt-gallery/internal/auth"
	"github.com/fpang/prompt-gallery/internal/boot"
	"github.com/fpang/prompt-gallery/internal/config"
	"github.com/fpang/prompt-gallery/internal/logging"
)

// CLI flags
var (
	portFlag     string
	validateFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "gallery-web",
	Short: "HTTP API for the prompt gallery",
	Long: `Gallery Web serves the prompt catalog and the image and video generation
endpoints on a local port.

Examples:
  gallery-web
  gallery-web --port 9090
  gallery-web --validate-key`,
	RunE: runMain,
}

func init() {
	rootCmd.Flags().StringVar(&portFlag, "port", "", "Port to listen on (overrides GALLERY_PORT)")
	rootCmd.Flags().BoolVar(&validateFlag, "validate-key", false, "Check the Gemini API key at startup")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) error {
	logging.Init()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.Port = portFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := boot.New(ctx, "gallery-web", cfg)
	if err != nil {
		return err
	}
	if validateFlag && app.AIAvailable() {
		if err := auth.ValidateAPIKey(ctx, app.Gemini); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           gzhttp.GzipHandler(api.FromApp(app).Handler()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Video requests block for the whole poll.
		WriteTimeout: cfg.PollTimeout + 2*time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Graceful shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("Starting web server")
	fmt.Printf("\n  Prompt Gallery API: http://localhost:%s/api\n\n", cfg.Port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
