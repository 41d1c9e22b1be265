// Package main is a command-line client for image generation, video
// generation, prompt suggestion, and catalog browsing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fpang/prompt-gallery/internal/auth"
	"github.com/fpang/prompt-gallery/internal/boot"
	"github.com/fpang/prompt-gallery/internal/config"
	"github.com/fpang/prompt-gallery/internal/gemini"
	"github.com/fpang/prompt-gallery/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "gallery-cli",
	Short: "Generate images and videos from gallery prompts",
	Long: `Gallery CLI talks to the Gemini API directly for image and video
generation, and browses the embedded prompt catalog.

Examples:
  gallery-cli image --prompt "a fox in the snow" --out fox.png
  gallery-cli video --prompt "waves at dusk" --aspect 9:16 --out waves.mp4
  gallery-cli suggest --title "Golden Hour" --description "Portrait at sunset"
  gallery-cli prompts --q portrait`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init()
	},
}

func init() {
	rootCmd.AddCommand(imageCmd, videoCmd, suggestCmd, promptsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadApp assembles the services and fails when generation is unavailable.
func loadApp(ctx context.Context, needAI bool) (*boot.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app, err := boot.New(ctx, "gallery-cli", cfg)
	if err != nil {
		return nil, err
	}
	if needAI && !app.AIAvailable() {
		return nil, fmt.Errorf("%w (set GEMINI_API_KEY)", gemini.ErrNotConfigured)
	}
	return app, nil
}

// explain rewrites key failures into the message users act on.
func explain(err error) error {
	if auth.IsInvalidKey(err) {
		return fmt.Errorf("%s: %w", auth.InvalidKeyMessage, err)
	}
	return err
}
