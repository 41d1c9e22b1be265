package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/prompt-gallery/internal/gemini"
)

var (
	videoPromptFlag     string
	videoAspectFlag     string
	videoResolutionFlag string
	videoStartFlag      string
	videoEndFlag        string
	videoOutFlag        string
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Generate a video and wait for it to finish (Ctrl-C cancels)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := loadApp(ctx, true)
		if err != nil {
			return err
		}

		req := gemini.VideoRequest{
			Prompt:      videoPromptFlag,
			AspectRatio: gemini.AspectRatio(videoAspectFlag),
			Resolution:  gemini.Resolution(videoResolutionFlag),
		}
		if videoStartFlag != "" {
			if req.StartImage, err = readAttachment(videoStartFlag); err != nil {
				return err
			}
		}
		if videoEndFlag != "" {
			if req.EndImage, err = readAttachment(videoEndFlag); err != nil {
				return err
			}
		}

		res, err := app.Runner.Run(ctx, req, func(msg string) {
			fmt.Fprintf(os.Stderr, "  %s\n", msg)
		})
		if err != nil {
			return explain(err)
		}
		if err := os.WriteFile(videoOutFlag, res.Video.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", videoOutFlag, err)
		}
		log.Info().
			Str("file", videoOutFlag).
			Int("bytes", len(res.Video.Data)).
			Dur("elapsed", res.Elapsed).
			Msg("Video saved")
		return nil
	},
}

func init() {
	videoCmd.Flags().StringVarP(&videoPromptFlag, "prompt", "p", "", "Prompt text")
	videoCmd.Flags().StringVar(&videoAspectFlag, "aspect", string(gemini.AspectLandscape), "Aspect ratio (16:9 or 9:16)")
	videoCmd.Flags().StringVar(&videoResolutionFlag, "resolution", string(gemini.Resolution720p), "Resolution (720p or 1080p)")
	videoCmd.Flags().StringVar(&videoStartFlag, "start", "", "Starting frame image file")
	videoCmd.Flags().StringVar(&videoEndFlag, "end", "", "Final frame image file")
	videoCmd.Flags().StringVarP(&videoOutFlag, "out", "o", "video.mp4", "Output file")
}
