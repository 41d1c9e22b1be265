package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fpang/prompt-gallery/internal/attachment"
)

var (
	imagePromptFlag   string
	imagePromptIDFlag string
	imageAttachFlag   []string
	imageOutFlag      string
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Generate an image from a prompt and optional reference images",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := loadApp(ctx, true)
		if err != nil {
			return err
		}

		prompt := imagePromptFlag
		var attachments []string
		if imagePromptIDFlag != "" {
			p, err := app.Catalog.Prompt(imagePromptIDFlag)
			if err != nil {
				return fmt.Errorf("prompt %s: %w", imagePromptIDFlag, err)
			}
			if prompt == "" {
				prompt = p.PromptText
			}
			for _, a := range p.Attachments() {
				if attachment.IsInline(a.URL) {
					attachments = append(attachments, a.URL)
				}
			}
		}
		for _, path := range imageAttachFlag {
			inline, err := readAttachment(path)
			if err != nil {
				return err
			}
			attachments = append(attachments, inline)
		}

		inline, err := app.Gemini.GenerateImage(ctx, prompt, attachments)
		if err != nil {
			return explain(err)
		}
		mimeType, data, err := attachment.Decode(inline)
		if err != nil {
			return err
		}
		if err := os.WriteFile(imageOutFlag, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", imageOutFlag, err)
		}
		log.Info().Str("file", imageOutFlag).Str("mime", mimeType).Int("bytes", len(data)).Msg("Image saved")
		return nil
	},
}

func init() {
	imageCmd.Flags().StringVarP(&imagePromptFlag, "prompt", "p", "", "Prompt text")
	imageCmd.Flags().StringVar(&imagePromptIDFlag, "from", "", "Use a catalog prompt (and its attachments) by id")
	imageCmd.Flags().StringArrayVarP(&imageAttachFlag, "attach", "a", nil, "Reference image file (repeatable, up to 5)")
	imageCmd.Flags().StringVarP(&imageOutFlag, "out", "o", "image.png", "Output file")
}

// readAttachment loads an image file as a data URL.
func readAttachment(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	inline, err := attachment.Encode(data, attachment.DetectType(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return inline, nil
}
