package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	suggestTitleFlag       string
	suggestDescriptionFlag string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Write prompt text for a title and description",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app, err := loadApp(ctx, true)
		if err != nil {
			return err
		}
		text, err := app.Gemini.SuggestPrompt(ctx, suggestTitleFlag, suggestDescriptionFlag)
		if err != nil {
			return explain(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestTitleFlag, "title", "t", "", "Prompt title")
	suggestCmd.Flags().StringVarP(&suggestDescriptionFlag, "description", "d", "", "Prompt description")
}
