package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fpang/prompt-gallery/internal/catalog"
)

var (
	promptsQueryFlag    string
	promptsCategoryFlag string
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List catalog prompts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		found := app.Catalog.Search(catalog.Filter{Query: promptsQueryFlag, CategoryID: promptsCategoryFlag})

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCATEGORY\tTITLE\tCREATED")
		for _, p := range found {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.CategoryID, p.Title, p.CreatedAt.Format("2006-01-02"))
		}
		return tw.Flush()
	},
}

func init() {
	promptsCmd.Flags().StringVar(&promptsQueryFlag, "q", "", "Search title and description")
	promptsCmd.Flags().StringVarP(&promptsCategoryFlag, "category", "c", "", "Category id")
}
