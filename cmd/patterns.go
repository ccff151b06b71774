package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"trustlens/pkg/moderation"
)

// patternsCmd lists the built-in keyword tables used by the fallback scorer.
var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show the fallback scorer's pattern tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Concern", "Increment", "Category", "Keywords"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, spec := range moderation.DefaultConcernSpecs() {
			categories := make([]string, 0, len(spec.Patterns))
			for category := range spec.Patterns {
				categories = append(categories, category)
			}
			sort.Strings(categories)
			for _, category := range categories {
				table.Append([]string{
					spec.Name,
					fmt.Sprintf("%.2f", spec.PerMatchIncrement),
					category,
					strings.Join(spec.Patterns[category], ", "),
				})
			}
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
