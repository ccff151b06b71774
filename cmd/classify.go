package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"trustlens/internal/textprep"
	"trustlens/pkg/moderation"
)

var (
	classifyTitle string
	classifyURL   string
)

// classifyCmd runs the full multi-agent classification and prints a summary
// table.
var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify content across all concerns",
	Long: `Runs every concern agent over the given text (or the text content of
--url) and prints the combined trust score with a per-concern breakdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		var body string
		switch {
		case classifyURL != "":
			fetched, err := appInstance.Fetcher.FetchText(cmd.Context(), classifyURL)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", classifyURL, err)
			}
			body = fetched
		case len(args) > 0:
			body = strings.Join(args, " ")
		default:
			return fmt.Errorf("provide text arguments or --url")
		}

		title := classifyTitle
		if title == "" && classifyURL != "" {
			title = classifyURL
		}

		result := appInstance.Classifier.ClassifyPost(cmd.Context(), moderation.Content{
			Title: title,
			Body:  textprep.Clean(body),
		})

		printClassification(result)
		return nil
	},
}

func printClassification(result moderation.ClassificationResult) {
	trust := fmt.Sprintf("%.2f", result.TrustScore)
	switch {
	case result.TrustScore >= 0.8:
		trust = color.GreenString(trust)
	case result.TrustScore >= 0.5:
		trust = color.YellowString(trust)
	default:
		trust = color.RedString(trust)
	}
	fmt.Printf("Trust score: %s\n", trust)
	if len(result.FlaggedCategories) > 0 {
		fmt.Printf("Flagged: %s\n", color.RedString(strings.Join(result.FlaggedCategories, ", ")))
	} else {
		fmt.Printf("Flagged: %s\n", color.GreenString("nothing"))
	}
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Concern", "Score", "Severity", "Model", "Matched"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, spec := range moderation.DefaultConcernSpecs() {
		rec, ok := result.Analysis[spec.Name]
		if !ok {
			continue
		}
		table.Append([]string{
			spec.Name,
			fmt.Sprintf("%.2f", rec.AggregateScore),
			severityCell(rec.Severity),
			rec.ModelUsed,
			strings.Join(rec.FlaggedTokens, ", "),
		})
	}
	table.Render()
}

func severityCell(s moderation.Severity) string {
	switch s {
	case moderation.SeverityCritical, moderation.SeverityHigh:
		return color.RedString(string(s))
	case moderation.SeverityMedium:
		return color.YellowString(string(s))
	case moderation.SeverityLow:
		return color.CyanString(string(s))
	case moderation.SeverityError:
		return color.MagentaString(string(s))
	default:
		return string(s)
	}
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyTitle, "title", "t", "", "Content title")
	classifyCmd.Flags().StringVarP(&classifyURL, "url", "u", "", "Fetch and classify the text content of a URL")
	rootCmd.AddCommand(classifyCmd)
}
