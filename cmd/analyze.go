package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trustlens/internal/textprep"
)

var analyzeConcern string

// analyzeCmd runs a single concern agent over text given on the command line.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Run one concern analysis over text",
	Long: `Analyzes text for a single concern (toxicity, contextual_toxicity, bias,
misinformation, coordination) and prints the full analysis record as JSON.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		defer appInstance.Close()

		analyzer, ok := appInstance.Analyzers[analyzeConcern]
		if !ok {
			names := make([]string, 0, len(appInstance.Analyzers))
			for name := range appInstance.Analyzers {
				names = append(names, name)
			}
			return fmt.Errorf("unknown concern %q (available: %s)", analyzeConcern, strings.Join(names, ", "))
		}

		text := textprep.Clean(strings.Join(args, " "))
		rec := analyzer.Analyze(cmd.Context(), text)

		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal analysis record: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConcern, "concern", "c", "toxicity", "Concern to analyze")
	rootCmd.AddCommand(analyzeCmd)
}
