package cmd

import (
	"fmt"

	"github.com/KaramelBytes/courtside/internal/analysis"
	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/KaramelBytes/courtside/internal/utils"
	"github.com/spf13/cobra"
)

var (
	anaSeason     string
	anaTeam       string
	anaOutputPath string
	anaSampleRows int
	anaJSON       bool
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze [file]",
	Aliases: []string{"summary"},
	Short:   "Summarize one season and team as Markdown or JSON",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(argOrEmpty(args))
		if err != nil {
			return err
		}
		sel, err := dataset.Resolve(dataset.ChoicesOf(t), anaSeason, anaTeam)
		if err != nil {
			return err
		}
		rep := analysis.BuildReport(t, sel, anaSampleRows)

		var out []byte
		if anaJSON {
			out, err = utils.PrettyJSON(rep.JSON())
			if err != nil {
				return err
			}
		} else {
			out = []byte(rep.Markdown())
		}

		if anaOutputPath != "" {
			if err := utils.SafeWriteFile(anaOutputPath, out); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaSeason, "season", "s", "", "season to select (default: first season)")
	analyzeCmd.Flags().StringVarP(&anaTeam, "team", "t", "", "team to select (default: first team)")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the analysis")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of filtered rows to include")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit JSON instead of Markdown")
}
