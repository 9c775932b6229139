package cmd

import (
	"fmt"

	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/KaramelBytes/courtside/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expSeason     string
	expTeam       string
	expOutputPath string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the rows of one season and team as CSV",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(argOrEmpty(args))
		if err != nil {
			return err
		}
		sel, err := dataset.Resolve(dataset.ChoicesOf(t), expSeason, expTeam)
		if err != nil {
			return err
		}
		sub := dataset.Filter(t, sel)
		if expOutputPath == "" || expOutputPath == "-" {
			return dataset.WriteCSV(cmd.OutOrStdout(), sub)
		}
		b, err := dataset.CSVBytes(sub)
		if err != nil {
			return err
		}
		if err := utils.SafeWriteFile(expOutputPath, b); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		if sub.Empty() {
			fmt.Printf("⚠ No rows for season %s and team %s; wrote header only to %s\n", sel.Season, sel.Team, expOutputPath)
			return nil
		}
		fmt.Printf("✓ Wrote %d rows to %s\n", sub.Nrow(), expOutputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&expSeason, "season", "s", "", "season to select (default: first season)")
	exportCmd.Flags().StringVarP(&expTeam, "team", "t", "", "team to select (default: first team)")
	exportCmd.Flags().StringVarP(&expOutputPath, "output", "o", "stats_filtered.csv", "output path, or - for stdout")
}
