package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/courtside/internal/analysis"
	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/KaramelBytes/courtside/internal/utils"
	"github.com/spf13/cobra"
)

var (
	abOutDir     string
	abSeasons    []string
	abTeams      []string
	abSampleRows int
	abKeepEmpty  bool
	abQuiet      bool
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch [file]",
	Short: "Write one Markdown report per season and team",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(argOrEmpty(args))
		if err != nil {
			return err
		}
		all := dataset.ChoicesOf(t)
		seasons, err := pick(all.Seasons, abSeasons, "season")
		if err != nil {
			return err
		}
		teams, err := pick(all.Teams, abTeams, "team")
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(abOutDir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		total := len(seasons) * len(teams)
		i, written := 0, 0
		for _, season := range seasons {
			for _, team := range teams {
				i++
				sel := dataset.Selection{Season: season, Team: team}
				sub := dataset.Filter(t, sel)
				if sub.Empty() && !abKeepEmpty {
					continue
				}
				if !abQuiet {
					fmt.Printf("[%d/%d] Processing %s / %s...\n", i, total, season, team)
				}
				md := analysis.NewReport(t, sub, sel, abSampleRows).Markdown()
				outFile := uniquePath(filepath.Join(abOutDir, slug(season)+"__"+slug(team)+".summary.md"))
				if err := utils.SafeWriteFile(outFile, []byte(md)); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				written++
			}
		}
		if !abQuiet {
			fmt.Printf("✓ Wrote %d reports to %s\n", written, abOutDir)
		}
		return nil
	},
}

// pick validates requested values against the available ones; none requested means all.
func pick(available, requested []string, what string) ([]string, error) {
	if len(requested) == 0 {
		return available, nil
	}
	have := map[string]bool{}
	for _, v := range available {
		have[v] = true
	}
	for _, r := range requested {
		if !have[r] {
			return nil, fmt.Errorf("%w: %s %q", dataset.ErrUnknownSelection, what, r)
		}
	}
	return requested, nil
}

// slug keeps lowercase letters and digits and folds separators to '-'.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else if r == ' ' || r == '-' || r == '_' || r == '/' {
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		out = "x"
	}
	return out
}

// uniquePath appends __2, __3, ... before the suffix when path already exists.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	base := strings.TrimSuffix(path, ".summary.md")
	for idx := 2; ; idx++ {
		cand := fmt.Sprintf("%s__%d.summary.md", base, idx)
		if _, err := os.Stat(cand); os.IsNotExist(err) {
			if !abQuiet {
				fmt.Printf("⚠ Detected existing report, writing to %s to avoid overwrite.\n", filepath.Base(cand))
			}
			return cand
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeBatchCmd)
	analyzeBatchCmd.Flags().StringVarP(&abOutDir, "out-dir", "o", "reports", "directory for the reports")
	analyzeBatchCmd.Flags().StringSliceVar(&abSeasons, "seasons", nil, "comma-separated seasons (default: all)")
	analyzeBatchCmd.Flags().StringSliceVar(&abTeams, "teams", nil, "comma-separated teams (default: all)")
	analyzeBatchCmd.Flags().IntVar(&abSampleRows, "sample-rows", 5, "number of filtered rows to include (0 disables samples)")
	analyzeBatchCmd.Flags().BoolVar(&abKeepEmpty, "keep-empty", false, "also write reports for combinations with no rows")
	analyzeBatchCmd.Flags().BoolVar(&abQuiet, "quiet", false, "suppress progress and non-essential output")
}
