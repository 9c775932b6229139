package cmd

import (
	"fmt"

	"github.com/KaramelBytes/courtside/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	choicesSeasons bool
	choicesTeams   bool
)

var choicesCmd = &cobra.Command{
	Use:     "choices [file]",
	Aliases: []string{"list"},
	Short:   "List the seasons and teams available for filtering",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(argOrEmpty(args))
		if err != nil {
			return err
		}
		c := dataset.ChoicesOf(t)
		all := !choicesSeasons && !choicesTeams
		out := cmd.OutOrStdout()
		if all || choicesSeasons {
			fmt.Fprintln(out, "Seasons:")
			printList(cmd, c.Seasons)
		}
		if all || choicesTeams {
			fmt.Fprintln(out, "Teams:")
			printList(cmd, c.Teams)
		}
		return nil
	},
}

func printList(cmd *cobra.Command, vals []string) {
	if len(vals) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "(none)")
		return
	}
	for _, v := range vals {
		fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", v)
	}
}

func init() {
	rootCmd.AddCommand(choicesCmd)
	choicesCmd.Flags().BoolVar(&choicesSeasons, "seasons", false, "list seasons only")
	choicesCmd.Flags().BoolVar(&choicesTeams, "teams", false, "list teams only")
}
