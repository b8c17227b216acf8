package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "conflicts",
		Short:   "List the conflicts resolved while building the parse table",
		Example: `  lalrkit conflicts --grammar dangling-else`,
		Args:    cobra.NoArgs,
		RunE:    runConflicts,
	}
	rootCmd.AddCommand(cmd)
}

func runConflicts(cmd *cobra.Command, args []string) error {
	result, err := analyzeExample(*rootFlags.grammar)
	if err != nil {
		return err
	}
	conflicts := result.ResolvedConflicts()
	if len(conflicts) == 0 {
		pterm.Info.Println("no conflicts")
		return nil
	}
	for _, c := range conflicts {
		pterm.Info.Println(c.String())
	}
	return nil
}
