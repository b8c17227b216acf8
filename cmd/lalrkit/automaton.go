package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/lalrkit/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var automatonFlags = struct {
	dot *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "automaton",
		Short:   "Print the states of the LR(0) automaton of an example grammar",
		Example: `  lalrkit automaton --dot | dot -Tsvg > arith.svg`,
		Args:    cobra.NoArgs,
		RunE:    runAutomaton,
	}
	automatonFlags.dot = cmd.Flags().Bool("dot", false, "write the automaton in GraphViz DOT format")
	rootCmd.AddCommand(cmd)
}

func runAutomaton(cmd *cobra.Command, args []string) error {
	result, err := analyzeExample(*rootFlags.grammar)
	if err != nil {
		return err
	}
	a := result.Automaton()
	if *automatonFlags.dot {
		return a.GraphViz(os.Stdout)
	}
	return pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(automatonList(a))).Render()
}

// automatonList lists states with their items and outgoing transitions.
func automatonList(a *lr.Automaton) pterm.LeveledList {
	var ll pterm.LeveledList
	for _, s := range a.States() {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("state %d", s.Number)})
		for _, id := range s.Items() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: a.Item(id).String()})
		}
		for _, t := range a.Transitions(s.Number) {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("%s ⇒ %d", t.Label, t.To)})
		}
	}
	return ll
}
