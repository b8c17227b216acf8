package main

import (
	"os"
	"strconv"

	"github.com/npillmayer/lalrkit/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	json *bool
	html *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table",
		Short:   "Print the LALR(1) parse table of an example grammar",
		Example: `  lalrkit table --grammar brackets --json > brackets.json`,
		Args:    cobra.NoArgs,
		RunE:    runTable,
	}
	tableFlags.json = cmd.Flags().Bool("json", false, "write the table in JSON format")
	tableFlags.html = cmd.Flags().Bool("html", false, "write the table as an HTML fragment")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	result, err := analyzeExample(*rootFlags.grammar)
	if err != nil {
		return err
	}
	table := result.Table()
	switch {
	case *tableFlags.json:
		return lr.WriteTable(table, os.Stdout)
	case *tableFlags.html:
		return table.TableAsHTML(os.Stdout)
	}
	fp, err := table.Fingerprint()
	if err != nil {
		return err
	}
	tracer().Infof("table fingerprint %s", fp)
	return pterm.DefaultTable.WithHasHeader().WithData(tableData(table)).Render()
}

// tableData arranges action and goto entries in rows per state.
func tableData(table *lr.ParseTable) pterm.TableData {
	header := []string{"state"}
	header = append(header, table.Terminals()...)
	header = append(header, table.Nonterminals()...)
	data := pterm.TableData{header}
	for state := 0; state < table.StateCount(); state++ {
		row := []string{strconv.Itoa(state)}
		for _, t := range table.Terminals() {
			cell := ""
			if action, ok := table.Action(state, t); ok {
				switch {
				case action > 0:
					cell = "s" + strconv.Itoa(action)
				case action < 0:
					cell = "r" + strconv.Itoa(-action)
				default:
					cell = "acc"
				}
			}
			row = append(row, cell)
		}
		for _, n := range table.Nonterminals() {
			cell := ""
			if dest, ok := table.Goto(state, n); ok {
				cell = strconv.Itoa(dest)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return data
}
