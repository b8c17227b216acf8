package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func tracer() tracing.Trace {
	return tracing.Select("lalrkit.lr")
}

var rootFlags = struct {
	trace   *string
	grammar *string
}{}

var rootCmd = &cobra.Command{
	Use:   "lalrkit",
	Short: "Analyze grammars and run LALR(1) parsers built on the fly",
	Long: `lalrkit comes with a couple of example grammars and lets you
- inspect their LR(0) automaton and LALR(1) parse table,
- review the conflicts resolved during table construction,
- evaluate arithmetic expressions with an LALR(1) parser.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initDisplay()
		level := tracing.TraceLevelFromString(*rootFlags.trace)
		for _, key := range []string{"lalrkit.lr", "lalrkit.scanner"} {
			tracing.Select(key).SetTraceLevel(level)
		}
		return nil
	},
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "arith", "example grammar [arith|brackets|dangling-else]")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
