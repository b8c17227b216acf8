package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lalrkit/lr/lalr"
	"github.com/npillmayer/lalrkit/lr/scanner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Evaluate arithmetic expressions",
		Long: `eval parses and evaluates an arithmetic expression given as argument.
Without arguments it starts an interactive session. Quit with <ctrl>D.`,
		Example: `  lalrkit eval "2 ** 3 ** 2 - (1 + 1)"`,
		RunE:    runEval,
	}
	rootCmd.AddCommand(cmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	p, err := arithParser()
	if err != nil {
		return err
	}
	lexer := scanner.GoLexer(scanner.Operators("**"))
	if len(args) > 0 {
		x, err := p.ParseString(lexer, strings.Join(args, " "))
		if err != nil {
			return err
		}
		pterm.Info.Println(x)
		return nil
	}
	return repl(p, lexer)
}

// repl starts interactive mode.
func repl(p *lalr.Parser[float64], lexer *scanner.DefaultLexer) error {
	rl, err := readline.New("lalrkit> ")
	if err != nil {
		return err
	}
	defer rl.Close()
	pterm.Info.Println("Welcome to lalrkit, quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		x, err := p.ParseString(lexer, line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		pterm.Info.Println(x)
	}
	println("Good bye!")
	return nil
}
