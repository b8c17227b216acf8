package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/npillmayer/lalrkit"
	"github.com/npillmayer/lalrkit/lr"
	"github.com/npillmayer/lalrkit/lr/lalr"
)

// We provide a simple expression grammar for the evaluator and for
// demonstrating conflict resolution by operator precedence.
//
//  Expr ➞ Expr + Expr  |  Expr - Expr  |  Expr * Expr  |  Expr / Expr
//       |  Expr ** Expr  |  ( Expr )  |  - Expr  |  INT  |  FLOAT
//
func arithGrammar() (*lr.Grammar[float64], error) {
	b := lr.NewGrammarBuilder[float64]("Arith")
	b.LHS("Expr").Is("Expr", "+", "Expr").Call(func(c []float64) float64 { return c[0] + c[2] }).
		Is("Expr", "-", "Expr").Call(func(c []float64) float64 { return c[0] - c[2] }).
		Is("Expr", "*", "Expr").Call(func(c []float64) float64 { return c[0] * c[2] }).
		Is("Expr", "/", "Expr").Call(func(c []float64) float64 { return c[0] / c[2] }).
		Is("Expr", "**", "Expr").Call(func(c []float64) float64 { return math.Pow(c[0], c[2]) }).
		Is("(", "Expr", ")").Call(func(c []float64) float64 { return c[1] }).
		Is("-", "Expr").Prec(4).Call(func(c []float64) float64 { return -c[1] }).
		Is("INT").
		Is("FLOAT")
	b.Operators("+", "-").Left().Prec(1)
	b.Operators("*", "/").Left().Prec(2)
	b.Operators("**").Right().Prec(3)
	b.Start("Expr")
	return b.Grammar()
}

func arithParser() (*lalr.Parser[float64], error) {
	g, err := arithGrammar()
	if err != nil {
		return nil, err
	}
	result, err := lr.Analyze(g)
	if err != nil {
		return nil, err
	}
	return lalr.NewParser(g, result, lalr.TerminalValue(func(tok lalrkit.Token) float64 {
		x, _ := strconv.ParseFloat(tok.Value(), 64)
		return x
	})), nil
}

//  S ➞ a S b  |  ε
func bracketGrammar() (*lr.Grammar[any], error) {
	b := lr.NewGrammarBuilder[any]("Brackets")
	b.LHS("S").Is("a", "S", "b").Epsilon()
	b.Start("S")
	return b.Grammar()
}

//  Stmt ➞ if Cond then Stmt  |  if Cond then Stmt else Stmt  |  other
//  Cond ➞ c
func danglingElseGrammar() (*lr.Grammar[any], error) {
	b := lr.NewGrammarBuilder[any]("DanglingElse")
	b.LHS("Stmt").Is("if", "Cond", "then", "Stmt").
		Is("if", "Cond", "then", "Stmt", "else", "Stmt").
		Is("other")
	b.LHS("Cond").Is("c")
	b.Start("Stmt").Resolve(lr.ResolveShift)
	return b.Grammar()
}

// analyzeExample analyzes one of the example grammars by name.
func analyzeExample(name string) (*lr.AnalysisResult, error) {
	switch name {
	case "arith":
		g, err := arithGrammar()
		if err != nil {
			return nil, err
		}
		return lr.Analyze(g)
	case "brackets", "dangling-else":
		mk := bracketGrammar
		if name == "dangling-else" {
			mk = danglingElseGrammar
		}
		g, err := mk()
		if err != nil {
			return nil, err
		}
		return lr.Analyze(g)
	}
	return nil, fmt.Errorf("unknown example grammar: %q", name)
}
