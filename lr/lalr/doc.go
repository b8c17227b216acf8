/*
Package lalr provides an LALR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The LALR parser
utilizes these tables to create a right derivation for a given input,
provided through a token stream.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Usage

Clients construct a grammar, usually by using a grammar builder. Rules are
instrumented with semantic actions, producing values of a type chosen by the
client:

	b := lr.NewGrammarBuilder[int]("Sums")
	b.LHS("Sum").Is("Sum", "+", "INT").Call(func(c []int) int { return c[0] + c[2] }).
	             Is("INT")
	b.Start("Sum")
	g, err := b.Grammar()

This grammar is subjected to grammar analysis and table generation.

	result, err := lr.Analyze(g)
	if err != nil { ... }  // unresolved conflict

Finally parse some input:

	p := lalr.NewParser(g, result, lalr.TerminalValue(func(tok lalrkit.Token) int {
		n, _ := strconv.Atoi(tok.Value())
		return n
	}))
	sum, err := p.ParseString(lexer, "1 + 2 + 3")

A parser keeps no state between calls to Parse; it may be used by concurrent
goroutines, each parsing its own token stream.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr
