/*
Package lr implements grammars and the construction of LALR(1) parse tables.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Every symbol which
is not the left hand side of a rule is a terminal, i.e. a token type the
lexer produces. Grammars may contain epsilon-productions.

Grammars are parameterized with the type of semantic values their rules
produce. Semantic actions (callbacks) receive the values of a rule's
components and return the value for the reduced non-terminal.

Example:

    b := lr.NewGrammarBuilder[int]("G")
    b.LHS("S").Is("a", "S", "b").   // 1: S  ->  a S b
               Epsilon()            // 2: S  ->
    b.Start("S")                    // 0: $start -> S
    g, err := b.Grammar()

Operators are declared in groups, each with a precedence and an associativity.
They are used for resolving shift/reduce conflicts:

    b.Operators("+", "-").Left().Prec(1)
    b.Operators("*", "/").Left().Prec(2)
    b.Operators("**").Right().Prec(3)

Static Grammar Analysis

After the grammar is complete, it has to be analysed. Analyze builds the
LALR(1) automaton for a grammar, computes lookaheads by pumping them through
the connections between the automaton's items, and synthesizes a parse table.
Conflicts in the table are resolved according to the conflict mode of a grammar;
if a conflict remains, analysis fails with a conflict error.

    result, err := lr.Analyze(g)
    if errors.Is(err, lr.ErrConflict) { ... }
    table := result.Table()
    act, ok := table.Action(0, "a")  // shift/reduce/accept

The automaton will not be thrown away, but is made available to the client.
This is intended for debugging purposes. It can be exported to Graphviz's Dot-format.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalrkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lalrkit.lr")
}
