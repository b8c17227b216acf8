/*
Package lexmach provides lexers for the parsers of lalrkit, backed by the
lexmachine scanner generator.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Token definitions are either literals or regular expressions in lexmachine
syntax. Tokens are identified by their type name, which is the name of the
corresponding terminal in a grammar.

A SimpleLexer has a single set of token definitions:

	lexer := lexmach.NewSimpleLexer().
		Regex("INT", "[0-9]+").
		Token("+").Token("(").Token(")").
		Regex("WS", "[ \t\n]+").
		Skip("WS")

A StatefulLexer switches between sets of token definitions, e.g., for lexing
quoted strings differently from the surrounding text. See StatefulLexer for
an example.

Both lexers implement lalrkit.Lexer:

	tokens, err := lexer.Lex("(1 + 2)")
	if err != nil {
		// err is a *scanner.RecognitionError for un-recognizable input
	}

Line endings are normalized to "\n" before lexing, and every token carries the
line it starts on. The token stream is terminated by a token of type lalrkit.EOF.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
