/*
Package lalrkit is an LALR(1) parser-generator toolkit.

Clients describe a context-free grammar, optionally annotated with operator
precedences and associativities, have it analysed and receive a parse table.
The table drives a shift-reduce parser, which evaluates user-supplied rule
callbacks on every reduction. There is no code generation step: grammars are
built, analysed and used at runtime. Package structure is as follows:

■ lr: Package lr implements the grammar model, construction of the LALR(1)
automaton with lookahead propagation, conflict resolution and parse table synthesis.

■ lr/lalr: Package lalr implements the table-driven runtime parser.

■ lr/scanner: Package scanner provides token streams and a lexer for Go-like input;
sub-package lexmach provides lexers built on lexmachine.

The base package contains the token and token stream types which are used
throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalrkit
