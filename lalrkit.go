package lalrkit

import "fmt"

// EOF is the token type of the end-of-input sentinel. Every token stream has to
// terminate with a token of this type; the augmented start rule of a grammar
// accepts on it.
const EOF = "$eof"

// --- A general purpose interface for tokens --------------------------------

// Token represents an input token. Tokens are usually produced by a lexer and
// reflect terminals in a language.
//
// An example would be a token for an integer:
//
//    Type  = "INT"   // terminal symbol of the grammar (application specific)
//    Value = "42"    // lexeme as it appeared in the input
//    Line  = 3       // line of the input the token started on
//
type Token interface {
	Type() string
	Value() string
	Line() int
}

// CommonToken is an unsophisticated token type, used as default by the lexers
// of this module.
type CommonToken struct {
	typ   string
	value string
	line  int
}

var _ Token = CommonToken{}

// NewToken creates a token of type typ, with lexeme value, found at line.
func NewToken(typ, value string, line int) CommonToken {
	return CommonToken{typ: typ, value: value, line: line}
}

// Type is part of interface Token.
func (t CommonToken) Type() string {
	return t.typ
}

// Value is part of interface Token.
func (t CommonToken) Value() string {
	return t.value
}

// Line is part of interface Token.
func (t CommonToken) Line() int {
	return t.line
}

func (t CommonToken) String() string {
	if t.typ == EOF {
		return fmt.Sprintf("<%s>@%d", EOF, t.line)
	}
	return fmt.Sprintf("<%s|%q>@%d", t.typ, t.value, t.line)
}

// --- Token streams ---------------------------------------------------------

// TokenStream is a random-access sequence of tokens, terminated by a token of
// type EOF. A stream keeps a cursor, the current position.
// Accessing positions outside of the stream is an error.
//
// Parsers read the current token without consuming it and call Next to advance.
// A stream must not be shared by concurrent parses.
type TokenStream interface {
	Position() int                  // current cursor position
	Current() Token                 // token at the cursor
	Get(n int) (Token, error)       // token at absolute position n
	LookAhead(n int) (Token, error) // token at cursor+n, cursor unchanged
	Move(n int) error               // set cursor to absolute position n
	Seek(n int) error               // move cursor by n
	Next() error                    // advance cursor by 1
	Len() int                       // number of tokens, including EOF
}

// Lexer turns raw text into a token stream. Lexers report input they are unable
// to tokenize with an error, which parsers pass on unchanged.
type Lexer interface {
	Lex(input string) (TokenStream, error)
}
