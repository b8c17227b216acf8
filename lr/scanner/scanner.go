/*
Package scanner defines token streams and a default lexer to be used with the
parsers of package lr.

Lexers turn raw input into a token stream, terminated by a token of type
lalrkit.EOF. Two lexer implementations are provided: (1) a thin wrapper over
the Go std lib 'text/scanner', and (2) lexers backed by lexmachine, living in
sub-package `lexmach`.

	lexer := scanner.GoLexer(scanner.Operators("**", "<="))
	tokens, err := lexer.Lex("x <= 2 ** 10")

If no token can be extracted from the input, lexers return a *RecognitionError.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"strings"
	"text/scanner"

	"github.com/npillmayer/lalrkit"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalrkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lalrkit.scanner")
}

// Token types produced by the Go lexer. Characters which do not start one of
// these token classes are returned as tokens of their own, e.g. "+".
const (
	Ident   = "IDENT"
	Int     = "INT"
	Float   = "FLOAT"
	Char    = "CHAR"
	String  = "STRING"
	Comment = "COMMENT"
)

var tokenTypes = map[rune]string{
	scanner.Ident:     Ident,
	scanner.Int:       Int,
	scanner.Float:     Float,
	scanner.Char:      Char,
	scanner.String:    String,
	scanner.RawString: String,
	scanner.Comment:   Comment,
}

// DefaultLexer is a lexer accepting tokens similar to the Go language,
// backed by scanner.Scanner. Create one with GoLexer.
type DefaultLexer struct {
	mode         uint
	unifyStrings bool     // convert single chars to strings
	operators    []string // multi-character operators
}

var _ lalrkit.Lexer = (*DefaultLexer)(nil)

// GoLexer creates a lexer accepting tokens similar to the Go language.
// Comments are skipped by default.
func GoLexer(opts ...Option) *DefaultLexer {
	lx := &DefaultLexer{mode: scanner.GoTokens}
	for _, opt := range opts {
		opt(lx)
	}
	return lx
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Lex is part of interface lalrkit.Lexer.
func (lx *DefaultLexer) Lex(input string) (lalrkit.TokenStream, error) {
	var s scanner.Scanner
	input = lineEndings.Replace(input)
	s.Init(strings.NewReader(input))
	s.Mode = lx.mode
	var failed *RecognitionError
	s.Error = func(s *scanner.Scanner, msg string) {
		pos := s.Position
		if !pos.IsValid() {
			pos = s.Pos()
		}
		tracer().Errorf("scanner error at line %d: %s", pos.Line, msg)
		if failed == nil {
			failed = &RecognitionError{Line: pos.Line}
		}
	}
	var tokens []lalrkit.Token
	for r := s.Scan(); r != scanner.EOF; r = s.Scan() {
		line := s.Position.Line
		typ, ok := tokenTypes[r]
		text := s.TokenText()
		if !ok {
			text = lx.operator(&s, text)
			typ = text
		} else if r == scanner.Char && lx.unifyStrings {
			typ = String
		}
		if failed != nil {
			return nil, failed
		}
		tokens = append(tokens, lalrkit.NewToken(typ, text, line))
	}
	if failed != nil {
		return nil, failed
	}
	tokens = append(tokens, lalrkit.NewToken(lalrkit.EOF, "", strings.Count(input, "\n")+1))
	tracer().Debugf("DefaultLexer produced %d tokens", len(tokens))
	return &ArrayTokenStream{tokens: tokens}, nil
}

// operator extends a single-character token to the longest multi-character
// operator it starts.
func (lx *DefaultLexer) operator(s *scanner.Scanner, text string) string {
	for {
		next := s.Peek()
		if next == scanner.EOF {
			return text
		}
		longer := text + string(next)
		if !lx.isOperatorPrefix(longer) {
			return text
		}
		s.Next()
		text = longer
	}
}

func (lx *DefaultLexer) isOperatorPrefix(s string) bool {
	for _, op := range lx.operators {
		if strings.HasPrefix(op, s) {
			return true
		}
	}
	return false
}

// --- Options for the default (Go) lexer ------------------------------------

// Option configures a default lexer.
type Option func(lx *DefaultLexer)

// SkipComments sets or clears mode-flag SkipComments. If cleared, comments are
// passed as tokens of type COMMENT.
func SkipComments(b bool) Option {
	return func(lx *DefaultLexer) {
		if b {
			lx.mode |= scanner.SkipComments
		} else {
			lx.mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat single chars as strings (raw strings always are).
func UnifyStrings(b bool) Option {
	return func(lx *DefaultLexer) {
		lx.unifyStrings = b
	}
}

// Operators declares multi-character operators, e.g. "**" or "<=". Without
// them, every non-alphanumeric character is a token of its own.
// Operators are matched greedily: a token is extended as long as it is the
// prefix of a declared operator, hence every prefix of length > 1 of an
// operator has to be an operator as well.
func Operators(ops ...string) Option {
	return func(lx *DefaultLexer) {
		lx.operators = append(lx.operators, ops...)
	}
}
