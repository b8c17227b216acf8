package scanner

import (
	"errors"
	"fmt"

	"github.com/npillmayer/lalrkit"
)

// ErrOutOfRange is returned by token streams for access beyond their bounds.
var ErrOutOfRange = errors.New("token stream position out of range")

// RecognitionError is returned by lexers if no token can be extracted at the
// current position of the input.
type RecognitionError struct {
	Line int // line where recognition failed
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("Cannot extract another token at line %d.", e.Line)
}

// ArrayTokenStream is a token stream backed by a slice of tokens.
type ArrayTokenStream struct {
	tokens []lalrkit.Token
	pos    int
}

var _ lalrkit.TokenStream = (*ArrayTokenStream)(nil)

// NewTokenStream creates a token stream for a sequence of tokens. If the
// sequence does not end with an EOF token, one is appended.
func NewTokenStream(tokens []lalrkit.Token) *ArrayTokenStream {
	toks := append([]lalrkit.Token(nil), tokens...)
	if len(toks) == 0 || toks[len(toks)-1].Type() != lalrkit.EOF {
		line := 1
		if len(toks) > 0 {
			line = toks[len(toks)-1].Line()
		}
		toks = append(toks, lalrkit.NewToken(lalrkit.EOF, "", line))
	}
	return &ArrayTokenStream{tokens: toks}
}

// Position is part of interface lalrkit.TokenStream.
func (ts *ArrayTokenStream) Position() int {
	return ts.pos
}

// Current is part of interface lalrkit.TokenStream.
func (ts *ArrayTokenStream) Current() lalrkit.Token {
	return ts.tokens[ts.pos]
}

// Get is part of interface lalrkit.TokenStream.
func (ts *ArrayTokenStream) Get(n int) (lalrkit.Token, error) {
	if !ts.valid(n) {
		return nil, fmt.Errorf("invalid index %d: %w", n, ErrOutOfRange)
	}
	return ts.tokens[n], nil
}

// LookAhead is part of interface lalrkit.TokenStream.
func (ts *ArrayTokenStream) LookAhead(n int) (lalrkit.Token, error) {
	if !ts.valid(ts.pos + n) {
		return nil, fmt.Errorf("invalid look-ahead %d: %w", n, ErrOutOfRange)
	}
	return ts.tokens[ts.pos+n], nil
}

// Move is part of interface lalrkit.TokenStream.
func (ts *ArrayTokenStream) Move(n int) error {
	if !ts.valid(n) {
		return fmt.Errorf("invalid index %d to move to: %w", n, ErrOutOfRange)
	}
	ts.pos = n
	return nil
}

// Seek is part of interface lalrkit.TokenStream.
func (ts *ArrayTokenStream) Seek(n int) error {
	if !ts.valid(ts.pos + n) {
		return fmt.Errorf("invalid seek %d: %w", n, ErrOutOfRange)
	}
	ts.pos += n
	return nil
}

// Next is part of interface lalrkit.TokenStream.
func (ts *ArrayTokenStream) Next() error {
	if !ts.valid(ts.pos + 1) {
		return fmt.Errorf("attempting to move beyond the end of the stream: %w", ErrOutOfRange)
	}
	ts.pos++
	return nil
}

// Len is part of interface lalrkit.TokenStream.
func (ts *ArrayTokenStream) Len() int {
	return len(ts.tokens)
}

// Tokens returns all tokens of the stream, including the final EOF.
func (ts *ArrayTokenStream) Tokens() []lalrkit.Token {
	return append([]lalrkit.Token(nil), ts.tokens...)
}

func (ts *ArrayTokenStream) valid(n int) bool {
	return n >= 0 && n < len(ts.tokens)
}
