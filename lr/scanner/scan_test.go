package scanner

import (
	"errors"
	"testing"

	"github.com/npillmayer/lalrkit"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestGoLexer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	lexer := GoLexer()
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		ts, err := lexer.Lex(input)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for token := ts.Current(); token.Type() != lalrkit.EOF; token = ts.Current() {
			t.Logf(" %6s | %15s | @%3d", token.Type(), token.Value(), token.Line())
			if err := ts.Next(); err != nil {
				t.Fatal(err)
			}
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestGoLexerTokenTypes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	lexer := GoLexer(Operators("**", "<="), SkipComments(false), UnifyStrings(true))
	ts, err := lexer.Lex("x <= 2 ** 1.5 // c\r\n'a' \"s\"")
	if err != nil {
		t.Fatal(err)
	}
	expected := []struct {
		typ, value string
		line       int
	}{
		{Ident, "x", 1},
		{"<=", "<=", 1},
		{Int, "2", 1},
		{"**", "**", 1},
		{Float, "1.5", 1},
		{Comment, "// c", 1},
		{String, "'a'", 2},
		{String, `"s"`, 2},
		{lalrkit.EOF, "", 2},
	}
	if ts.Len() != len(expected) {
		t.Fatalf("expected %d tokens, have %d", len(expected), ts.Len())
	}
	for i, e := range expected {
		tok, _ := ts.Get(i)
		if tok.Type() != e.typ || tok.Value() != e.value || tok.Line() != e.line {
			t.Errorf("token %d: expected %s %q @%d, have %v", i, e.typ, e.value, e.line, tok)
		}
	}
}

func TestGoLexerError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	_, err := GoLexer().Lex("a\nb\n\"unterminated")
	var rerr *RecognitionError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected a recognition error, have %v", err)
	}
	if rerr.Line != 3 {
		t.Errorf("expected error at line 3, is at line %d", rerr.Line)
	}
}

func TestArrayTokenStream(t *testing.T) {
	ts := NewTokenStream([]lalrkit.Token{
		lalrkit.NewToken("a", "a", 1),
		lalrkit.NewToken("b", "b", 1),
		lalrkit.NewToken("c", "c", 2),
	})
	if ts.Len() != 4 {
		t.Fatalf("expected EOF to be appended, length is %d", ts.Len())
	}
	if eof, _ := ts.Get(3); eof.Type() != lalrkit.EOF || eof.Line() != 2 {
		t.Errorf("expected EOF at line 2, is %v", eof)
	}
	if tok, err := ts.LookAhead(2); err != nil || tok.Type() != "c" {
		t.Errorf("expected look-ahead of 2 to be c, is %v", tok)
	}
	if err := ts.Seek(2); err != nil || ts.Position() != 2 {
		t.Errorf("expected seek to position 2, is at %d", ts.Position())
	}
	if err := ts.Move(1); err != nil || ts.Current().Type() != "b" {
		t.Errorf("expected move to b, current is %v", ts.Current())
	}
	if err := ts.Next(); err != nil || ts.Current().Type() != "c" {
		t.Errorf("expected next token to be c, is %v", ts.Current())
	}
	ts.Next()
	for i, err := range []error{
		ts.Next(),
		ts.Move(4),
		ts.Seek(-4),
		func() error { _, err := ts.Get(-1); return err }(),
		func() error { _, err := ts.LookAhead(1); return err }(),
	} {
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("case %d: expected out of range error, have %v", i, err)
		}
	}
	if ts.Current().Type() != lalrkit.EOF {
		t.Errorf("expected failed moves to leave cursor at EOF")
	}
}
