package lexmach

import (
	"errors"
	"testing"

	"github.com/npillmayer/lalrkit"
	"github.com/npillmayer/lalrkit/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"1",
	"1+12",
	"hello world",
	`x="mystring" // commented `,
	"(1,22,333)",
}

var tokenCounts = []int{1, 3, 2, 3, 5}

func lispLexer() *SimpleLexer {
	return NewSimpleLexer().
		Regex("COMMENT", `//[^\n]*\n?`).
		Regex("STRING", `\"[^"]*\"`).
		Regex("ID", `([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*`).
		Regex("NUM", `[1-9][0-9]*`).
		Regex("WS", `( |\,|\t|\n|\r)+`).
		Token("(").Token(")").Token("=").Token("+").
		Skip("WS", "COMMENT")
}

func TestSimpleLexer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	lexer := lispLexer()
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		ts, err := lexer.Lex(input)
		if err != nil {
			t.Fatal(err)
		}
		count := 0
		for token := ts.Current(); token.Type() != lalrkit.EOF; token = ts.Current() {
			t.Logf(" %6s | %15s | @%3d", token.Type(), token.Value(), token.Line())
			ts.Next()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestSimpleLexerWalksThroughTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	lexer := NewSimpleLexer().
		Literal("A", "a").
		Token("(").
		Literal("B", "b").
		Token(")").
		Literal("C", "c").
		Regex("WS", `[ \n\t\r]+`).
		Skip("WS")
	ts, err := lexer.Lex("a (b)\r\n c")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Len() != 6 {
		t.Fatalf("expected 6 tokens including EOF, have %d", ts.Len())
	}
	if tok, _ := ts.Get(1); tok.Type() != "(" {
		t.Errorf("expected token 1 to be (, is %v", tok)
	}
	if tok, _ := ts.Get(3); tok.Line() != 1 {
		t.Errorf("expected token 3 to be on line 1, is on %d", tok.Line())
	}
	if tok, _ := ts.Get(4); tok.Type() != "C" || tok.Line() != 2 {
		t.Errorf("expected token 4 to be C on line 2, is %v", tok)
	}
	if eof, _ := ts.Get(5); eof.Type() != lalrkit.EOF || eof.Line() != 2 {
		t.Errorf("expected EOF on line 2, is %v", eof)
	}
}

func TestSimpleLexerLongestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	lexer := NewSimpleLexer().
		Literal("CLASS", "class").
		Regex("WORD", "[a-z]+").
		Regex("WS", " +").
		Skip("WS")
	ts, err := lexer.Lex("class classloremipsum")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Current().Type() != "CLASS" {
		t.Errorf("expected first token to be CLASS, is %v", ts.Current())
	}
	if tok, _ := ts.LookAhead(1); tok.Type() != "WORD" {
		t.Errorf("expected second token to be WORD, is %v", tok)
	}
}

func TestSimpleLexerRecognitionError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	lexer := NewSimpleLexer().Regex("A", "a+").Regex("NL", `\n`)
	_, err := lexer.Lex("aa\naa\nab")
	var rerr *scanner.RecognitionError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected recognition error, have %v", err)
	}
	if rerr.Line != 3 {
		t.Errorf("expected error at line 3, is at line %d", rerr.Line)
	}
}

func statefulLexer() *StatefulLexer {
	lexer := NewStatefulLexer()
	lexer.State("root").
		Regex("WORD", "[a-z]+").
		Regex("WS", `[ \r\n\t]+`).
		Token(`"`).Push("string").
		Skip("WS")
	lexer.State("string").
		Regex("STRING_CONTENTS", `(\\"|[^"])+`).
		Token(`"`).Pop()
	lexer.Start("root")
	return lexer
}

func TestStatefulLexerPushPop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	ts, err := statefulLexer().Lex(`foo bar "long \" string" baz quux`)
	if err != nil {
		t.Fatal(err)
	}
	if ts.Len() != 8 {
		t.Fatalf("expected 8 tokens, have %d", ts.Len())
	}
	if tok, _ := ts.Get(3); tok.Type() != "STRING_CONTENTS" || tok.Value() != `long \" string` {
		t.Errorf("expected string contents, have %v", tok)
	}
	if tok, _ := ts.Get(6); tok.Value() != "quux" {
		t.Errorf("expected token 6 to be quux, is %v", tok)
	}
}

func TestStatefulLexerDefaultIsNop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	lexer := NewStatefulLexer()
	lexer.State("root").
		Regex("WORD", "[a-z]+").
		Regex("WS", `[ \r\n\t]+`).
		Skip("WS")
	lexer.State("string").Regex("X", "x")
	lexer.Start("root")
	ts, err := lexer.Lex("foo bar")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Len() != 3 {
		t.Errorf("expected 3 tokens, have %d", ts.Len())
	}
}

func TestStatefulLexerErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.scanner")
	defer teardown()
	//
	lexer := NewStatefulLexer()
	lexer.Regex("WORD", "[a-z]+")
	if _, err := lexer.Lex("foo"); err == nil {
		t.Errorf("expected token definition without state to fail")
	}
	lexer = NewStatefulLexer()
	lexer.State("root").Regex("WORD", "[a-z]+")
	if _, err := lexer.Lex("foo"); err == nil {
		t.Errorf("expected lexing without start state to fail")
	}
	lexer = NewStatefulLexer()
	lexer.State("root").Pop()
	if _, err := lexer.Start("root").Lex("foo"); err == nil {
		t.Errorf("expected action without token type to fail")
	}
	lexer = NewStatefulLexer()
	lexer.State("root").Token("(").Push("nested")
	if _, err := lexer.Start("root").Lex("("); err == nil {
		t.Errorf("expected push of an undefined state to fail")
	}
}
