package lexmach

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/lalrkit"
	"github.com/npillmayer/lalrkit/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'lalrkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lalrkit.scanner")
}

// Actions a token may trigger in a stateful lexer.
const (
	noAction = iota
	pushState
	popState
)

// machine is a DFA for a set of token types, compiled by lexmachine.
// Token types are matched by longest match; on equal length the type declared
// first wins.
type machine struct {
	types    []string
	patterns [][]byte
	actions  []int
	targets  []string // states to push
	skip     map[string]bool
	lexer    *lexmachine.Lexer
}

func newMachine() *machine {
	return &machine{skip: make(map[string]bool)}
}

// add declares a token type. Re-declaring a type replaces its pattern but
// keeps its position.
func (m *machine) add(typ string, pattern []byte) int {
	m.lexer = nil
	for i, t := range m.types {
		if t == typ {
			m.patterns[i] = pattern
			m.actions[i], m.targets[i] = noAction, ""
			return i
		}
	}
	m.types = append(m.types, typ)
	m.patterns = append(m.patterns, pattern)
	m.actions = append(m.actions, noAction)
	m.targets = append(m.targets, "")
	return len(m.types) - 1
}

func (m *machine) compile() error {
	if m.lexer != nil {
		return nil
	}
	if len(m.types) == 0 {
		return errors.New("lexer has no token definitions")
	}
	lexer := lexmachine.NewLexer()
	for i, pattern := range m.patterns {
		lexer.Add(pattern, makeToken(i))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return err
	}
	m.lexer = lexer
	return nil
}

// makeToken is an action which wraps a scanned match into a token, carrying
// the index of its token type.
func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// literal creates a pattern matching text literally.
func literal(text string) []byte {
	var b bytes.Buffer
	for _, r := range text {
		if r < unicode.MaxASCII && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.Bytes()
}

// --- Lexing ----------------------------------------------------------------

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// run holds the state of a single lexing run.
type run struct {
	text     []byte
	pos      int // text position of the next token
	line     int // line of pos
	scanners map[*machine]*lexmachine.Scanner
	tokens   []lalrkit.Token
}

func newRun(input string) *run {
	return &run{
		text:     []byte(lineEndings.Replace(input)),
		line:     1,
		scanners: make(map[*machine]*lexmachine.Scanner),
	}
}

func (r *run) advance(to int) {
	r.line += bytes.Count(r.text[r.pos:to], []byte{'\n'})
	r.pos = to
}

// next scans the next token with the DFA of m. It returns the index of the
// token type and the lexeme, or -1 at the end of input.
func (r *run) next(m *machine) (int, string, error) {
	s, ok := r.scanners[m]
	if !ok {
		var err error
		if s, err = m.lexer.Scanner(r.text); err != nil {
			return -1, "", err
		}
		r.scanners[m] = s
	}
	s.TC = r.pos
	tok, err, eos := s.Next()
	if err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			r.advance(ui.StartTC)
			tracer().Errorf("cannot extract token at line %d", r.line)
			return -1, "", &scanner.RecognitionError{Line: r.line}
		}
		return -1, "", err
	}
	if eos {
		return -1, "", nil
	}
	token := tok.(*lexmachine.Token)
	lexeme := string(token.Lexeme)
	if len(lexeme) == 0 {
		return -1, "", &scanner.RecognitionError{Line: r.line}
	}
	r.advance(token.TC)
	return token.Type, lexeme, nil
}

// emit appends a token found at the current position and advances over it.
func (r *run) emit(typ, lexeme string, skip bool) {
	if !skip {
		r.tokens = append(r.tokens, lalrkit.NewToken(typ, lexeme, r.line))
	}
	r.advance(r.pos + len(lexeme))
}

func (r *run) stream() lalrkit.TokenStream {
	r.tokens = append(r.tokens, lalrkit.NewToken(lalrkit.EOF, "", r.line))
	tracer().Debugf("lexer produced %d tokens", len(r.tokens))
	return scanner.NewTokenStream(r.tokens)
}

// === Simple Lexer ==========================================================

// SimpleLexer is a lexer matching a single set of token definitions.
// Create one with NewSimpleLexer and add token definitions:
//
//     lx := lexmach.NewSimpleLexer().
//         Token("(").Token(")").
//         Literal("CLASS", "class").
//         Regex("WORD", "[a-z]+").
//         Regex("WS", "[ \t\n]+").
//         Skip("WS")
//
// The longest match wins; of matches of equal length, the token type declared
// first wins.
type SimpleLexer struct {
	m *machine
}

var _ lalrkit.Lexer = (*SimpleLexer)(nil)

// NewSimpleLexer creates a lexer without token definitions.
func NewSimpleLexer() *SimpleLexer {
	return &SimpleLexer{m: newMachine()}
}

// Token declares a token type matching its own name literally.
func (lx *SimpleLexer) Token(typ string) *SimpleLexer {
	return lx.Literal(typ, typ)
}

// Literal declares a token type matching text literally.
func (lx *SimpleLexer) Literal(typ, text string) *SimpleLexer {
	lx.m.add(typ, literal(text))
	return lx
}

// Regex declares a token type matching a lexmachine regular expression.
func (lx *SimpleLexer) Regex(typ, re string) *SimpleLexer {
	lx.m.add(typ, []byte(re))
	return lx
}

// Skip sets the token types which will not be passed on to the token stream.
func (lx *SimpleLexer) Skip(types ...string) *SimpleLexer {
	lx.m.skip = make(map[string]bool, len(types))
	for _, t := range types {
		lx.m.skip[t] = true
	}
	return lx
}

// Lex is part of interface lalrkit.Lexer. It returns a *scanner.RecognitionError
// if the input contains text not matched by any token definition.
func (lx *SimpleLexer) Lex(input string) (lalrkit.TokenStream, error) {
	if err := lx.m.compile(); err != nil {
		return nil, err
	}
	r := newRun(input)
	for {
		id, lexeme, err := r.next(lx.m)
		if err != nil {
			return nil, err
		}
		if id < 0 {
			break
		}
		typ := lx.m.types[id]
		r.emit(typ, lexeme, lx.m.skip[typ])
	}
	return r.stream(), nil
}

// === Stateful Lexer ========================================================

// StatefulLexer is a lexer with a stack of named states, each having its own
// set of token definitions. Tokens may push a new state onto the stack or pop
// the current one:
//
//     lx := lexmach.NewStatefulLexer()
//     lx.State("root").
//         Regex("WORD", "[a-z]+").
//         Regex("WS", "[ \t\n]+").
//         Token(`"`).Push("string").
//         Skip("WS")
//     lx.State("string").
//         Regex("STRING_CONTENTS", `(\\"|[^"])+`).
//         Token(`"`).Pop()
//     lx.Start("root")
//
// Skipping is decided by the state a token has been recognized in.
// Definition errors are collected and reported by Lex.
type StatefulLexer struct {
	states   map[string]*machine
	current  *machine // state being built
	lastType int      // most recent token type of current, or -1
	start    string
	errs     []error
}

var _ lalrkit.Lexer = (*StatefulLexer)(nil)

// NewStatefulLexer creates a lexer without any states.
func NewStatefulLexer() *StatefulLexer {
	return &StatefulLexer{
		states:   make(map[string]*machine),
		lastType: -1,
	}
}

func (lx *StatefulLexer) fail(msg string) {
	tracer().Errorf("%s", msg)
	lx.errs = append(lx.errs, errors.New(msg))
}

// State starts the definition of a lexer state. Re-defining a state discards
// its previous definitions.
func (lx *StatefulLexer) State(name string) *StatefulLexer {
	lx.current = newMachine()
	lx.states[name] = lx.current
	lx.lastType = -1
	return lx
}

// Start sets the initial state for lexing.
func (lx *StatefulLexer) Start(name string) *StatefulLexer {
	lx.start = name
	return lx
}

// Token declares a token type for the current state, matching its own name
// literally.
func (lx *StatefulLexer) Token(typ string) *StatefulLexer {
	return lx.Literal(typ, typ)
}

// Literal declares a token type for the current state, matching text literally.
func (lx *StatefulLexer) Literal(typ, text string) *StatefulLexer {
	return lx.define(typ, literal(text))
}

// Regex declares a token type for the current state, matching a lexmachine
// regular expression.
func (lx *StatefulLexer) Regex(typ, re string) *StatefulLexer {
	return lx.define(typ, []byte(re))
}

func (lx *StatefulLexer) define(typ string, pattern []byte) *StatefulLexer {
	if lx.current == nil {
		lx.fail("define a lexer state first")
		return lx
	}
	lx.lastType = lx.current.add(typ, pattern)
	return lx
}

// Skip sets the token types of the current state which will not be passed on
// to the token stream.
func (lx *StatefulLexer) Skip(types ...string) *StatefulLexer {
	if lx.current == nil {
		lx.fail("define a lexer state first")
		return lx
	}
	lx.current.skip = make(map[string]bool, len(types))
	for _, t := range types {
		lx.current.skip[t] = true
	}
	return lx
}

// Push makes the most recent token type enter state name.
func (lx *StatefulLexer) Push(name string) *StatefulLexer {
	return lx.action(pushState, name)
}

// Pop makes the most recent token type return to the previous state.
func (lx *StatefulLexer) Pop() *StatefulLexer {
	return lx.action(popState, "")
}

func (lx *StatefulLexer) action(act int, target string) *StatefulLexer {
	if lx.current == nil || lx.lastType < 0 {
		lx.fail("define a lexer state and type first")
		return lx
	}
	lx.current.actions[lx.lastType] = act
	lx.current.targets[lx.lastType] = target
	return lx
}

func (lx *StatefulLexer) prepare() error {
	if len(lx.errs) > 0 {
		return lx.errs[0]
	}
	if lx.start == "" {
		return errors.New("you must set a starting state before lexing")
	}
	if _, ok := lx.states[lx.start]; !ok {
		return fmt.Errorf("undefined start state %q", lx.start)
	}
	for name, m := range lx.states {
		for i, act := range m.actions {
			if _, ok := lx.states[m.targets[i]]; act == pushState && !ok {
				return fmt.Errorf("token %q of state %q enters undefined state %q",
					m.types[i], name, m.targets[i])
			}
		}
		if err := m.compile(); err != nil {
			return fmt.Errorf("lexer state %q: %w", name, err)
		}
	}
	return nil
}

// Lex is part of interface lalrkit.Lexer. It returns a *scanner.RecognitionError
// if the input contains text not matched by any token definition of the
// current state.
func (lx *StatefulLexer) Lex(input string) (lalrkit.TokenStream, error) {
	if err := lx.prepare(); err != nil {
		return nil, err
	}
	r := newRun(input)
	stack := []*machine{lx.states[lx.start]}
	for {
		m := stack[len(stack)-1]
		id, lexeme, err := r.next(m)
		if err != nil {
			return nil, err
		}
		if id < 0 {
			break
		}
		typ := m.types[id]
		r.emit(typ, lexeme, m.skip[typ])
		switch m.actions[id] {
		case pushState:
			stack = append(stack, lx.states[m.targets[id]])
		case popState:
			if len(stack) == 1 {
				return nil, fmt.Errorf("token %q at line %d pops the start state", typ, r.line)
			}
			stack = stack[:len(stack)-1]
		}
	}
	return r.stream(), nil
}
