package lalr

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lalrkit"
	"github.com/npillmayer/lalrkit/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalrkit.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lalrkit.lr")
}

// Parser is an LALR(1)-parser type. Create and initialize one with lalr.NewParser(...)
type Parser[V any] struct {
	g        *lr.Grammar[V]
	table    *lr.ParseTable
	terminal func(lalrkit.Token) V
}

// We store pairs of state numbers and semantic values on the parse stack.
type stackitem[V any] struct {
	state int
	value V
}

// Option configures a parser.
type Option[V any] func(p *Parser[V])

// TerminalValue sets a function to compute the semantic value of a shifted
// token. Without it, the token itself is used if it is assignable to V, and the
// zero value of V otherwise.
func TerminalValue[V any](f func(lalrkit.Token) V) Option[V] {
	return func(p *Parser[V]) {
		p.terminal = f
	}
}

// NewParser creates an LALR(1) parser for a grammar and the result of its
// analysis. Callbacks for reductions are taken from the grammar.
func NewParser[V any](g *lr.Grammar[V], result *lr.AnalysisResult, opts ...Option[V]) *Parser[V] {
	p := &Parser[V]{
		g:        g,
		table:    result.Table(),
		terminal: tokenValue[V],
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func tokenValue[V any](tok lalrkit.Token) V {
	if v, ok := any(tok).(V); ok {
		return v
	}
	var zero V
	return zero
}

// ParseString lexes an input string and parses the resulting token stream.
// Errors of the lexer are returned unchanged.
func (p *Parser[V]) ParseString(lexer lalrkit.Lexer, input string) (V, error) {
	ts, err := lexer.Lex(input)
	if err != nil {
		var zero V
		return zero, err
	}
	return p.Parse(ts)
}

// Parse parses a token stream, starting at the stream's current position.
// It returns the semantic value of the start symbol, or an
// *UnexpectedTokenError if the input is not a sentence of the grammar.
func (p *Parser[V]) Parse(ts lalrkit.TokenStream) (V, error) {
	var zero V
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.g == nil || p.table == nil {
		tracer().Errorf("LALR(1)-parser not initialized")
		return zero, fmt.Errorf("LALR(1)-parser not initialized")
	}
	stack := make([]stackitem[V], 1, 64) // bottom: state 0, no value
	for {
		token := ts.Current()
		tos := stack[len(stack)-1]
		action, ok := p.table.Action(tos.state, token.Type())
		if !ok {
			err := &UnexpectedTokenError{Token: token, Expected: p.table.Expected(tos.state)}
			tracer().Infof("%v", err)
			return zero, err
		}
		tracer().Debugf("action(%d, %s) = %s", tos.state, token.Type(), lr.ActionString(action))
		switch {
		case action > 0: // shift
			stack = append(stack, stackitem[V]{state: action, value: p.terminal(token)})
			if err := ts.Next(); err != nil {
				return zero, err
			}
		case action < 0: // reduce
			var err error
			if stack, err = p.reduce(stack, -action); err != nil {
				return zero, err
			}
		default: // accept
			return stack[len(stack)-1].value, nil
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn are represented on the stack by their values
//
//    [TOS]  Sn(Xn) ... S1(X1)  ...
//
// and are replaced by the value of LHS.
func (p *Parser[V]) reduce(stack []stackitem[V], n int) ([]stackitem[V], error) {
	rule := p.g.Rule(n)
	if rule == nil || len(stack) <= rule.Len() {
		return stack, fmt.Errorf("parse table does not fit grammar %s: cannot reduce rule %d", p.g.Name, n)
	}
	tracer().Debugf("reduce %v", rule)
	handle := stack[len(stack)-rule.Len():]
	children := make([]V, len(handle))
	for i, item := range handle {
		children[i] = item.value
	}
	stack = stack[:len(stack)-rule.Len()]
	value := p.semantic(rule, children)
	tos := stack[len(stack)-1]
	next, ok := p.table.Goto(tos.state, rule.LHS)
	if !ok {
		return stack, fmt.Errorf("parse table does not fit grammar %s: no GOTO(%d, %s)", p.g.Name, tos.state, rule.LHS)
	}
	return append(stack, stackitem[V]{state: next, value: value}), nil
}

// semantic calls the callback of a rule. Rules without callback produce the
// value of their first component, or the zero value for epsilon-rules.
func (p *Parser[V]) semantic(rule *lr.Rule, children []V) V {
	if cb, ok := p.g.Callback(rule.Number); ok && cb != nil {
		return cb(children)
	}
	if len(children) > 0 {
		return children[0]
	}
	var zero V
	return zero
}

// --- Errors ----------------------------------------------------------------

// UnexpectedTokenError is returned by a parser if the input contains a token
// which is not valid at its position.
type UnexpectedTokenError struct {
	Token    lalrkit.Token
	Expected []string // token types valid at the position of Token
}

func (e *UnexpectedTokenError) Error() string {
	expected := strings.Join(e.Expected, ", ")
	if e.Token.Type() == lalrkit.EOF {
		return fmt.Sprintf("Unexpected end of input at line %d. Expected one of %s.", e.Token.Line(), expected)
	}
	return fmt.Sprintf("Unexpected %s (%s) at line %d. Expected one of %s.",
		e.Token.Value(), e.Token.Type(), e.Token.Line(), expected)
}
