package lr

import (
	"fmt"

	"github.com/npillmayer/lalrkit"
)

// === Grammar Builder =======================================================

// GrammarBuilder is a builder type for grammars. It collects rules, operator
// declarations and semantic actions, and finally produces an immutable Grammar.
// Rule numbers are assigned in declaration order, starting at 1.
//
//     b := lr.NewGrammarBuilder[int]("Arith")
//     b.LHS("Expr").Is("Expr", "+", "Expr").Call(add).
//                   Is("INT").Call(atoi)
//     b.LHS("Expr").Is("-", "Expr").Prec(4).Call(negate)
//     b.Operators("+", "-").Left().Prec(1)
//     b.Start("Expr")
//     g, err := b.Grammar()
//
// Builder errors (e.g., a rule without a non-terminal name) are collected and
// reported by Grammar(). A builder is not safe for concurrent use.
type GrammarBuilder[V any] struct {
	name       string
	rules      []*Rule
	grouped    map[string][]*Rule
	order      []string
	operators  map[string]Operator
	callbacks  map[int]Callback[V]
	mode       ConflictMode
	nextNumber int
	errs       []error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder[V any](name string) *GrammarBuilder[V] {
	return &GrammarBuilder[V]{
		name:       name,
		rules:      []*Rule{nil}, // slot 0 is reserved for the start rule
		grouped:    make(map[string][]*Rule),
		operators:  make(map[string]Operator),
		callbacks:  make(map[int]Callback[V]),
		mode:       DefaultConflictMode,
		nextNumber: 1,
	}
}

func (b *GrammarBuilder[V]) fail(msg string, args ...interface{}) {
	err := grammarError(fmt.Sprintf(msg, args...))
	tracer().Errorf("%v", err)
	b.errs = append(b.errs, err)
}

// LHS starts the alternatives for a non-terminal. It returns a rule builder,
// scoped to this non-terminal.
func (b *GrammarBuilder[V]) LHS(nonterminal string) *RuleBuilder[V] {
	return &RuleBuilder[V]{gb: b, lhs: nonterminal}
}

// Start sets the start symbol of the grammar, creating rule 0: $start ➞ name.
func (b *GrammarBuilder[V]) Start(name string) *GrammarBuilder[V] {
	b.rules[0] = &Rule{Number: 0, LHS: StartRuleName, RHS: []string{name}}
	return b
}

// Resolve sets the conflict resolution mode.
func (b *GrammarBuilder[V]) Resolve(mode ConflictMode) *GrammarBuilder[V] {
	b.mode = mode
	return b
}

// Callback sets the semantic action for rule number n.
//
// Rules without a callback produce the value of their first component, or the
// zero value of V if they are epsilon-rules.
func (b *GrammarBuilder[V]) Callback(n int, cb Callback[V]) *GrammarBuilder[V] {
	if n <= 0 || n >= len(b.rules) {
		b.fail("cannot set callback for unknown rule %d", n)
		return b
	}
	b.callbacks[n] = cb
	return b
}

// Operators declares a group of operator tokens, with precedence 1 and
// left associativity. Re-declaring a token resets its entry. The returned group
// is used to adjust precedence and associativity of all tokens in it.
func (b *GrammarBuilder[V]) Operators(tokens ...string) *OperatorGroup[V] {
	for _, t := range tokens {
		b.operators[t] = Operator{Precedence: 1, Assoc: Left}
	}
	return &OperatorGroup[V]{gb: b, tokens: tokens}
}

func (b *GrammarBuilder[V]) addRule(lhs string, components []string) *Rule {
	r := &Rule{
		Number: b.nextNumber,
		LHS:    lhs,
		RHS:    append([]string(nil), components...),
	}
	b.nextNumber++
	b.rules = append(b.rules, r)
	if _, ok := b.grouped[lhs]; !ok {
		b.order = append(b.order, lhs)
	}
	b.grouped[lhs] = append(b.grouped[lhs], r)
	return r
}

// Grammar returns the grammar built so far, or the first error occurred during
// building. The builder may be used further, but subsequent changes will not
// affect grammars already returned.
func (b *GrammarBuilder[V]) Grammar() (*Grammar[V], error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	g := &Grammar[V]{
		Name:      b.name,
		callbacks: make(map[int]Callback[V], len(b.callbacks)),
	}
	g.rules = make([]*Rule, len(b.rules))
	g.grouped = make(map[string][]*Rule, len(b.grouped))
	for i, r := range b.rules {
		if r == nil {
			continue
		}
		c := *r
		c.RHS = append([]string(nil), r.RHS...)
		g.rules[i] = &c
		if i > 0 {
			g.grouped[c.LHS] = append(g.grouped[c.LHS], &c)
		}
	}
	g.nonterminals = append([]string(nil), b.order...)
	g.terminals = []string{lalrkit.EOF}
	seen := map[string]bool{lalrkit.EOF: true}
	for _, r := range g.rules[1:] {
		for _, c := range r.RHS {
			if _, isNT := g.grouped[c]; !isNT && !seen[c] {
				seen[c] = true
				g.terminals = append(g.terminals, c)
			}
		}
	}
	g.operators = make(map[string]Operator, len(b.operators))
	for t, op := range b.operators {
		g.operators[t] = op
	}
	for n, cb := range b.callbacks {
		g.callbacks[n] = cb
	}
	g.mode = b.mode
	return g, nil
}

// --- Rule builder ----------------------------------------------------------

// RuleBuilder adds alternatives for a non-terminal and decorates the most
// recently added one.
type RuleBuilder[V any] struct {
	gb   *GrammarBuilder[V]
	lhs  string
	rule *Rule // most recent alternative
}

// Is adds an alternative for the builder's non-terminal. Calling it without
// components adds an epsilon-production.
func (rb *RuleBuilder[V]) Is(components ...string) *RuleBuilder[V] {
	if rb.lhs == "" {
		rb.gb.fail("you must specify a name of the rule first")
		return rb
	}
	rb.rule = rb.gb.addRule(rb.lhs, components)
	tracer().Debugf("rule %s", rb.rule)
	return rb
}

// Epsilon adds an epsilon-production for the builder's non-terminal.
func (rb *RuleBuilder[V]) Epsilon() *RuleBuilder[V] {
	return rb.Is()
}

// Call sets the semantic action of the most recent alternative.
func (rb *RuleBuilder[V]) Call(cb Callback[V]) *RuleBuilder[V] {
	if rb.rule == nil {
		rb.gb.fail("you must specify a rule first")
		return rb
	}
	rb.gb.callbacks[rb.rule.Number] = cb
	return rb
}

// Prec sets an explicit precedence for the most recent alternative. It overrides
// the precedence the rule would inherit from its rightmost operator.
func (rb *RuleBuilder[V]) Prec(p int) *RuleBuilder[V] {
	if rb.rule == nil {
		rb.gb.fail("define a group of operators or a rule first")
		return rb
	}
	rb.rule.prec, rb.rule.hasPrec = p, true
	return rb
}

// Number returns the number of the most recent alternative, or -1.
func (rb *RuleBuilder[V]) Number() int {
	if rb.rule == nil {
		return -1
	}
	return rb.rule.Number
}

// --- Operator groups -------------------------------------------------------

// OperatorGroup sets precedence and associativity for a group of operator tokens.
type OperatorGroup[V any] struct {
	gb     *GrammarBuilder[V]
	tokens []string
}

// Left makes all operators of the group left-associative.
func (og *OperatorGroup[V]) Left() *OperatorGroup[V] {
	return og.Assoc(Left)
}

// Right makes all operators of the group right-associative.
func (og *OperatorGroup[V]) Right() *OperatorGroup[V] {
	return og.Assoc(Right)
}

// NonAssoc makes all operators of the group non-associative.
func (og *OperatorGroup[V]) NonAssoc() *OperatorGroup[V] {
	return og.Assoc(NonAssoc)
}

// Assoc sets the associativity of all operators of the group.
func (og *OperatorGroup[V]) Assoc(a Assoc) *OperatorGroup[V] {
	if len(og.tokens) == 0 {
		og.gb.fail("define a group of operators first")
		return og
	}
	for _, t := range og.tokens {
		op := og.gb.operators[t]
		op.Assoc = a
		og.gb.operators[t] = op
	}
	return og
}

// Prec sets the precedence of all operators of the group.
func (og *OperatorGroup[V]) Prec(p int) *OperatorGroup[V] {
	if len(og.tokens) == 0 {
		og.gb.fail("define a group of operators or a rule first")
		return og
	}
	for _, t := range og.tokens {
		op := og.gb.operators[t]
		op.Precedence = p
		og.gb.operators[t] = op
	}
	return og
}
