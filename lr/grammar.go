package lr

import (
	"fmt"
	"strings"
)

// StartRuleName is the LHS of the synthetic augmented start rule 0.
const StartRuleName = "$start"

// ConflictMode is a bitmask telling the analyzer how to resolve conflicts
// in the parse table.
type ConflictMode uint

// Conflict resolution flags. Without any flag set (ResolveNone), every conflict
// is an error.
const (
	ResolveNone          ConflictMode = 0
	ResolveShift         ConflictMode = 1 << 0 // prefer shift over reduce
	ResolveLongerReduce  ConflictMode = 1 << 1 // prefer the rule with more components
	ResolveEarlierReduce ConflictMode = 1 << 2 // prefer the rule declared first
	ResolveOperators     ConflictMode = 1 << 3 // use operator precedence and associativity
	ResolveAll                        = ResolveShift | ResolveLongerReduce | ResolveEarlierReduce | ResolveOperators
)

// DefaultConflictMode is used for grammars which do not set a mode explicitly.
const DefaultConflictMode = ResolveShift | ResolveOperators

func (m ConflictMode) String() string {
	if m == ResolveNone {
		return "NONE"
	}
	var names []string
	for _, f := range []struct {
		flag ConflictMode
		name string
	}{
		{ResolveShift, "SHIFT"},
		{ResolveLongerReduce, "LONGER_REDUCE"},
		{ResolveEarlierReduce, "EARLIER_REDUCE"},
		{ResolveOperators, "OPERATORS"},
	} {
		if m&f.flag != 0 {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}

// Assoc is the associativity of an operator.
type Assoc int

// Associativities for operators.
const (
	Left Assoc = iota
	Right
	NonAssoc
)

func (a Assoc) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	case NonAssoc:
		return "nonassoc"
	}
	return fmt.Sprintf("assoc(%d)", int(a))
}

// Operator holds precedence and associativity of an operator token.
type Operator struct {
	Precedence int
	Assoc      Assoc
}

// === Rules =================================================================

// Rule is a grammar production
//
//     LHS  ➞  RHS[0] … RHS[n-1]
//
// An empty RHS denotes an epsilon-production. Components which are not the LHS
// of any rule are terminals.
type Rule struct {
	Number  int      // rules are numbered in declaration order, 0 is the start rule
	LHS     string   // the non-terminal this rule produces
	RHS     []string // components, left to right
	prec    int
	hasPrec bool
}

// Precedence returns the explicit precedence of a rule, if set.
func (r *Rule) Precedence() (int, bool) {
	return r.prec, r.hasPrec
}

// Component returns the component at index i.
func (r *Rule) Component(i int) (string, bool) {
	if i < 0 || i >= len(r.RHS) {
		return "", false
	}
	return r.RHS[i], true
}

// Len returns the number of components of a rule.
func (r *Rule) Len() int {
	return len(r.RHS)
}

// IsEpsilon is true for rules with an empty RHS.
func (r *Rule) IsEpsilon() bool {
	return len(r.RHS) == 0
}

func (r *Rule) String() string {
	return fmt.Sprintf("%d. %s -> %s", r.Number, r.LHS, r.rhsString())
}

func (r *Rule) rhsString() string {
	if r.IsEpsilon() {
		return "/* empty */"
	}
	return strings.Join(r.RHS, " ")
}

// Callback is a semantic action for a rule. It receives the semantic values of
// the rule's components, left to right, and returns the value of the reduced
// non-terminal.
type Callback[V any] func(children []V) V

// === Grammar ===============================================================

// syntax carries everything the analyzer needs to know about a grammar.
// It is independent of the semantic value type.
type syntax struct {
	rules        []*Rule            // index = rule number, rules[0] is the start rule (may be nil)
	grouped      map[string][]*Rule // alternatives by LHS
	nonterminals []string           // LHS in order of first declaration
	terminals    []string           // terminals in order of first appearance
	operators    map[string]Operator
	mode         ConflictMode
}

// Grammar is an immutable context-free grammar, together with an operator
// table, a conflict resolution policy and semantic actions producing values of
// type V. Grammars are created by a GrammarBuilder.
type Grammar[V any] struct {
	Name string
	syntax
	callbacks map[int]Callback[V]
}

// Rule returns rule number n, or nil.
func (s *syntax) Rule(n int) *Rule {
	if n < 0 || n >= len(s.rules) {
		return nil
	}
	return s.rules[n]
}

// Rules returns all rules, ordered by number. The start rule is included, if set.
func (s *syntax) Rules() []*Rule {
	r := make([]*Rule, 0, len(s.rules))
	for _, rule := range s.rules {
		if rule != nil {
			r = append(r, rule)
		}
	}
	return r
}

// StartRule returns the augmented start rule.
func (s *syntax) StartRule() (*Rule, error) {
	if len(s.rules) == 0 || s.rules[0] == nil {
		return nil, grammarError("no start rule specified")
	}
	return s.rules[0], nil
}

// Alternatives returns the rules for non-terminal name, in declaration order.
func (s *syntax) Alternatives(name string) []*Rule {
	return s.grouped[name]
}

// HasNonterminal is true if name is the LHS of at least one rule.
func (s *syntax) HasNonterminal(name string) bool {
	_, ok := s.grouped[name]
	return ok
}

// Nonterminals returns all non-terminals in order of declaration.
func (s *syntax) Nonterminals() []string {
	return append([]string(nil), s.nonterminals...)
}

// Terminals returns all terminals in order of first appearance within the rules,
// preceded by EOF.
func (s *syntax) Terminals() []string {
	return append([]string(nil), s.terminals...)
}

// HasOperator is true if token has been declared as an operator.
func (s *syntax) HasOperator(token string) bool {
	_, ok := s.operators[token]
	return ok
}

// OperatorInfo returns precedence and associativity of an operator token.
func (s *syntax) OperatorInfo(token string) (Operator, bool) {
	op, ok := s.operators[token]
	return op, ok
}

// ConflictMode returns the conflict resolution policy of a grammar.
func (s *syntax) ConflictMode() ConflictMode {
	return s.mode
}

// rulePrecedence returns the precedence of a rule: either its explicit
// precedence or the one of its rightmost component declared as an operator.
func (s *syntax) rulePrecedence(r *Rule) (int, bool) {
	if p, ok := r.Precedence(); ok {
		return p, true
	}
	for i := len(r.RHS) - 1; i >= 0; i-- {
		if op, ok := s.operators[r.RHS[i]]; ok {
			return op.Precedence, true
		}
	}
	return 0, false
}

// Callback returns the semantic action for rule n, if any.
func (g *Grammar[V]) Callback(n int) (Callback[V], bool) {
	cb, ok := g.callbacks[n]
	return cb, ok
}

// Dump is a debugging helper, tracing all rules of the grammar.
func (g *Grammar[V]) Dump() {
	tracer().Debugf("--- grammar %s -------------------------", g.Name)
	for _, r := range g.Rules() {
		tracer().Debugf("%3d: %s ➞ %s", r.Number, r.LHS, r.rhsString())
	}
	for _, t := range g.terminals {
		if op, ok := g.operators[t]; ok {
			tracer().Debugf("     operator %q prec=%d %s", t, op.Precedence, op.Assoc)
		}
	}
	tracer().Debugf("-------------------------------------------")
}
