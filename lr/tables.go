package lr

import (
	"fmt"
	"io"

	"github.com/npillmayer/lalrkit"
	"github.com/npillmayer/lalrkit/lr/sparse"
)

// === Parse Tables ==========================================================

// ParseTable holds the ACTION and GOTO tables of an LALR(1) parser.
//
// ACTION entries are encoded as integers: a positive value n denotes a shift
// to state n, a negative value -n a reduction by rule n, and 0 means accept.
// GOTO entries are state numbers.
//
// Columns of the ACTION table are ordered as the grammar's terminals (EOF
// first, then terminals in order of their first appearance within the rules),
// columns of the GOTO table as the non-terminals in order of declaration.
type ParseTable struct {
	terminals    []string
	nonterminals []string
	tcol         map[string]int
	ncol         map[string]int
	action       *sparse.IntMatrix
	gotos        *sparse.IntMatrix
}

func newParseTable(states int, terminals, nonterminals []string) *ParseTable {
	t := &ParseTable{
		terminals:    append([]string(nil), terminals...),
		nonterminals: append([]string(nil), nonterminals...),
		tcol:         make(map[string]int, len(terminals)),
		ncol:         make(map[string]int, len(nonterminals)),
		action:       sparse.NewIntMatrix(states, len(terminals), sparse.DefaultNullValue),
		gotos:        sparse.NewIntMatrix(states, len(nonterminals), sparse.DefaultNullValue),
	}
	for j, a := range t.terminals {
		t.tcol[a] = j
	}
	for j, A := range t.nonterminals {
		t.ncol[A] = j
	}
	return t
}

// Action returns the ACTION entry for a state and a terminal.
func (t *ParseTable) Action(state int, terminal string) (int, bool) {
	j, ok := t.tcol[terminal]
	if !ok || state < 0 || state >= t.action.M() || !t.action.Has(state, j) {
		return 0, false
	}
	return int(t.action.Value(state, j)), true
}

// Goto returns the GOTO entry for a state and a non-terminal.
func (t *ParseTable) Goto(state int, nonterminal string) (int, bool) {
	j, ok := t.ncol[nonterminal]
	if !ok || state < 0 || state >= t.gotos.M() || !t.gotos.Has(state, j) {
		return 0, false
	}
	return int(t.gotos.Value(state, j)), true
}

// Expected returns the terminals having an ACTION entry in a state, in column
// order.
func (t *ParseTable) Expected(state int) []string {
	var exp []string
	if state < 0 || state >= t.action.M() {
		return exp
	}
	t.action.EachInRow(state, func(j int, _ int32) {
		exp = append(exp, t.terminals[j])
	})
	return exp
}

// StateCount returns the number of rows of the tables.
func (t *ParseTable) StateCount() int {
	return t.action.M()
}

// Terminals returns the column symbols of the ACTION table.
func (t *ParseTable) Terminals() []string {
	return append([]string(nil), t.terminals...)
}

// Nonterminals returns the column symbols of the GOTO table.
func (t *ParseTable) Nonterminals() []string {
	return append([]string(nil), t.nonterminals...)
}

// Actions returns the ACTION table as a nested map state → terminal → action.
// States without any action are omitted.
func (t *ParseTable) Actions() map[int]map[string]int {
	return asNestedMap(t.action, t.terminals)
}

// Gotos returns the GOTO table as a nested map state → non-terminal → state.
// States without any GOTO entry are omitted.
func (t *ParseTable) Gotos() map[int]map[string]int {
	return asNestedMap(t.gotos, t.nonterminals)
}

func asNestedMap(m *sparse.IntMatrix, columns []string) map[int]map[string]int {
	r := make(map[int]map[string]int)
	m.Each(func(i, j int, v int32) {
		row, ok := r[i]
		if !ok {
			row = make(map[string]int)
			r[i] = row
		}
		row[columns[j]] = int(v)
	})
	return r
}

func (t *ParseTable) setAction(state int, terminal string, action int) {
	t.action.Set(state, t.tcol[terminal], int32(action))
}

func (t *ParseTable) setGoto(state int, nonterminal string, dest int) {
	t.gotos.Set(state, t.ncol[nonterminal], int32(dest))
}

// ActionString is a short helper to stringify an ACTION table entry.
func ActionString(action int) string {
	switch {
	case action > 0:
		return fmt.Sprintf("<shift %d>", action)
	case action < 0:
		return fmt.Sprintf("<reduce %d>", -action)
	}
	return "<accept>"
}

// TableAsHTML exports the ACTION and GOTO tables in HTML format.
func (t *ParseTable) TableAsHTML(w io.Writer) error {
	var err error
	write := func(s string) {
		if err == nil {
			_, err = io.WriteString(w, s)
		}
	}
	write("<html><body>\n")
	write(fmt.Sprintf("parse table with %d entries<p>", t.action.ValueCount()+t.gotos.ValueCount()))
	write("<table border=1 cellspacing=0 cellpadding=5>\n")
	write("<tr bgcolor=#cccccc><td></td>\n")
	for _, a := range t.terminals {
		write(fmt.Sprintf("<td>%s</td>", a))
	}
	for _, A := range t.nonterminals {
		write(fmt.Sprintf("<td><i>%s</i></td>", A))
	}
	write("</tr>\n")
	for i := 0; i < t.StateCount(); i++ {
		write(fmt.Sprintf("<tr><td>state %d</td>\n", i))
		for j := range t.terminals {
			td := "&nbsp;"
			if t.action.Has(i, j) {
				td = fmt.Sprintf("%d", t.action.Value(i, j))
			}
			write("<td>" + td + "</td>\n")
		}
		for j := range t.nonterminals {
			td := "&nbsp;"
			if t.gotos.Has(i, j) {
				td = fmt.Sprintf("%d", t.gotos.Value(i, j))
			}
			write("<td>" + td + "</td>\n")
		}
		write("</tr>\n")
	}
	write("</table></body></html>\n")
	return err
}

// === Analysis Result =======================================================

// AnalysisResult bundles the outcome of grammar analysis: the automaton, the
// parse table and the log of conflicts resolved on the way.
// An AnalysisResult is immutable and may be shared between parsers.
type AnalysisResult struct {
	automaton *Automaton
	table     *ParseTable
	conflicts []Conflict
}

// NewAnalysisResult wraps a parse table which has not been created by Analyze,
// e.g., one read with ReadTable. The automaton of such a result is nil.
func NewAnalysisResult(table *ParseTable) *AnalysisResult {
	return &AnalysisResult{table: table}
}

// Automaton returns the LALR(1) automaton, intended for diagnostics.
func (r *AnalysisResult) Automaton() *Automaton {
	return r.automaton
}

// Table returns the parse table.
func (r *AnalysisResult) Table() *ParseTable {
	return r.table
}

// ResolvedConflicts returns the conflicts which have been resolved according
// to the grammar's conflict mode, in order of resolution.
func (r *AnalysisResult) ResolvedConflicts() []Conflict {
	return append([]Conflict(nil), r.conflicts...)
}

// === Table Synthesis =======================================================

type synthesizer struct {
	g         *syntax
	a         *Automaton
	t         *ParseTable
	conflicts []Conflict
}

// synthesize creates the parse table from an automaton. Shift and GOTO entries
// are created from the transitions first; then, for every reduce item, reduce
// entries are created for each of its lookaheads. Colliding entries are
// subjected to conflict resolution.
func synthesize(g *syntax, a *Automaton) (*ParseTable, []Conflict, error) {
	syn := &synthesizer{
		g: g,
		a: a,
		t: newParseTable(a.StateCount(), g.terminals, g.nonterminals),
	}
	for _, s := range a.states {
		for _, e := range a.Transitions(s.Number) {
			if g.HasNonterminal(e.Label) {
				syn.t.setGoto(s.Number, e.Label, e.To)
			} else {
				syn.t.setAction(s.Number, e.Label, e.To)
			}
		}
	}
	for _, s := range a.states {
		tracer().Debugf("--- state %d --------------------------------", s.Number)
		for _, id := range s.items {
			item := a.Item(id)
			if !item.IsReduceItem() {
				continue
			}
			for _, la := range item.Lookahead() {
				if err := syn.reduce(s.Number, item.rule, la); err != nil {
					return nil, nil, err
				}
			}
		}
	}
	return syn.t, syn.conflicts, nil
}

// reduce enters a reduce (or accept) action for rule r on lookahead la.
func (syn *synthesizer) reduce(state int, r *Rule, la string) error {
	action := -r.Number // accept for the start rule
	existing, found := syn.t.Action(state, la)
	if !found {
		tracer().Debugf("    action(%d, %s) = %s", state, la, ActionString(action))
		syn.t.setAction(state, la, action)
		return nil
	}
	if existing == action {
		return nil
	}
	if existing > 0 {
		return syn.resolveShiftReduce(state, r, la, existing)
	}
	return syn.resolveReduceReduce(state, syn.g.rules[-existing], r, la)
}

// resolveShiftReduce decides between shifting la and reducing rule r.
func (syn *synthesizer) resolveShiftReduce(state int, r *Rule, la string, shift int) error {
	mode := syn.g.mode
	conflict := Conflict{Kind: ShiftReduce, State: state, Lookahead: la, Rule: r}
	if mode&ResolveOperators != 0 {
		if op, isOp := syn.g.OperatorInfo(la); isOp {
			if prec, ok := syn.g.rulePrecedence(r); ok {
				conflict.Resolution = ResolveOperators
				switch {
				case prec > op.Precedence:
					return syn.resolved(conflict, -r.Number)
				case prec < op.Precedence:
					return syn.resolved(conflict, shift)
				case op.Assoc == Left:
					return syn.resolved(conflict, -r.Number)
				case op.Assoc == Right:
					return syn.resolved(conflict, shift)
				}
				// equal precedence for a non-associative operator
				return syn.srConflict(state, r, la)
			}
		}
	}
	if mode&ResolveShift != 0 {
		conflict.Resolution = ResolveShift
		return syn.resolved(conflict, shift)
	}
	return syn.srConflict(state, r, la)
}

// resolveReduceReduce decides between rule r1, already in the table, and r2.
func (syn *synthesizer) resolveReduceReduce(state int, r1, r2 *Rule, la string) error {
	mode := syn.g.mode
	conflict := Conflict{Kind: ReduceReduce, State: state, Lookahead: la}
	if mode&ResolveLongerReduce != 0 && r1.Len() != r2.Len() {
		conflict.Resolution = ResolveLongerReduce
		if r1.Len() > r2.Len() {
			conflict.Rule, conflict.Other = r1, r2
		} else {
			conflict.Rule, conflict.Other = r2, r1
		}
		return syn.resolved(conflict, -conflict.Rule.Number)
	}
	if mode&ResolveEarlierReduce != 0 {
		conflict.Resolution = ResolveEarlierReduce
		if r1.Number < r2.Number {
			conflict.Rule, conflict.Other = r1, r2
		} else {
			conflict.Rule, conflict.Other = r2, r1
		}
		return syn.resolved(conflict, -conflict.Rule.Number)
	}
	err := &ReduceReduceConflictError{
		State:     state,
		Rule1:     r1,
		Rule2:     r2,
		Lookahead: la,
		Automaton: syn.a,
	}
	tracer().Errorf("%v", err)
	return err
}

func (syn *synthesizer) resolved(c Conflict, action int) error {
	c.Action = action
	syn.t.setAction(c.State, c.Lookahead, action)
	syn.conflicts = append(syn.conflicts, c)
	tracer().Infof("resolved %v", c)
	return nil
}

func (syn *synthesizer) srConflict(state int, r *Rule, la string) error {
	err := &ShiftReduceConflictError{
		State:     state,
		Rule:      r,
		Lookahead: la,
		Automaton: syn.a,
	}
	tracer().Errorf("%v", err)
	return err
}

// acceptState returns the state which accepts on EOF, or -1.
func (t *ParseTable) acceptState() int {
	j := t.tcol[lalrkit.EOF]
	for i := 0; i < t.StateCount(); i++ {
		if t.action.Has(i, j) && t.action.Value(i, j) == 0 {
			return i
		}
	}
	return -1
}
