package lr

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/lalrkit"
)

// === Grammar Analysis ======================================================

// Analyze constructs the LALR(1) automaton for a grammar and synthesizes the
// parse table from it. Conflicts in the table are resolved as directed by the
// grammar's conflict mode; an unresolvable conflict aborts analysis with a
// *ShiftReduceConflictError or a *ReduceReduceConflictError.
//
// A grammar without a start rule, or with a start symbol which is not a
// non-terminal of the grammar, is rejected with a *GrammarError.
func Analyze[V any](g *Grammar[V]) (*AnalysisResult, error) {
	if g == nil {
		return nil, grammarError("grammar is nil")
	}
	return analyze(&g.syntax)
}

func analyze(g *syntax) (*AnalysisResult, error) {
	start, err := g.StartRule()
	if err != nil {
		tracer().Errorf("%v", err)
		return nil, err
	}
	if !g.HasNonterminal(start.RHS[0]) {
		err := grammarError(fmt.Sprintf("start symbol %q is not a non-terminal of the grammar", start.RHS[0]))
		tracer().Errorf("%v", err)
		return nil, err
	}
	an := newAnalyzer(g)
	an.computeFirstSets()
	an.buildAutomaton(start)
	an.pumpLookaheads()
	an.a.disconnect()
	table, conflicts, err := synthesize(g, an.a)
	if err != nil {
		return nil, err
	}
	tracer().Infof("LALR(1) analysis done: %d states, %d resolved conflicts",
		an.a.StateCount(), len(conflicts))
	return &AnalysisResult{
		automaton: an.a,
		table:     table,
		conflicts: conflicts,
	}, nil
}

// pumping is a spontaneously generated lookahead, recorded during closure and
// pumped into the item after the automaton is complete.
type pumping struct {
	item      ItemID
	lookahead string
}

type analyzer struct {
	g        *syntax
	a        *Automaton
	kernels  *KernelSet
	first    map[string]*treeset.Set // FIRST sets of non-terminals
	nullable map[string]bool
	pumpings []pumping
}

func newAnalyzer(g *syntax) *analyzer {
	return &analyzer{
		g:        g,
		a:        NewAutomaton(),
		kernels:  NewKernelSet(),
		first:    make(map[string]*treeset.Set),
		nullable: make(map[string]bool),
	}
}

// --- FIRST sets ------------------------------------------------------------

// computeFirstSets iterates to a fixpoint over all rules, computing FIRST and
// the nullable property for every non-terminal.
func (an *analyzer) computeFirstSets() {
	for _, nt := range an.g.nonterminals {
		an.first[nt] = treeset.NewWithStringComparator()
	}
	for changed := true; changed; {
		changed = false
		for _, r := range an.g.rules[1:] {
			f := an.first[r.LHS]
			size := f.Size()
			terms, nullable := an.firstOfSequence(r.RHS)
			for _, t := range terms {
				f.Add(t)
			}
			if f.Size() > size {
				changed = true
			}
			if nullable && !an.nullable[r.LHS] {
				an.nullable[r.LHS] = true
				changed = true
			}
		}
	}
	for _, nt := range an.g.nonterminals {
		tracer().Debugf("FIRST(%s) = %v, nullable=%v", nt, an.first[nt].Values(), an.nullable[nt])
	}
}

// firstOfSequence returns FIRST of a sequence of symbols, in sorted order, and
// whether the whole sequence is able to derive epsilon. An empty sequence is
// nullable.
func (an *analyzer) firstOfSequence(seq []string) ([]string, bool) {
	set := treeset.NewWithStringComparator()
	for _, sym := range seq {
		f, isNT := an.first[sym]
		if !isNT {
			set.Add(sym)
			return setToStrings(set), false
		}
		set.Add(f.Values()...)
		if !an.nullable[sym] {
			return setToStrings(set), false
		}
	}
	return setToStrings(set), true
}

func setToStrings(set *treeset.Set) []string {
	s := make([]string, 0, set.Size())
	for _, x := range set.Values() {
		s = append(s, x.(string))
	}
	return s
}

// --- Canonical collection --------------------------------------------------

// closure expands the kernel of a state. For every item
//
//     A ➞ α • B β
//
// items B ➞ • γ are added for all alternatives of B. The new items spontaneously
// receive FIRST(β) as lookahead. If β is nullable, the deriving item is
// connected to the new items, passing on its own lookahead.
func (an *analyzer) closure(s *State) {
	for i := 0; i < len(s.items); i++ {
		id := s.items[i]
		item := an.a.Item(id)
		B, ok := item.ActiveComponent()
		if !ok || !an.g.HasNonterminal(B) {
			continue
		}
		la, nullable := an.firstOfSequence(item.UnrecognizedComponents())
		for _, r := range an.g.Alternatives(B) {
			derived := an.a.AddItem(s, r, 0)
			if nullable {
				an.a.Connect(id, derived)
			}
			for _, t := range la {
				an.pumpings = append(an.pumpings, pumping{item: derived, lookahead: t})
			}
		}
	}
}

// buildAutomaton constructs the canonical collection of LR(0) item sets,
// breadth first, starting with the closure of $start ➞ • S. States sharing a
// kernel are merged (which makes the automaton LALR).
func (an *analyzer) buildAutomaton(start *Rule) {
	n, _ := an.kernels.Insert([]KernelPair{{start.Number, 0}})
	s0 := an.a.AddState(n)
	an.a.AddItem(s0, start, 0)
	s0.kernel = 1
	an.closure(s0)
	queue := []*State{s0}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		symbols, groups := an.groupByActiveComponent(s)
		for _, X := range symbols {
			items := groups[X]
			kernel := make([]KernelPair, len(items))
			for k, id := range items {
				item := an.a.Item(id)
				kernel[k] = KernelPair{item.rule.Number, item.dot + 1}
			}
			n, isNew := an.kernels.Insert(kernel)
			var dest *State
			if isNew {
				dest = an.a.AddState(n)
				for _, id := range items {
					item := an.a.Item(id)
					an.a.Connect(id, an.a.AddItem(dest, item.rule, item.dot+1))
				}
				dest.kernel = len(dest.items)
				an.closure(dest)
				queue = append(queue, dest)
				tracer().Debugf("goto(%d, %s) = new state %d", s.Number, X, n)
			} else {
				dest = an.a.states[n]
				for _, id := range items {
					item := an.a.Item(id)
					advanced, _ := dest.Get(item.rule.Number, item.dot+1)
					an.a.Connect(id, advanced)
				}
				tracer().Debugf("goto(%d, %s) = state %d", s.Number, X, n)
			}
			an.a.AddTransition(s.Number, X, dest.Number)
		}
	}
}

// groupByActiveComponent collects the non-reduce items of a state by the symbol
// after the dot. Symbols are returned in order of their first appearance.
func (an *analyzer) groupByActiveComponent(s *State) ([]string, map[string][]ItemID) {
	var symbols []string
	groups := make(map[string][]ItemID)
	for _, id := range s.items {
		X, ok := an.a.Item(id).ActiveComponent()
		if !ok {
			continue
		}
		if _, seen := groups[X]; !seen {
			symbols = append(symbols, X)
		}
		groups[X] = append(groups[X], id)
	}
	return symbols, groups
}

// pumpLookaheads pumps EOF into the start item and then all the lookaheads
// recorded during closure. Propagation along the connections established
// during construction does the rest.
func (an *analyzer) pumpLookaheads() {
	startItem, _ := an.a.states[0].Get(0, 0)
	count := an.a.Pump(startItem, lalrkit.EOF)
	for _, p := range an.pumpings {
		count += an.a.Pump(p.item, p.lookahead)
	}
	tracer().Debugf("pumped %d lookaheads", count)
}
