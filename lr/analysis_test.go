package lr

import (
	"errors"
	"reflect"
	"testing"

	"github.com/npillmayer/lalrkit"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S ➞ a S b | ε
func bracketGrammar(t *testing.T) *Grammar[int] {
	b := NewGrammarBuilder[int]("Brackets")
	b.LHS("S").Is("a", "S", "b").Is()
	b.Start("S")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// Expr ➞ Expr + Expr | Expr - Expr | Expr * Expr | Expr / Expr
//      | Expr ** Expr | ( Expr ) | - Expr | INT
func arithGrammar(t *testing.T, mode ConflictMode) *Grammar[int] {
	b := NewGrammarBuilder[int]("Arith")
	b.LHS("Expr").Is("Expr", "+", "Expr").
		Is("Expr", "-", "Expr").
		Is("Expr", "*", "Expr").
		Is("Expr", "/", "Expr").
		Is("Expr", "**", "Expr").
		Is("(", "Expr", ")")
	b.LHS("Expr").Is("-", "Expr").Prec(4)
	b.LHS("Expr").Is("INT")
	b.Operators("+", "-").Left().Prec(1)
	b.Operators("*", "/").Left().Prec(2)
	b.Operators("**").Right().Prec(3)
	b.Start("Expr").Resolve(mode)
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestBracketGrammarTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	tracing.Select("lalrkit.lr").SetTraceLevel(tracing.LevelDebug)
	result, err := Analyze(bracketGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	result.Automaton().Dump()
	actions := map[int]map[string]int{
		0: {"a": 2, lalrkit.EOF: -2},
		1: {lalrkit.EOF: 0},
		2: {"a": 2, "b": -2},
		3: {"b": 4},
		4: {lalrkit.EOF: -1, "b": -1},
	}
	gotos := map[int]map[string]int{
		0: {"S": 1},
		2: {"S": 3},
	}
	if a := result.Table().Actions(); !reflect.DeepEqual(a, actions) {
		t.Errorf("expected ACTION table\n%v\nhave\n%v", actions, a)
	}
	if g := result.Table().Gotos(); !reflect.DeepEqual(g, gotos) {
		t.Errorf("expected GOTO table\n%v\nhave\n%v", gotos, g)
	}
	if len(result.ResolvedConflicts()) != 0 {
		t.Errorf("did not expect conflicts, have %v", result.ResolvedConflicts())
	}
	if exp := result.Table().Expected(0); !reflect.DeepEqual(exp, []string{lalrkit.EOF, "a"}) {
		t.Errorf("expected [$eof a] to be valid in state 0, have %v", exp)
	}
}

func TestBracketGrammarAutomaton(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	result, err := Analyze(bracketGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	A := result.Automaton()
	if A.StateCount() != 5 {
		t.Fatalf("expected 5 states, have %d", A.StateCount())
	}
	if dest, ok := A.Transition(2, "a"); !ok || dest != 2 {
		t.Errorf("expected 2 -a-> 2, have %d", dest)
	}
	s4, _ := A.State(4)
	id, ok := s4.Get(1, 3)
	if !ok {
		t.Fatalf("expected item S ➞ a S b • in state 4")
	}
	if la := A.Item(id).Lookahead(); !reflect.DeepEqual(la, []string{lalrkit.EOF, "b"}) {
		t.Errorf("expected lookahead [$eof b], have %v", la)
	}
	if k := s4.Kernel(); len(k) != 1 {
		t.Errorf("expected kernel of state 4 to have size 1, is %d", len(k))
	}
}

func TestArithGrammarConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	result, err := Analyze(arithGrammar(t, DefaultConflictMode))
	if err != nil {
		t.Fatal(err)
	}
	conflicts := result.ResolvedConflicts()
	if len(conflicts) == 0 {
		t.Fatalf("expected conflicts to be resolved for an ambiguous grammar")
	}
	for _, c := range conflicts {
		if c.Kind != ShiftReduce || c.Resolution != ResolveOperators {
			t.Errorf("expected all conflicts to be resolved by operators, have %v", c)
		}
	}
}

func TestOperatorsResolveWithoutShift(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	if _, err := Analyze(arithGrammar(t, ResolveOperators)); err != nil {
		t.Errorf("expected operators to resolve all conflicts, have %v", err)
	}
}

func TestUnresolvedShiftReduce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	result, err := Analyze(arithGrammar(t, ResolveNone))
	if result != nil {
		t.Errorf("expected no result for a failed analysis")
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected a conflict, have %v", err)
	}
	var srerr *ShiftReduceConflictError
	if !errors.As(err, &srerr) {
		t.Fatalf("expected a shift/reduce conflict, have %v", err)
	}
	if srerr.Automaton == nil || srerr.Rule == nil {
		t.Errorf("expected conflict error to carry rule and automaton")
	}
	t.Logf("error = %v", err)
}

func TestShiftResolvesWithoutOperators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	result, err := Analyze(arithGrammar(t, ResolveShift))
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range result.ResolvedConflicts() {
		if c.Resolution != ResolveShift || c.Action <= 0 {
			t.Errorf("expected conflict to be resolved to a shift, is %v", c)
		}
	}
}

func TestNonAssocIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[int]("Compare")
	b.LHS("E").Is("E", "<", "E").Is("n")
	b.Operators("<").NonAssoc()
	b.Start("E")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	_, err = Analyze(g)
	var srerr *ShiftReduceConflictError
	if !errors.As(err, &srerr) {
		t.Fatalf("expected a shift/reduce conflict, have %v", err)
	}
	if srerr.Lookahead != "<" || srerr.Rule.Number != 1 {
		t.Errorf("expected conflict for rule 1 on '<', have rule %d on %q", srerr.Rule.Number, srerr.Lookahead)
	}
}

// S ➞ x A | B ;  B ➞ x y ;  A ➞ y
func reduceReduceGrammar(t *testing.T, mode ConflictMode) *Grammar[int] {
	b := NewGrammarBuilder[int]("RR")
	b.LHS("S").Is("x", "A").Is("B")
	b.LHS("B").Is("x", "y")
	b.LHS("A").Is("y")
	b.Start("S").Resolve(mode)
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestReduceReduce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	_, err := Analyze(reduceReduceGrammar(t, ResolveShift))
	var rrerr *ReduceReduceConflictError
	if !errors.As(err, &rrerr) {
		t.Fatalf("expected a reduce/reduce conflict, have %v", err)
	}
	if rrerr.Lookahead != lalrkit.EOF {
		t.Errorf("expected conflict on $eof, is on %q", rrerr.Lookahead)
	}
	for _, test := range []struct {
		mode   ConflictMode
		winner int
		loser  int
	}{
		{ResolveLongerReduce, 3, 4},
		{ResolveEarlierReduce, 3, 4},
		{ResolveAll, 3, 4},
	} {
		result, err := Analyze(reduceReduceGrammar(t, test.mode))
		if err != nil {
			t.Errorf("mode %s: %v", test.mode, err)
			continue
		}
		conflicts := result.ResolvedConflicts()
		if len(conflicts) != 1 {
			t.Errorf("mode %s: expected 1 resolved conflict, have %d", test.mode, len(conflicts))
			continue
		}
		c := conflicts[0]
		if c.Kind != ReduceReduce || c.Rule.Number != test.winner || c.Other.Number != test.loser {
			t.Errorf("mode %s: expected rule %d to win over %d, have %v", test.mode, test.winner, test.loser, c)
		}
		if act, _ := result.Table().Action(c.State, lalrkit.EOF); act != -test.winner {
			t.Errorf("mode %s: expected table entry %d, is %d", test.mode, -test.winner, act)
		}
	}
}

func TestEarlierReduce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[int]("RR")
	b.LHS("S").Is("A").Is("B")
	b.LHS("A").Is("x")
	b.LHS("B").Is("x")
	b.Start("S").Resolve(ResolveLongerReduce | ResolveEarlierReduce)
	g, _ := b.Grammar()
	result, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	c := result.ResolvedConflicts()
	if len(c) != 1 || c[0].Resolution != ResolveEarlierReduce || c[0].Rule.Number != 3 {
		t.Errorf("expected rule 3 to win by EARLIER_REDUCE, have %v", c)
	}
}

func TestMissingStartRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	b := NewGrammarBuilder[int]("G")
	b.LHS("S").Is("a")
	g, _ := b.Grammar()
	if _, err := Analyze(g); !errors.Is(err, ErrMalformedGrammar) {
		t.Errorf("expected malformed grammar error, have %v", err)
	}
	b.Start("T")
	g, _ = b.Grammar()
	if _, err := Analyze(g); !errors.Is(err, ErrMalformedGrammar) {
		t.Errorf("expected start symbol T to be rejected, have %v", err)
	}
}

func TestAnalysisIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	r1, err := Analyze(arithGrammar(t, DefaultConflictMode))
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Analyze(arithGrammar(t, DefaultConflictMode))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(r1.Table().Actions(), r2.Table().Actions()) {
		t.Errorf("expected identical ACTION tables")
	}
	if !reflect.DeepEqual(r1.Table().Gotos(), r2.Table().Gotos()) {
		t.Errorf("expected identical GOTO tables")
	}
	f1, err1 := r1.Table().Fingerprint()
	f2, err2 := r2.Table().Fingerprint()
	if err1 != nil || err2 != nil || f1 != f2 {
		t.Errorf("expected identical fingerprints, have %s and %s", f1, f2)
	}
	b, _ := Analyze(bracketGrammar(t))
	if f3, _ := b.Table().Fingerprint(); f3 == f1 {
		t.Errorf("expected different grammars to have different fingerprints")
	}
}

func TestArithExpectedSet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalrkit.lr")
	defer teardown()
	//
	result, err := Analyze(arithGrammar(t, DefaultConflictMode))
	if err != nil {
		t.Fatal(err)
	}
	A := result.Automaton()
	state := 0
	for _, sym := range []string{"Expr", "**", "Expr"} {
		var ok bool
		if state, ok = A.Transition(state, sym); !ok {
			t.Fatalf("no transition on %s", sym)
		}
	}
	expected := []string{lalrkit.EOF, "+", "-", "*", "/", "**", ")"}
	if exp := result.Table().Expected(state); !reflect.DeepEqual(exp, expected) {
		t.Errorf("expected %v to be valid after Expr ** Expr, have %v", expected, exp)
	}
	if act, _ := result.Table().Action(state, "**"); act <= 0 {
		t.Errorf("expected ** to be right associative, have %s", ActionString(act))
	}
	if act, _ := result.Table().Action(state, "*"); act != -5 {
		t.Errorf("expected ** to bind stronger than *, have %s", ActionString(act))
	}
}
