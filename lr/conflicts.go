package lr

import (
	"errors"
	"fmt"
)

// Errors of grammar analysis. Clients use errors.Is to classify errors returned
// by the grammar builder and by Analyze.
var (
	ErrMalformedGrammar = errors.New("malformed grammar")
	ErrConflict         = errors.New("unresolved conflict")
)

// GrammarError is a programming error in the construction of a grammar, e.g. a
// missing start rule.
type GrammarError struct {
	Msg string
}

func grammarError(msg string) *GrammarError {
	return &GrammarError{Msg: msg}
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedGrammar, e.Msg)
}

// Unwrap makes GrammarError match ErrMalformedGrammar.
func (e *GrammarError) Unwrap() error {
	return ErrMalformedGrammar
}

// ShiftReduceConflictError is returned by Analyze if a shift/reduce conflict
// could not be resolved by the grammar's conflict mode.
type ShiftReduceConflictError struct {
	State     int        // state exhibiting the conflict
	Rule      *Rule      // the rule to reduce
	Lookahead string     // the terminal to shift
	Automaton *Automaton // snapshot for diagnostics
}

func (e *ShiftReduceConflictError) Error() string {
	return fmt.Sprintf(`The grammar exhibits a shift/reduce conflict on rule:

  %d. %s -> %s

(on lookahead "%s" in state %d). Restructure your grammar or choose a conflict resolution mode.`,
		e.Rule.Number, e.Rule.LHS, e.Rule.rhsString(), e.Lookahead, e.State)
}

// Unwrap makes conflict errors match ErrConflict.
func (e *ShiftReduceConflictError) Unwrap() error {
	return ErrConflict
}

// ReduceReduceConflictError is returned by Analyze if a reduce/reduce conflict
// could not be resolved by the grammar's conflict mode.
type ReduceReduceConflictError struct {
	State     int
	Rule1     *Rule // rule already present in the parse table
	Rule2     *Rule // competing rule
	Lookahead string
	Automaton *Automaton
}

func (e *ReduceReduceConflictError) Error() string {
	return fmt.Sprintf(`The grammar exhibits a reduce/reduce conflict on rules:

  %d. %s -> %s

vs:

  %d. %s -> %s

(on lookahead "%s" in state %d). Restructure your grammar or choose a conflict resolution mode.`,
		e.Rule1.Number, e.Rule1.LHS, e.Rule1.rhsString(),
		e.Rule2.Number, e.Rule2.LHS, e.Rule2.rhsString(),
		e.Lookahead, e.State)
}

// Unwrap makes conflict errors match ErrConflict.
func (e *ReduceReduceConflictError) Unwrap() error {
	return ErrConflict
}

// --- Resolved conflicts ----------------------------------------------------

// ConflictKind tells shift/reduce from reduce/reduce conflicts.
type ConflictKind int

// Kinds of conflicts.
const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict is an entry in the log of conflicts resolved during table synthesis.
type Conflict struct {
	Kind       ConflictKind
	State      int
	Lookahead  string
	Rule       *Rule        // the reducing rule (s/r), or the winning rule (r/r)
	Other      *Rule        // the losing rule (r/r only)
	Resolution ConflictMode // the flag which resolved the conflict
	Action     int          // encoded table entry after resolution
}

func (c Conflict) String() string {
	if c.Kind == ShiftReduce {
		return fmt.Sprintf("state %d, %q: %s conflict on rule %q resolved by %s to %s",
			c.State, c.Lookahead, c.Kind, c.Rule, c.Resolution, ActionString(c.Action))
	}
	return fmt.Sprintf("state %d, %q: %s conflict between %q and %q resolved by %s to %s",
		c.State, c.Lookahead, c.Kind, c.Rule, c.Other, c.Resolution, ActionString(c.Action))
}
