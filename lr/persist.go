package lr

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/utils"
)

// tableJSON is the persistent form of a parse table. ACTION entries use the
// sign-tagged encoding of ParseTable.Action.
type tableJSON struct {
	Terminals    []string               `json:"terminals"`
	Nonterminals []string               `json:"nonterminals"`
	States       int                    `json:"states"`
	Action       map[int]map[string]int `json:"action"`
	Goto         map[int]map[string]int `json:"goto"`
}

// MarshalJSON encodes a parse table as
//
//     { "terminals": [...], "nonterminals": [...], "states": n,
//       "action": { "0": { "a": 2, "$eof": -2 }, ... },
//       "goto":   { "0": { "S": 1 }, ... } }
func (t *ParseTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(tableJSON{
		Terminals:    t.terminals,
		Nonterminals: t.nonterminals,
		States:       t.StateCount(),
		Action:       t.Actions(),
		Goto:         t.Gotos(),
	})
}

// WriteTable writes a parse table in JSON format.
func WriteTable(t *ParseTable, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// ReadTable reads a parse table in the format produced by MarshalJSON.
// Symbols referenced by entries must be listed in the column vectors.
func ReadTable(r io.Reader) (*ParseTable, error) {
	var tj tableJSON
	if err := json.NewDecoder(r).Decode(&tj); err != nil {
		return nil, fmt.Errorf("cannot read parse table: %w", err)
	}
	states := tj.States
	for _, m := range []map[int]map[string]int{tj.Action, tj.Goto} {
		for i := range m {
			if i >= states {
				states = i + 1
			}
		}
	}
	t := newParseTable(states, tj.Terminals, tj.Nonterminals)
	if err := fill(t.tcol, tj.Action, t.setAction); err != nil {
		return nil, err
	}
	if err := fill(t.ncol, tj.Goto, t.setGoto); err != nil {
		return nil, err
	}
	if t.acceptState() < 0 {
		return nil, fmt.Errorf("cannot read parse table: no accepting state")
	}
	tracer().Debugf("read parse table with %d states", states)
	return t, nil
}

func fill(columns map[string]int, entries map[int]map[string]int, set func(int, string, int)) error {
	rows := make([]interface{}, 0, len(entries))
	for i := range entries {
		rows = append(rows, i)
	}
	utils.Sort(rows, utils.IntComparator)
	for _, i := range rows {
		for sym, v := range entries[i.(int)] {
			if _, ok := columns[sym]; !ok {
				return fmt.Errorf("cannot read parse table: unknown symbol %q in state %d", sym, i)
			}
			if i.(int) < 0 {
				return fmt.Errorf("cannot read parse table: negative state number %d", i)
			}
			set(i.(int), sym, v)
		}
	}
	return nil
}

// tableSnapshot flattens a parse table for hashing.
type tableSnapshot struct {
	Terminals    []string
	Nonterminals []string
	States       int
	Action       []int32 // triplets (state, column, value)
	Goto         []int32
}

// Fingerprint returns a hash over the complete contents of a parse table. Two
// tables have the same fingerprint if and only if they have the same columns,
// the same state numbering and identical entries.
func (t *ParseTable) Fingerprint() (string, error) {
	snap := tableSnapshot{
		Terminals:    t.terminals,
		Nonterminals: t.nonterminals,
		States:       t.StateCount(),
	}
	t.action.Each(func(i, j int, v int32) {
		snap.Action = append(snap.Action, int32(i), int32(j), v)
	})
	t.gotos.Each(func(i, j int, v int32) {
		snap.Goto = append(snap.Goto, int32(i), int32(j), v)
	})
	return structhash.Hash(snap, 1)
}
