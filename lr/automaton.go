package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// === States ================================================================

// State is a state of the LALR(1) automaton: a set of items sharing a common
// kernel. Items within a state are unique by (rule, dot).
type State struct {
	Number int
	items  []ItemID
	index  map[itemKey]ItemID
	kernel int // the first kernel items are the kernel
}

func newState(number int) *State {
	return &State{
		Number: number,
		index:  make(map[itemKey]ItemID),
	}
}

func (s *State) add(id ItemID, key itemKey) {
	s.items = append(s.items, id)
	s.index[key] = id
}

// Get returns the item for a rule number and dot position.
func (s *State) Get(rule, dot int) (ItemID, bool) {
	id, ok := s.index[itemKey{rule: rule, dot: dot}]
	return id, ok
}

// Items returns the IDs of all items of a state, kernel items first.
func (s *State) Items() []ItemID {
	return append([]ItemID(nil), s.items...)
}

// Kernel returns the IDs of the kernel items of a state.
func (s *State) Kernel() []ItemID {
	return append([]ItemID(nil), s.items[:s.kernel]...)
}

func (s *State) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.Number, len(s.items))
}

// === Automaton =============================================================

// Transition is an edge of the automaton, labeled with a grammar symbol.
type Transition struct {
	From  int
	Label string
	To    int
}

// Automaton is the handle-recognizing finite state machine for a grammar.
// It is constructed by Analyze and made available to clients for diagnostic
// purposes; parsers only need the parse table derived from it.
//
// The automaton owns all items of all states (the item arena).
type Automaton struct {
	states []*State
	items  []Item
	edges  *arraylist.List // of Transition, in order of creation
	trans  map[int]map[string]int
}

// NewAutomaton creates an empty automaton.
func NewAutomaton() *Automaton {
	return &Automaton{
		edges: arraylist.New(),
		trans: make(map[int]map[string]int),
	}
}

// AddState creates a new state. States have to be added in number order.
func (a *Automaton) AddState(number int) *State {
	if number != len(a.states) {
		panic(fmt.Sprintf("lr.Automaton: state %d added out of order", number))
	}
	s := newState(number)
	a.states = append(a.states, s)
	return s
}

// AddItem creates a new item for rule and dot within state s. If s already
// contains an item for (rule, dot), that item is returned.
func (a *Automaton) AddItem(s *State, rule *Rule, dot int) ItemID {
	if id, ok := s.Get(rule.Number, dot); ok {
		return id
	}
	a.items = append(a.items, newItem(rule, dot))
	id := ItemID(len(a.items) - 1)
	s.add(id, a.items[id].key())
	return id
}

// AddTransition adds an edge from state origin to state dest, labeled with a symbol.
func (a *Automaton) AddTransition(origin int, label string, dest int) {
	row, ok := a.trans[origin]
	if !ok {
		row = make(map[string]int)
		a.trans[origin] = row
	}
	if _, exists := row[label]; !exists {
		a.edges.Add(Transition{From: origin, Label: label, To: dest})
	}
	row[label] = dest
}

// State returns state number n.
func (a *Automaton) State(n int) (*State, bool) {
	if n < 0 || n >= len(a.states) {
		return nil, false
	}
	return a.states[n], true
}

// HasState is true if state n exists.
func (a *Automaton) HasState(n int) bool {
	return n >= 0 && n < len(a.states)
}

// States returns all states, ordered by number.
func (a *Automaton) States() []*State {
	return append([]*State(nil), a.states...)
}

// StateCount returns the number of states.
func (a *Automaton) StateCount() int {
	return len(a.states)
}

// Item returns an item of the arena.
func (a *Automaton) Item(id ItemID) *Item {
	return &a.items[id]
}

// Transition returns the destination for leaving state origin by symbol label.
func (a *Automaton) Transition(origin int, label string) (int, bool) {
	dest, ok := a.trans[origin][label]
	return dest, ok
}

// Transitions returns all edges leaving state origin, in order of creation.
func (a *Automaton) Transitions(origin int) []Transition {
	var r []Transition
	it := a.edges.Iterator()
	for it.Next() {
		e := it.Value().(Transition)
		if e.From == origin {
			r = append(r, e)
		}
	}
	return r
}

// TransitionTable returns a copy of the transition table, state × symbol → state.
func (a *Automaton) TransitionTable() map[int]map[string]int {
	t := make(map[int]map[string]int, len(a.trans))
	for from, row := range a.trans {
		t[from] = make(map[string]int, len(row))
		for sym, to := range row {
			t[from][sym] = to
		}
	}
	return t
}

// --- Lookahead pumping -----------------------------------------------------

// Connect establishes a pump channel from item `from` to item `to`: every
// lookahead pumped into `from` will be forwarded to `to`. Lookaheads `from`
// already has are not forwarded by connecting.
func (a *Automaton) Connect(from, to ItemID) {
	a.items[from].connected = append(a.items[from].connected, to)
}

// Pump adds lookahead terminal la to an item and, transitively, to all items
// connected to it. Pumping is idempotent: items already having la are not
// changed, and propagation does not continue beyond them.
// Pump returns the number of items which received la.
func (a *Automaton) Pump(id ItemID, la string) int {
	if a.items[id].lookahead.Contains(la) {
		return 0
	}
	a.items[id].lookahead.Add(la)
	count := 1
	queue := []ItemID{id}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, c := range a.items[i].connected {
			if a.items[c].lookahead.Contains(la) {
				continue
			}
			a.items[c].lookahead.Add(la)
			count++
			queue = append(queue, c)
		}
	}
	return count
}

// PumpAll pumps several lookahead terminals into an item.
func (a *Automaton) PumpAll(id ItemID, lookaheads []string) int {
	count := 0
	for _, la := range lookaheads {
		count += a.Pump(id, la)
	}
	return count
}

// disconnect drops all pump channels. They are an artifact of analysis only.
func (a *Automaton) disconnect() {
	for i := range a.items {
		a.items[i].connected = nil
	}
}

// Dump is a debugging helper
func (a *Automaton) Dump() {
	for _, s := range a.states {
		tracer().Debugf("--- state %03d -----------", s.Number)
		for _, id := range s.items {
			tracer().Debugf("    %v", a.Item(id))
		}
		for _, e := range a.Transitions(s.Number) {
			tracer().Debugf("    --%s--> %d", e.Label, e.To)
		}
	}
	tracer().Debugf("-------------------------")
}

// --- Export ----------------------------------------------------------------

// GraphViz exports the automaton to the Graphviz Dot format. States
// containing a reducible start item are filled in gray.
func (a *Automaton) GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range a.states {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.Number, a.nodecolor(s), s.Number, a.forGraphviz(s)))
	}
	it := a.edges.Iterator()
	for it.Next() {
		e := it.Value().(Transition)
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", e.From, e.To, dotEscape(e.Label)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (a *Automaton) nodecolor(s *State) string {
	for _, id := range s.items {
		if it := a.Item(id); it.rule.Number == 0 && it.IsReduceItem() {
			return "lightgray"
		}
	}
	return "white"
}

func (a *Automaton) forGraphviz(s *State) string {
	var lines []string
	for _, id := range s.items {
		lines = append(lines, dotEscape(a.Item(id).String()))
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`)

func dotEscape(s string) string {
	return dotEscaper.Replace(s)
}
