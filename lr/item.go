package lr

import (
	"bytes"
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
)

// ItemID identifies an item within the item arena of an automaton.
type ItemID int

// Item is an LALR(1) item: a rule together with a dot position marking the
// progress of recognition, and a set of lookahead terminals.
//
//     A ➞ a • b c
//
// means that a has been recognized and b is expected. With the dot at the very
// end of the rule, the whole rule has been recognized and can be reduced.
//
// During analysis items are connected by pump channels (see Automaton.Pump).
// Connections refer to other items by ItemID and are dropped after analysis.
type Item struct {
	rule      *Rule
	dot       int
	lookahead *treeset.Set // of string
	connected []ItemID     // pump targets
}

func newItem(rule *Rule, dot int) Item {
	return Item{
		rule:      rule,
		dot:       dot,
		lookahead: treeset.NewWithStringComparator(),
	}
}

// Rule returns the rule of an item.
func (i *Item) Rule() *Rule {
	return i.rule
}

// Dot returns the position of the dot within the item's rule.
func (i *Item) Dot() int {
	return i.dot
}

// IsReduceItem is true if the dot is behind the last component.
func (i *Item) IsReduceItem() bool {
	return i.dot == len(i.rule.RHS)
}

// ActiveComponent returns the symbol after the dot.
func (i *Item) ActiveComponent() (string, bool) {
	return i.rule.Component(i.dot)
}

// UnrecognizedComponents returns the components following the active one.
func (i *Item) UnrecognizedComponents() []string {
	if i.dot+1 >= len(i.rule.RHS) {
		return nil
	}
	return i.rule.RHS[i.dot+1:]
}

// Lookahead returns the lookahead terminals of an item, sorted.
func (i *Item) Lookahead() []string {
	la := make([]string, 0, i.lookahead.Size())
	for _, x := range i.lookahead.Values() {
		la = append(la, x.(string))
	}
	return la
}

// HasLookahead is true if terminal t is in the lookahead set of an item.
func (i *Item) HasLookahead(t string) bool {
	return i.lookahead.Contains(t)
}

func (i *Item) key() itemKey {
	return itemKey{rule: i.rule.Number, dot: i.dot}
}

func (i *Item) String() string {
	var b bytes.Buffer
	b.WriteString(i.rule.LHS)
	b.WriteString(" ➞")
	for n, c := range i.rule.RHS {
		if n == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(c)
	}
	if i.IsReduceItem() {
		b.WriteString(" •")
	}
	if i.lookahead.Size() > 0 {
		b.WriteString(fmt.Sprintf(" %v", i.Lookahead()))
	}
	return b.String()
}

// itemKey identifies an item by rule number and dot position. Within a state,
// there is exactly one item per key.
type itemKey struct {
	rule, dot int
}
