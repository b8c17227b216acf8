/*
Package sparse implements a simple type for sparse integer matrices.
It is used for parser tables (GOTO-table and ACTION-table), which are
large but usually thinly populated.

This implementation uses the COO algorithm (a.k.a. triplet-encoding), with
triplets kept sorted by (row, column). Lookups are binary searches.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a sparse matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Set(2, 3, 123)               // overwrite it
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(9, 9)              // returns -1, i.e. the null-value
//     M.Clear(2, 3)                  // remove the entry again
//
// Matrices are not safe for concurrent modification; concurrent reads are fine.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of values in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// search returns the index of the first triplet not stored left of (i,j).
func (m *IntMatrix) search(i, j int) int {
	return sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
}

// Value returns the value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	k := m.search(i, j)
	if k < len(m.values) && m.values[k].storedAt(i, j) {
		return m.values[k].value
	}
	return m.nullval
}

// Has returns true if a value is stored at position (i,j).
func (m *IntMatrix) Has(i, j int) bool {
	k := m.search(i, j)
	return k < len(m.values) && m.values[k].storedAt(i, j)
}

// Set a value in the matrix at position (i,j). Setting the null value is
// equivalent to Clear.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix.Set() out of bounds: (%d,%d) in %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	if value == m.nullval {
		return m.Clear(i, j)
	}
	at := m.search(i, j)
	if at < len(m.values) && m.values[at].storedAt(i, j) {
		m.values[at].value = value
		return m
	}
	tnew := triplet{row: i, col: j, value: value}
	// the following 3 lines have to work for at being the right edge of values or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return m
}

// Clear removes the value at position (i,j), if present.
func (m *IntMatrix) Clear(i, j int) *IntMatrix {
	at := m.search(i, j)
	if at < len(m.values) && m.values[at].storedAt(i, j) {
		m.values = append(m.values[:at], m.values[at+1:]...)
	}
	return m
}

// EachInRow calls f for every value stored in row i, in increasing column order.
func (m *IntMatrix) EachInRow(i int, f func(j int, value int32)) {
	for k := m.search(i, 0); k < len(m.values) && m.values[k].row == i; k++ {
		f(m.values[k].col, m.values[k].value)
	}
}

// Each calls f for every value stored in the matrix, ordered by row and column.
func (m *IntMatrix) Each(f func(i, j int, value int32)) {
	for _, t := range m.values {
		f(t.row, t.col, t.value)
	}
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=%d", t.row, t.col, t.value)
}
