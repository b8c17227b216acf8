package lr

import (
	"sort"

	"github.com/emirpasic/gods/maps/treemap"
)

// KernelPair identifies a kernel item by rule number and dot position.
type KernelPair [2]int

// KernelSet canonicalizes the kernels of automaton states. A kernel is
// identified by its items' (rule, dot) pairs, disregarding order and lookahead.
// Inserting a kernel the set already knows returns the number assigned when it
// was inserted first. Numbers are handed out in insertion order, starting at 0.
type KernelSet struct {
	kernels *treemap.Map // hashed kernel -> number
	next    int
}

// NewKernelSet creates an empty kernel set.
func NewKernelSet() *KernelSet {
	return &KernelSet{kernels: treemap.NewWith(hashedKernelComparator)}
}

// Insert adds a kernel to the set. It returns the kernel's number and true if
// the kernel has not been in the set before.
func (ks *KernelSet) Insert(kernel []KernelPair) (int, bool) {
	h := HashKernel(kernel)
	if n, found := ks.kernels.Get(h); found {
		return n.(int), false
	}
	n := ks.next
	ks.next++
	ks.kernels.Put(h, n)
	return n, true
}

// Lookup returns the number of a kernel, if present.
func (ks *KernelSet) Lookup(kernel []KernelPair) (int, bool) {
	if n, found := ks.kernels.Get(HashKernel(kernel)); found {
		return n.(int), true
	}
	return -1, false
}

// Size returns the number of kernels in the set.
func (ks *KernelSet) Size() int {
	return ks.kernels.Size()
}

// HashKernel computes the canonical signature of a kernel: every pair is
// mapped to an integer by the Cantor pairing function, and the resulting
// integers are sorted. Duplicate pairs collapse.
func HashKernel(kernel []KernelPair) []int {
	h := make([]int, 0, len(kernel))
	for _, p := range kernel {
		h = append(h, cantor(p[0], p[1]))
	}
	sort.Ints(h)
	uniq := h[:0]
	for _, x := range h {
		if len(uniq) == 0 || x != uniq[len(uniq)-1] {
			uniq = append(uniq, x)
		}
	}
	return uniq
}

// cantor is a bijection N×N → N.
func cantor(a, b int) int {
	return (a+b)*(a+b+1)/2 + b
}

// Sorts hashed kernels lexicographically, shorter kernels first on common prefix.
func hashedKernelComparator(k1, k2 interface{}) int {
	h1, h2 := k1.([]int), k2.([]int)
	for i := 0; i < len(h1) && i < len(h2); i++ {
		if h1[i] < h2[i] {
			return -1
		} else if h1[i] > h2[i] {
			return 1
		}
	}
	switch {
	case len(h1) < len(h2):
		return -1
	case len(h1) > len(h2):
		return 1
	}
	return 0
}
