package transforms

import "sort"

// fenwickTree is the binary-indexed partial-sum partitioning of n modes that
// the Bravyi-Kitaev encoding derives its qubit index sets from. Node j's
// subtree covers the contiguous mode interval [lo[j], j]; qubit j stores the
// occupation parity of that interval.
type fenwickTree struct {
	n        int
	parent   []int
	children [][]int
	lo       []int
}

func newFenwickTree(n int) *fenwickTree {
	t := &fenwickTree{
		n:        n,
		parent:   make([]int, n),
		children: make([][]int, n),
		lo:       make([]int, n),
	}
	for i := range t.parent {
		t.parent[i] = -1
	}
	if n > 0 {
		t.build(0, n-1)
	}

	// Subtree minima: children always have smaller indices than their
	// parent, so one ascending pass suffices.
	for i := 0; i < n; i++ {
		t.lo[i] = i
		for _, c := range t.children[i] {
			if t.lo[c] < t.lo[i] {
				t.lo[i] = t.lo[c]
			}
		}
	}
	return t
}

// build recursively bisects [left, right], attaching each pivot to the
// right edge of its interval (root is n−1).
func (t *fenwickTree) build(left, right int) {
	if left >= right {
		return
	}
	pivot := (left + right) / 2
	t.parent[pivot] = right
	t.children[right] = append(t.children[right], pivot)
	t.build(left, pivot)
	t.build(pivot+1, right)
}

// updateSet returns the ancestors of j: the qubits whose stored parities
// include mode j.
func (t *fenwickTree) updateSet(j int) []int {
	var set []int
	for p := t.parent[j]; p != -1; p = t.parent[p] {
		set = append(set, p)
	}
	sort.Ints(set)
	return set
}

// paritySet returns the qubits whose stored parities tile the mode interval
// [0, j): the Fenwick prefix-sum descent.
func (t *fenwickTree) paritySet(j int) []int {
	var set []int
	for k := j - 1; k >= 0; k = t.lo[k] - 1 {
		set = append(set, k)
	}
	sort.Ints(set)
	return set
}

// flipSet returns the direct children of j: the qubits whose flips toggle
// j's stored parity.
func (t *fenwickTree) flipSet(j int) []int {
	set := append([]int(nil), t.children[j]...)
	sort.Ints(set)
	return set
}

// remainderSet returns paritySet(j) minus flipSet(j).
func (t *fenwickTree) remainderSet(j int) []int {
	flips := make(map[int]bool, len(t.children[j]))
	for _, c := range t.children[j] {
		flips[c] = true
	}
	var set []int
	for _, p := range t.paritySet(j) {
		if !flips[p] {
			set = append(set, p)
		}
	}
	return set
}
