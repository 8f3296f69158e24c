// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

// Heap is an array-backed binary min-heap of nodes ordered by Freq.
//
// Ties are settled by position in the array and nothing else:
// sifting up stops as soon as the parent is <= the child,
// and sifting down only swaps with a child that is strictly smaller,
// preferring the left child when both children are equal.
type Heap struct {
	nodes []*Node
}

func (h *Heap) Len() int { return len(h.nodes) }

// Add inserts n in O(log n).
func (h *Heap) Add(n *Node) {
	h.nodes = append(h.nodes, n)
	i := len(h.nodes) - 1
	for i > 0 {
		parent := (i - 1) / 2
		if h.nodes[parent].Freq <= h.nodes[i].Freq {
			break
		}
		h.nodes[parent], h.nodes[i] = h.nodes[i], h.nodes[parent]
		i = parent
	}
}

// ExtractMin removes and returns the node with the smallest Freq.
// It panics if the heap is empty.
func (h *Heap) ExtractMin() *Node {
	if len(h.nodes) == 0 {
		panic("huffman: ExtractMin on empty heap")
	}
	last := len(h.nodes) - 1
	h.nodes[0], h.nodes[last] = h.nodes[last], h.nodes[0]
	min := h.nodes[last]
	h.nodes[last] = nil
	h.nodes = h.nodes[:last]
	h.siftDown(0)
	return min
}

func (h *Heap) siftDown(i int) {
	n := len(h.nodes)
	for {
		left := 2*i + 1
		right := left + 1
		min := i
		if left < n && h.nodes[left].Freq < h.nodes[min].Freq {
			min = left
		}
		if right < n && h.nodes[right].Freq < h.nodes[min].Freq {
			min = right
		}
		if min == i {
			return
		}
		h.nodes[min], h.nodes[i] = h.nodes[i], h.nodes[min]
		i = min
	}
}
