// Package aggregation groups flat joined rows into a code-keyed tree and rolls up amounts.
package aggregation

import (
	"slices"
	"strings"
)

// Key identifies a node at one level of the tree.
type Key struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

// KeyFunc extracts the key of one level from a row.
// It returns false when the row lacks the relation for that level; such rows are left out of the tree.
type KeyFunc[R any] func(R) (Key, bool)

// Node is one group. Rows are attached only at the deepest level.
type Node[R any] struct {
	Key
	Children []*Node[R] `json:"children,omitempty"`
	Rows     []R        `json:"rows,omitempty"`
}

// Aggregate groups rows by levels, outermost first, and returns the root node.
// Children at every level are ordered by plain string comparison of their codes,
// so "2.10" sorts before "2.9".
func Aggregate[R any](rows []R, levels ...KeyFunc[R]) *Node[R] {
	root := &Node[R]{}
	index := make(map[*Node[R]]map[string]*Node[R])

	keys := make([]Key, len(levels))
	for _, row := range rows {
		complete := true
		for i, level := range levels {
			k, ok := level(row)
			if !ok {
				complete = false
				break
			}
			keys[i] = k
		}
		if !complete {
			continue
		}

		node := root
		for _, k := range keys {
			children, ok := index[node]
			if !ok {
				children = make(map[string]*Node[R])
				index[node] = children
			}
			child, ok := children[k.Code]
			if !ok {
				child = &Node[R]{Key: k}
				children[k.Code] = child
				node.Children = append(node.Children, child)
			}
			node = child
		}
		node.Rows = append(node.Rows, row)
	}

	sortTree(root)
	return root
}

func sortTree[R any](n *Node[R]) {
	slices.SortStableFunc(n.Children, func(a, b *Node[R]) int {
		return strings.Compare(a.Code, b.Code)
	})
	for _, c := range n.Children {
		sortTree(c)
	}
}

// SumAtNode adds value(row) over every row under n.
func SumAtNode[R any](n *Node[R], value func(R) float64) float64 {
	if n == nil {
		return 0
	}
	var sum float64
	for _, r := range n.Rows {
		sum += value(r)
	}
	for _, c := range n.Children {
		sum += SumAtNode(c, value)
	}
	return sum
}

// CountRows returns the number of rows under n.
func CountRows[R any](n *Node[R]) int {
	if n == nil {
		return 0
	}
	count := len(n.Rows)
	for _, c := range n.Children {
		count += CountRows(c)
	}
	return count
}

// Leaves returns the deepest nodes under n in tree order.
func Leaves[R any](n *Node[R]) []*Node[R] {
	if n == nil {
		return nil
	}
	if len(n.Children) == 0 {
		return []*Node[R]{n}
	}
	var out []*Node[R]
	for _, c := range n.Children {
		out = append(out, Leaves(c)...)
	}
	return out
}

// Required builds a KeyFunc from code and title accessors; an empty code means a missing relation.
func Required[R any](code, title func(R) string) KeyFunc[R] {
	return func(r R) (Key, bool) {
		c := strings.TrimSpace(code(r))
		if c == "" {
			return Key{}, false
		}
		return Key{Code: c, Title: title(r)}, true
	}
}
