package dataset

import (
	"math"

	"github.com/matzehuels/treemap/pkg/errors"
)

// Node is one entry of the sales hierarchy. A node without children is a leaf
// (a sales record); any other node is a group.
type Node struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Value    float64 `json:"value,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Total returns the aggregate value of n: its own value for a leaf, the sum of
// its leaves otherwise.
func (n *Node) Total() float64 {
	if n.IsLeaf() {
		return n.Value
	}
	var sum float64
	for _, c := range n.Children {
		if c != nil {
			sum += c.Total()
		}
	}
	return sum
}

// Leaves returns every leaf below n in depth-first order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.walk(func(c *Node, _ int) {
		if c.IsLeaf() {
			out = append(out, c)
		}
	})
	return out
}

// Groups returns the names of the top-level children of n in dataset order.
func (n *Node) Groups() []string {
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			names = append(names, c.Name)
		}
	}
	return names
}

func (n *Node) walk(fn func(*Node, int)) {
	var visit func(*Node, int)
	visit = func(c *Node, depth int) {
		if c == nil {
			return
		}
		fn(c, depth)
		for _, child := range c.Children {
			visit(child, depth+1)
		}
	}
	visit(n, 0)
}

// GroupStat summarises one top-level group.
type GroupStat struct {
	Name   string  `json:"name"`
	Leaves int     `json:"leaves"`
	Total  float64 `json:"total"`
}

// Stats summarises a dataset.
type Stats struct {
	Name     string      `json:"name"`
	Groups   int         `json:"groups"`
	Leaves   int         `json:"leaves"`
	Total    float64     `json:"total"`
	PerGroup []GroupStat `json:"per_group"`
}

// Summarize computes [Stats] for root.
func Summarize(root *Node) Stats {
	s := Stats{Name: root.Name}
	for _, g := range root.Children {
		if g == nil {
			continue
		}
		gs := GroupStat{Name: g.Name, Leaves: len(g.Leaves()), Total: g.Total()}
		s.Leaves += gs.Leaves
		s.Total += gs.Total
		s.PerGroup = append(s.PerGroup, gs)
	}
	s.Groups = len(s.PerGroup)
	return s
}

// Validate checks that root can be laid out: it must have at least one child
// and every leaf value must be a finite, non-negative number.
func Validate(root *Node) error {
	if root == nil {
		return errors.New(errors.ErrCodeEmptyDataset, "dataset is empty")
	}
	if len(root.Children) == 0 {
		return errors.New(errors.ErrCodeEmptyDataset, "dataset %q has no children", root.Name)
	}

	var err error
	root.walk(func(n *Node, depth int) {
		if err != nil {
			return
		}
		for i, c := range n.Children {
			if c == nil {
				err = errors.New(errors.ErrCodeInvalidDataset, "node %q: child %d is null", n.Name, i)
				return
			}
		}
		if !n.IsLeaf() || depth == 0 {
			return
		}
		if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
			err = errors.New(errors.ErrCodeInvalidDataset, "leaf %q has non-finite value", n.Name)
		} else if n.Value < 0 {
			err = errors.New(errors.ErrCodeInvalidDataset, "leaf %q has negative value %g", n.Name, n.Value)
		}
	})
	return err
}
