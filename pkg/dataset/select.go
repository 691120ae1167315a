package dataset

import (
	"fmt"
	"strconv"

	"github.com/ohler55/ojg/jp"

	"github.com/matzehuels/treemap/pkg/errors"
)

// Select evaluates a JSONPath expression against root and rebuilds the matches
// as a new root. Matched groups become the top-level groups of the result;
// matched leaves are regrouped under their category so colors still follow
// the platform. An empty expression or "$" returns root unchanged.
func Select(root *Node, expr string) (*Node, error) {
	if expr == "" || expr == "$" {
		return root, nil
	}
	if err := errors.ValidateSelector(expr); err != nil {
		return nil, err
	}
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSelector, err, "parse selector %q", expr)
	}

	var (
		groups   []*Node
		byCat    = map[string]*Node{}
		selected = &Node{Name: fmt.Sprintf("%s [%s]", root.Name, expr)}
	)
	for _, m := range x.Get(toGeneric(root)) {
		n, ok := fromGeneric(m)
		if !ok {
			continue
		}
		if !n.IsLeaf() {
			groups = append(groups, n)
			continue
		}
		cat := n.Category
		if cat == "" {
			cat = n.Name
		}
		g, ok := byCat[cat]
		if !ok {
			g = &Node{Name: cat}
			byCat[cat] = g
			groups = append(groups, g)
		}
		g.Children = append(g.Children, n)
	}
	selected.Children = groups

	if len(groups) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "selector %q matched nothing", expr)
	}
	return selected, nil
}

func toGeneric(n *Node) map[string]any {
	m := map[string]any{"name": n.Name}
	if n.Category != "" {
		m["category"] = n.Category
	}
	if n.IsLeaf() {
		m["value"] = n.Value
		return m
	}
	children := make([]any, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			children = append(children, toGeneric(c))
		}
	}
	m["children"] = children
	return m
}

func fromGeneric(v any) (*Node, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	n := &Node{}
	n.Name, _ = m["name"].(string)
	n.Category, _ = m["category"].(string)
	n.Value = asFloat(m["value"])
	if children, ok := m["children"].([]any); ok {
		for _, c := range children {
			if cn, ok := fromGeneric(c); ok {
				n.Children = append(n.Children, cn)
			}
		}
	}
	return n, n.Name != "" || len(n.Children) > 0
}

func asFloat(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}
