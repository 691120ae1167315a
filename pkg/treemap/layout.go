package treemap

import (
	"math"
	"sort"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
)

// Phi is the golden ratio, the default target aspect ratio for squarified rows.
var Phi = (1 + math.Sqrt(5)) / 2

// Rect is an axis-aligned rectangle in canvas units, origin top-left.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal span.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical span.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Area returns Width*Height.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Contains reports whether (x, y) lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Encloses reports whether o lies within r, allowing eps of slack on each edge.
func (r Rect) Encloses(o Rect, eps float64) bool {
	return o.X0 >= r.X0-eps && o.Y0 >= r.Y0-eps && o.X1 <= r.X1+eps && o.Y1 <= r.Y1+eps
}

// Overlaps reports whether r and o share interior area beyond eps.
func (r Rect) Overlaps(o Rect, eps float64) bool {
	return math.Min(r.X1, o.X1)-math.Max(r.X0, o.X0) > eps &&
		math.Min(r.Y1, o.Y1)-math.Max(r.Y0, o.Y0) > eps
}

// Tile is the rectangle computed for one leaf.
type Tile struct {
	Rect
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Group    string  `json:"group"` // top-level ancestor
	Depth    int     `json:"depth"`
	Index    int     `json:"index"` // draw order
}

// GroupRect is the region allocated to an internal node below the root.
type GroupRect struct {
	Rect
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Depth int     `json:"depth"`
}

// Layout is the result of one layout pass.
type Layout struct {
	Name   string      `json:"name"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Total  float64     `json:"total"`
	Order  []string    `json:"order"` // top-level group names in dataset order
	Groups []GroupRect `json:"groups"`
	Tiles  []Tile      `json:"tiles"`
}

// TileAt returns the topmost tile containing (x, y).
func (l Layout) TileAt(x, y float64) (Tile, bool) {
	for i := len(l.Tiles) - 1; i >= 0; i-- {
		if l.Tiles[i].Contains(x, y) {
			return l.Tiles[i], true
		}
	}
	return Tile{}, false
}

// Options configures [Compute].
type Options struct {
	Width        float64
	Height       float64
	PaddingInner float64
	PaddingOuter float64
	Ratio        float64 // target aspect ratio; values <= 1 mean 1, zero means Phi
}

// DefaultOptions returns the standard 960x570 canvas with one unit between
// siblings and no outer padding.
func DefaultOptions() Options {
	return Options{
		Width:        960,
		Height:       570,
		PaddingInner: 1,
		Ratio:        Phi,
	}
}

// Validate checks the canvas and paddings.
func (o Options) Validate() error {
	if err := errors.ValidateCanvas(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidatePadding("inner", o.PaddingInner); err != nil {
		return err
	}
	return errors.ValidatePadding("outer", o.PaddingOuter)
}

type node struct {
	name     string
	category string
	group    string
	value    float64
	depth    int
	children []*node
	x0, y0   float64
	x1, y1   float64
}

// Compute lays out every leaf of root on the canvas described by opts.
func Compute(root *dataset.Node, opts Options) (Layout, error) {
	if err := opts.Validate(); err != nil {
		return Layout{}, err
	}
	if err := dataset.Validate(root); err != nil {
		return Layout{}, err
	}

	ratio := opts.Ratio
	if ratio == 0 {
		ratio = Phi
	}
	if ratio < 1 {
		ratio = 1
	}

	tree := build(root, 0, "")
	tree.x1, tree.y1 = opts.Width, opts.Height

	t := tiler{ratio: ratio, inner: opts.PaddingInner, outer: opts.PaddingOuter, stack: []float64{0}}
	t.position(tree)

	out := Layout{
		Name:   root.Name,
		Width:  opts.Width,
		Height: opts.Height,
		Total:  tree.value,
		Order:  root.Groups(),
	}
	collect(tree, &out)
	return out, nil
}

// build copies the dataset into a private tree, summing values bottom-up and
// sorting each child list by value, largest first.
func build(src *dataset.Node, depth int, group string) *node {
	if depth == 1 {
		group = src.Name
	}
	n := &node{name: src.Name, category: src.Category, group: group, depth: depth}
	if src.IsLeaf() {
		n.value = src.Value
		if n.category == "" {
			n.category = group
		}
		return n
	}
	n.children = make([]*node, len(src.Children))
	for i, c := range src.Children {
		n.children[i] = build(c, depth+1, group)
		n.value += n.children[i].value
	}
	sort.SliceStable(n.children, func(i, j int) bool {
		return n.children[i].value > n.children[j].value
	})
	return n
}

func collect(n *node, out *Layout) {
	r := Rect{X0: n.x0, Y0: n.y0, X1: n.x1, Y1: n.y1}
	switch {
	case n.depth == 0:
	case len(n.children) == 0:
		out.Tiles = append(out.Tiles, Tile{
			Rect:     r,
			Name:     n.name,
			Category: n.category,
			Value:    n.value,
			Group:    n.group,
			Depth:    n.depth,
			Index:    len(out.Tiles),
		})
	default:
		out.Groups = append(out.Groups, GroupRect{Rect: r, Name: n.name, Value: n.value, Depth: n.depth})
	}
	for _, c := range n.children {
		collect(c, out)
	}
}
