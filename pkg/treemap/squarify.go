package treemap

import "math"

// tiler positions nodes top-down. stack[d] holds half the inner padding that
// applies to nodes at depth d.
type tiler struct {
	ratio float64
	inner float64
	outer float64
	stack []float64
}

func (t *tiler) position(n *node) {
	p := t.stack[n.depth]
	x0, y0, x1, y1 := n.x0+p, n.y0+p, n.x1-p, n.y1-p
	x0, x1 = collapse(x0, x1)
	y0, y1 = collapse(y0, y1)
	n.x0, n.y0, n.x1, n.y1 = x0, y0, x1, y1

	if len(n.children) == 0 {
		return
	}
	p = t.inner / 2
	if len(t.stack) <= n.depth+1 {
		t.stack = append(t.stack, 0)
	}
	t.stack[n.depth+1] = p
	x0 += t.outer - p
	y0 += t.outer - p
	x1 -= t.outer - p
	y1 -= t.outer - p
	x0, x1 = collapse(x0, x1)
	y0, y1 = collapse(y0, y1)

	t.squarify(n, x0, y0, x1, y1)
	for _, c := range n.children {
		t.position(c)
	}
}

func collapse(a, b float64) (float64, float64) {
	if b < a {
		m := (a + b) / 2
		return m, m
	}
	return a, b
}

// squarify packs the children of parent into rows whose worst aspect ratio
// stays as close to t.ratio as possible. Rows run along the shorter side of
// the remaining space.
func (t *tiler) squarify(parent *node, x0, y0, x1, y1 float64) {
	nodes := parent.children
	n := len(nodes)
	value := parent.value

	for i0, i1 := 0, 0; i0 < n; {
		dx, dy := x1-x0, y1-y0

		// Start the row at the next non-empty node.
		var sum float64
		for {
			sum = nodes[i1].value
			i1++
			if sum != 0 || i1 >= n {
				break
			}
		}
		minValue, maxValue := sum, sum
		alpha := math.Max(dy/dx, dx/dy) / (value * t.ratio)
		beta := sum * sum * alpha
		minRatio := math.Max(maxValue/beta, beta/minValue)

		// Grow the row while the worst aspect ratio does not get worse.
		for ; i1 < n; i1++ {
			v := nodes[i1].value
			sum += v
			minValue = math.Min(minValue, v)
			maxValue = math.Max(maxValue, v)
			beta = sum * sum * alpha
			r := math.Max(maxValue/beta, beta/minValue)
			if r > minRatio {
				sum -= v
				break
			}
			minRatio = r
		}

		row := nodes[i0:i1]
		share := 0.0
		if value > 0 {
			share = sum / value
		}
		if dx < dy {
			ry0, ry1 := y0, y1
			if dy != 0 {
				y0 += dy * share
				ry1 = y0
			}
			dice(row, sum, x0, ry0, x1, ry1)
		} else {
			rx0, rx1 := x0, x1
			if dx != 0 {
				x0 += dx * share
				rx1 = x0
			}
			slice(row, sum, rx0, y0, rx1, y1)
		}
		value -= sum
		i0 = i1
	}
}

// dice splits a row horizontally, giving each node a width proportional to
// its value.
func dice(nodes []*node, value, x0, y0, x1, y1 float64) {
	k := 0.0
	if value != 0 {
		k = (x1 - x0) / value
	}
	for _, n := range nodes {
		n.y0, n.y1 = y0, y1
		n.x0 = x0
		x0 += n.value * k
		n.x1 = x0
	}
}

// slice splits a row vertically, giving each node a height proportional to
// its value.
func slice(nodes []*node, value, x0, y0, x1, y1 float64) {
	k := 0.0
	if value != 0 {
		k = (y1 - y0) / value
	}
	for _, n := range nodes {
		n.x0, n.x1 = x0, x1
		n.y0 = y0
		y0 += n.value * k
		n.y1 = y0
	}
}
