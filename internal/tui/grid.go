package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// hoverDim lightens the hovered tile.
const hoverDim = 0.35

// cell is one terminal column of the map. A wide character occupies its
// own cell and leaves the next one with an empty ch.
type cell struct {
	ch string
	bg string
	fg string
}

// grid maps every terminal cell of a w×h map area onto the layout canvas.
// Each entry is an index into Layout.Tiles or -1 for gaps.
type grid struct {
	w, h  int
	tiles [][]int
}

func newGrid(l treemap.Layout, w, h int) grid {
	g := grid{w: w, h: h, tiles: make([][]int, h)}
	for cy := 0; cy < h; cy++ {
		row := make([]int, w)
		for cx := 0; cx < w; cx++ {
			row[cx] = -1
			x, y := g.canvasXY(l, cx, cy)
			if t, ok := l.TileAt(x, y); ok {
				row[cx] = t.Index
			}
		}
		g.tiles[cy] = row
	}
	return g
}

// canvasXY returns the canvas point at the center of cell (cx, cy).
func (g grid) canvasXY(l treemap.Layout, cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * l.Width / float64(g.w),
		(float64(cy) + 0.5) * l.Height / float64(g.h)
}

// at returns the tile index under cell (cx, cy), or -1.
func (g grid) at(cx, cy int) int {
	if cy < 0 || cy >= g.h || cx < 0 || cx >= g.w {
		return -1
	}
	return g.tiles[cy][cx]
}

// cells paints the grid: group colors as background and each tile's name
// written from the first cell of its top row. hover is the highlighted tile
// index or -1.
func (g grid) cells(l treemap.Layout, a palette.Assignment, hover int) [][]cell {
	out := make([][]cell, g.h)
	labelled := make(map[int]bool)
	for cy := 0; cy < g.h; cy++ {
		out[cy] = make([]cell, g.w)
		for cx := 0; cx < g.w; cx++ {
			idx := g.tiles[cy][cx]
			if idx < 0 {
				out[cy][cx] = cell{ch: " "}
				continue
			}
			bg := a.ColorOr(l.Tiles[idx].Group, "#999999")
			if idx == hover {
				bg = palette.Dim(bg, hoverDim)
			}
			out[cy][cx] = cell{ch: " ", bg: bg, fg: palette.TextColor(bg)}
		}
	}

	for cy := 0; cy < g.h; cy++ {
		for cx := 0; cx < g.w; cx++ {
			idx := g.tiles[cy][cx]
			if idx < 0 || labelled[idx] {
				continue
			}
			labelled[idx] = true
			span := 0
			for cx+span < g.w && g.tiles[cy][cx+span] == idx {
				span++
			}
			put(out[cy], cx, cx+span, truncateCells(l.Tiles[idx].Name, span))
		}
	}
	return out
}

// overlay writes lines into cells as a box anchored near (x, y), flipped
// left or up when it would leave the area.
func overlay(cells [][]cell, lines []string, x, y int, bg, fg string) {
	if len(cells) == 0 {
		return
	}
	h, w := len(cells), len(cells[0])
	boxW := 0
	for _, ln := range lines {
		boxW = max(boxW, runewidth.StringWidth(ln)+2)
	}
	boxH := len(lines)

	left, top := x+2, y+1
	if left+boxW > w {
		left = x - boxW - 1
	}
	if top+boxH > h {
		top = y - boxH
	}
	left, top = max(0, left), max(0, top)

	right := min(left+boxW, w)
	for i := 0; i < boxH && top+i < h; i++ {
		row := cells[top+i]
		if left > 0 && row[left].ch == "" {
			row[left-1].ch = " "
		}
		for j := left; j < right; j++ {
			row[j] = cell{ch: " ", bg: bg, fg: fg}
		}
		put(row, left+1, right, lines[i])
		if right < w && row[right].ch == "" {
			row[right].ch = " "
		}
	}
}

// put writes s into row from column x, stopping before column end. Wide
// characters take two cells and zero-width runes join the preceding one.
func put(row []cell, x, end int, s string) {
	head := -1
	end = min(end, len(row))
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if head >= 0 {
				row[head].ch += string(r)
			}
			continue
		}
		if x+w > end {
			return
		}
		head = x
		row[x].ch = string(r)
		for k := 1; k < w; k++ {
			row[x+k].ch = ""
		}
		x += w
	}
}

// truncateCells shortens s to at most n terminal columns, marking the cut
// with "..".
func truncateCells(s string, n int) string {
	if n < 3 {
		return runewidth.Truncate(s, max(0, n), "")
	}
	return runewidth.Truncate(s, n, "..")
}

// paint renders cells, merging runs of identical colors into one styled
// segment.
func paint(cells [][]cell) string {
	cache := make(map[[2]string]lipgloss.Style)
	style := func(bg, fg string) lipgloss.Style {
		k := [2]string{bg, fg}
		if s, ok := cache[k]; ok {
			return s
		}
		s := lipgloss.NewStyle()
		if bg != "" {
			s = s.Background(lipgloss.Color(bg))
		}
		if fg != "" {
			s = s.Foreground(lipgloss.Color(fg))
		}
		cache[k] = s
		return s
	}

	var b strings.Builder
	for y, row := range cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var bg, fg string
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(style(bg, fg).Render(run.String()))
				run.Reset()
			}
		}
		for _, c := range row {
			if c.bg != bg || c.fg != fg {
				flush()
				bg, fg = c.bg, c.fg
			}
			run.WriteString(c.ch)
		}
		flush()
	}
	return b.String()
}
