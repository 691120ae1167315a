package palette

// DefaultLegendRows is the number of legend entries stacked in one column.
const DefaultLegendRows = 6

// LegendEntry is one swatch of the legend grid.
type LegendEntry struct {
	Group  string `json:"group"`
	Color  string `json:"color"`
	Column int    `json:"column"`
	Row    int    `json:"row"`
}

// LegendGrid is the legend laid out column-major.
type LegendGrid struct {
	Entries []LegendEntry `json:"entries"`
	Columns int           `json:"columns"`
	Rows    int           `json:"rows"`
}

// Legend places one entry per assigned group, filling each column top to
// bottom before moving right. rows <= 0 selects [DefaultLegendRows].
func Legend(a Assignment, rows int) LegendGrid {
	if rows <= 0 {
		rows = DefaultLegendRows
	}
	grid := LegendGrid{Rows: min(rows, a.Len())}
	for i, g := range a.groups {
		grid.Entries = append(grid.Entries, LegendEntry{
			Group:  g,
			Color:  a.colors[g],
			Column: i / rows,
			Row:    i % rows,
		})
	}
	if n := len(grid.Entries); n > 0 {
		grid.Columns = (n + rows - 1) / rows
	}
	return grid
}
