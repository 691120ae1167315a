// Package palette maps top-level groups to colors and lays out the legend.
//
// An [Assignment] is built from scratch by [Assign] for every render. It pairs
// groups with palette entries by position and is never modified afterwards,
// so repeated renders cannot leak colors into each other. Supplying more
// groups than colors is an error rather than a wraparound:
//
//	a, err := palette.Assign(root.Groups(), palette.Default())
//	if errors.Is(err, errors.ErrCodePaletteOverflow) {
//	    // extend the palette
//	}
//	legend := palette.Legend(a, 6)
package palette
