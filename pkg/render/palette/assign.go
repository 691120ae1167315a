package palette

import (
	"slices"

	"github.com/matzehuels/treemap/pkg/errors"
)

// Assignment is an immutable mapping from group name to color.
type Assignment struct {
	groups []string
	colors map[string]string
}

// Assign pairs each distinct group with the palette entry at the same
// position. It fails with [errors.ErrCodePaletteOverflow] when there are more
// groups than colors.
func Assign(groups []string, p Palette) (Assignment, error) {
	a := Assignment{colors: make(map[string]string, len(groups))}
	for _, g := range groups {
		if _, dup := a.colors[g]; dup {
			continue
		}
		if len(a.groups) >= len(p) {
			return Assignment{}, errors.New(errors.ErrCodePaletteOverflow,
				"%d groups but only %d palette colors; group %q has no color",
				countDistinct(groups), len(p), g)
		}
		a.colors[g] = p[len(a.groups)]
		a.groups = append(a.groups, g)
	}
	return a, nil
}

func countDistinct(groups []string) int {
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		seen[g] = struct{}{}
	}
	return len(seen)
}

// Color returns the color assigned to group.
func (a Assignment) Color(group string) (string, bool) {
	c, ok := a.colors[group]
	return c, ok
}

// ColorOr returns the color for group, or fallback when group is unknown.
func (a Assignment) ColorOr(group, fallback string) string {
	if c, ok := a.colors[group]; ok {
		return c
	}
	return fallback
}

// Groups returns the assigned groups in palette order.
func (a Assignment) Groups() []string { return slices.Clone(a.groups) }

// Len returns the number of assigned groups.
func (a Assignment) Len() int { return len(a.groups) }

// Map returns a copy of the mapping.
func (a Assignment) Map() map[string]string {
	out := make(map[string]string, len(a.colors))
	for k, v := range a.colors {
		out[k] = v
	}
	return out
}
