package palette

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/treemap/pkg/errors"
)

// Palette is an ordered list of colors in "#rrggbb" form.
type Palette []string

var defaultColors = Palette{
	"#4c92c3", "#bed2ed", "#ff993e", "#ffc993", "#56b356", "#ade5a1",
	"#de5253", "#ffadab", "#a985ca", "#d1c0dd", "#a3786f", "#d0b0a9",
	"#e992ce", "#f9c5db", "#999999", "#d2d2d2", "#c9ca4e", "#e2e2a4",
}

// Default returns a copy of the built-in 18-color palette.
func Default() Palette {
	return append(Palette(nil), defaultColors...)
}

// Parse reads a comma-separated list of hex colors. Short forms such as
// "#abc" are expanded; every entry is normalised to lowercase "#rrggbb".
func Parse(list string) (Palette, error) {
	var p Palette
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		hex, err := Normalize(raw)
		if err != nil {
			return nil, err
		}
		p = append(p, hex)
	}
	if len(p) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidColor, "palette is empty")
	}
	return p, nil
}

// Normalize validates a single hex color and returns it as "#rrggbb".
func Normalize(s string) (string, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	if len(s) != 7 {
		return "", errors.New(errors.ErrCodeInvalidColor, "invalid color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return c.Hex(), nil
}

// String joins the palette back into the form accepted by [Parse].
func (p Palette) String() string {
	return strings.Join(p, ",")
}
