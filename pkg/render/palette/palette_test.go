package palette_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/palette"
)

func groups(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("G%02d", i)
	}
	return out
}

func TestDefaultPalette(t *testing.T) {
	p := palette.Default()
	require.Len(t, p, 18)

	seen := map[string]bool{}
	for _, c := range p {
		assert.False(t, seen[c], "duplicate color %s", c)
		seen[c] = true
	}

	p[0] = "#000000"
	assert.NotEqual(t, "#000000", palette.Default()[0], "Default must return a copy")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want palette.Palette
		err  bool
	}{
		{"two colors", "#FF0000, #00ff00", palette.Palette{"#ff0000", "#00ff00"}, false},
		{"short form", "#abc", palette.Palette{"#aabbcc"}, false},
		{"no hash", "123456", palette.Palette{"#123456"}, false},
		{"skips blanks", "#111111,,", palette.Palette{"#111111"}, false},
		{"empty", "", nil, true},
		{"garbage", "#zzzzzz", nil, true},
		{"wrong length", "#12345", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := palette.Parse(tt.in)
			if tt.err {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidColor), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, must(palette.Parse(got.String())))
		})
	}
}

func must(p palette.Palette, err error) palette.Palette {
	if err != nil {
		panic(err)
	}
	return p
}

func TestAssignDistinctColorsPerGroup(t *testing.T) {
	p := palette.Default()
	for n := 0; n <= len(p); n++ {
		a, err := palette.Assign(groups(n), p)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, n, a.Len())

		used := map[string]string{}
		for i, g := range groups(n) {
			c, ok := a.Color(g)
			require.True(t, ok)
			assert.Equal(t, p[i], c)
			if other, dup := used[c]; dup {
				t.Fatalf("groups %s and %s share color %s", other, g, c)
			}
			used[c] = g
		}
	}
}

func TestAssignOverflow(t *testing.T) {
	_, err := palette.Assign(groups(19), palette.Default())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodePaletteOverflow))
	assert.Contains(t, errors.UserMessage(err), "19 groups")

	_, err = palette.Assign([]string{"a"}, nil)
	assert.True(t, errors.Is(err, errors.ErrCodePaletteOverflow))
}

func TestAssignDuplicatesShareColor(t *testing.T) {
	a, err := palette.Assign([]string{"Wii", "NES", "Wii"}, palette.Palette{"#111111", "#222222"})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"Wii", "NES"}, a.Groups())
}

func TestAssignIsRebuiltEachTime(t *testing.T) {
	p := palette.Default()
	first, err := palette.Assign([]string{"Wii", "NES"}, p)
	require.NoError(t, err)
	second, err := palette.Assign([]string{"NES", "GB"}, p)
	require.NoError(t, err)

	c, _ := first.Color("NES")
	assert.Equal(t, p[1], c)
	c, _ = second.Color("NES")
	assert.Equal(t, p[0], c)
	_, ok := second.Color("Wii")
	assert.False(t, ok)

	m := first.Map()
	m["Wii"] = "#000000"
	c, _ = first.Color("Wii")
	assert.Equal(t, p[0], c)

	assert.Equal(t, "#abcdef", first.ColorOr("Dreamcast", "#abcdef"))
}

func TestLegendColumnMajor(t *testing.T) {
	a, err := palette.Assign(groups(18), palette.Default())
	require.NoError(t, err)

	grid := palette.Legend(a, 6)
	assert.Equal(t, 3, grid.Columns)
	assert.Equal(t, 6, grid.Rows)
	require.Len(t, grid.Entries, 18)

	assert.Equal(t, palette.LegendEntry{Group: "G00", Color: "#4c92c3", Column: 0, Row: 0}, grid.Entries[0])
	assert.Equal(t, 0, grid.Entries[5].Column)
	assert.Equal(t, 5, grid.Entries[5].Row)
	assert.Equal(t, 1, grid.Entries[6].Column)
	assert.Equal(t, 0, grid.Entries[6].Row)
	assert.Equal(t, 2, grid.Entries[17].Column)
}

func TestLegendSmall(t *testing.T) {
	a, err := palette.Assign(groups(6), palette.Default())
	require.NoError(t, err)

	grid := palette.Legend(a, 0)
	assert.Equal(t, 1, grid.Columns)
	assert.Equal(t, 6, grid.Rows)

	empty := palette.Legend(palette.Assignment{}, 6)
	assert.Empty(t, empty.Entries)
	assert.Zero(t, empty.Columns)
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, "#000000", palette.TextColor("#ffffff"))
	assert.Equal(t, "#000000", palette.TextColor("#ffc993"))
	assert.Equal(t, "#ffffff", palette.TextColor("#000000"))
	assert.Equal(t, "#ffffff", palette.TextColor("#1f3a93"))
	assert.Equal(t, "#000000", palette.TextColor("not-a-color"))
}

func TestDim(t *testing.T) {
	assert.Equal(t, "#4c92c3", palette.Dim("#4c92c3", 0))
	assert.Equal(t, "#ffffff", palette.Dim("#4c92c3", 1))
	assert.Equal(t, "bogus", palette.Dim("bogus", 0.5))
}
