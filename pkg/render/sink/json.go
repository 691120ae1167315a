package sink

import (
	"encoding/json"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	renderID   string
	legendRows int
}

// WithJSONRenderID records the render pass id.
func WithJSONRenderID(id string) JSONOption { return func(r *jsonRenderer) { r.renderID = id } }

// WithJSONLegendRows sets the legend column height used for the exported grid.
func WithJSONLegendRows(n int) JSONOption { return func(r *jsonRenderer) { r.legendRows = n } }

type jsonOutput struct {
	Name     string              `json:"name"`
	RenderID string              `json:"render_id,omitempty"`
	Width    float64             `json:"width"`
	Height   float64             `json:"height"`
	Total    float64             `json:"total"`
	Palette  map[string]string   `json:"palette"`
	Legend   palette.LegendGrid  `json:"legend"`
	Groups   []treemap.GroupRect `json:"groups"`
	Tiles    []jsonTile          `json:"tiles"`
}

type jsonTile struct {
	treemap.Tile
	Color string `json:"color"`
}

// RenderJSON exports the layout, the color assignment and the legend grid as
// a pretty-printed JSON document. It does not modify l.
func RenderJSON(l treemap.Layout, a palette.Assignment, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{legendRows: palette.DefaultLegendRows}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Name:     l.Name,
		RenderID: r.renderID,
		Width:    l.Width,
		Height:   l.Height,
		Total:    l.Total,
		Palette:  a.Map(),
		Legend:   palette.Legend(a, r.legendRows),
		Groups:   l.Groups,
		Tiles:    make([]jsonTile, len(l.Tiles)),
	}
	for i, t := range l.Tiles {
		out.Tiles[i] = jsonTile{Tile: t, Color: a.ColorOr(t.Group, fallbackColor)}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}
