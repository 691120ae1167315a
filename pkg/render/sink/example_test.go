package sink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/sink"
	"github.com/matzehuels/treemap/pkg/treemap"
)

func ExampleRenderSVG() {
	root := &dataset.Node{
		Name: "sales",
		Children: []*dataset.Node{
			{Name: "GB", Children: []*dataset.Node{{Name: "Tetris", Category: "GB", Value: 30.26}}},
			{Name: "NES", Children: []*dataset.Node{{Name: "Duck Hunt", Category: "NES", Value: 28.31}}},
		},
	}
	l, _ := treemap.Compute(root, treemap.DefaultOptions())
	a, _ := palette.Assign(l.Order, palette.Default())

	svg := string(sink.RenderSVG(l, a, sink.WithTooltips()))

	fmt.Println("SVG starts with:", svg[:4])
	fmt.Println("Tiles:", strings.Count(svg, `class="tile"`))
	fmt.Println("Legend items:", strings.Count(svg, `class="legend-item"`))
	fmt.Println("Tooltip:", strings.Contains(svg, `id="tooltip"`))
	// Output:
	// SVG starts with: <svg
	// Tiles: 2
	// Legend items: 2
	// Tooltip: true
}

func ExampleRenderStateSVG() {
	svg := sink.RenderStateSVG(sink.StateView{State: sink.StateLoading, Message: "Loading..."})
	fmt.Println(strings.Contains(string(svg), `data-state="loading"`))
	// Output: true
}
