package sink

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matzehuels/treemap/pkg/render/styles"
)

// State names the phase a view is in.
type State string

// View states.
const (
	StateLoading  State = "loading"
	StateError    State = "error"
	StateRendered State = "rendered"
)

// StateView describes a placeholder shown instead of the chart.
type StateView struct {
	State   State
	Title   string
	Message string
	Detail  string // error code or other secondary line
	Width   float64
	Height  float64
	Refresh int // seconds; HTML pages reload themselves when set
}

func (v StateView) size() (float64, float64) {
	w, h := v.Width, v.Height
	if w <= 0 {
		w = 960
	}
	if h <= 0 {
		h = 570
	}
	return w, h
}

// RenderStateSVG draws the loading or error placeholder.
func RenderStateSVG(v StateView) []byte {
	w, h := v.size()
	fill, stroke := "#f3f3f3", "#bbbbbb"
	if v.State == StateError {
		fill, stroke = "#fdecea", "#d9534f"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" data-state="%s">`+"\n",
		w, h, w, h, v.State)
	fmt.Fprintf(&buf, `  <rect class="state-box" x="1" y="1" width="%.1f" height="%.1f" rx="6" fill="%s" stroke="%s" stroke-dasharray="6 4"/>`+"\n",
		w-2, h-2, fill, stroke)

	y := h/2 - 20
	if v.Title != "" {
		fmt.Fprintf(&buf, `  <text id="title" x="%.1f" y="%.1f" text-anchor="middle" font-size="22" font-weight="bold">%s</text>`+"\n",
			w/2, y, styles.EscapeXML(v.Title))
	}
	fmt.Fprintf(&buf, `  <text id="description" class="state-message" x="%.1f" y="%.1f" text-anchor="middle" font-size="16">%s</text>`+"\n",
		w/2, y+30, styles.EscapeXML(v.Message))
	if v.Detail != "" {
		fmt.Fprintf(&buf, `  <text class="state-detail" x="%.1f" y="%.1f" text-anchor="middle" font-size="12" fill="#666">%s</text>`+"\n",
			w/2, y+54, styles.EscapeXML(v.Detail))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderStateHTML wraps [RenderStateSVG] in the host page.
func RenderStateHTML(v StateView) ([]byte, error) {
	title := v.Title
	if title == "" {
		title = "Treemap"
	}
	return renderPage(page{
		Title:   title,
		State:   string(v.State),
		Refresh: v.Refresh,
		SVG:     template.HTML(RenderStateSVG(v)),
	})
}
