package sink

import (
	"bytes"
	"html/template"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// Mount point ids of the host page.
const (
	ContainerID = "treemap-container"
	MountID     = "treemap"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .Refresh}}
<meta http-equiv="refresh" content="{{.Refresh}}">
{{- end}}
<title>{{.Title}}</title>
<style>
  body { margin: 0; background: #fafafa; color: #222; font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; }
  #` + ContainerID + ` { display: flex; justify-content: center; padding: 24px; }
  #` + MountID + ` svg { max-width: 100%; height: auto; background: #fff; box-shadow: 0 1px 4px rgba(0, 0, 0, 0.15); }
</style>
</head>
<body>
<div id="` + ContainerID + `">
<div id="` + MountID + `" data-state="{{.State}}"{{if .RenderID}} data-render-id="{{.RenderID}}"{{end}}>
{{.SVG}}
</div>
</div>
</body>
</html>
`))

type page struct {
	Title    string
	State    string
	RenderID string
	Refresh  int
	SVG      template.HTML
}

func renderPage(p page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render page")
	}
	return buf.Bytes(), nil
}

// RenderHTML embeds the treemap SVG in a page whose body holds the
// #treemap-container and #treemap mount points.
func RenderHTML(l treemap.Layout, a palette.Assignment, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)
	title := r.title
	if title == "" {
		title = l.Name
	}
	svg := RenderSVG(l, a, opts...)
	return renderPage(page{
		Title:    title,
		State:    string(StateRendered),
		RenderID: r.renderID,
		SVG:      template.HTML(svg),
	})
}
