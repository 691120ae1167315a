package sink

import (
	"bytes"
	"fmt"
)

const (
	tooltipCSS = `
    #tooltip { pointer-events: none; transition: opacity 0.1s ease; }
    #tooltip[visibility="hidden"] { opacity: 0; }
    #tooltip[visibility="visible"] { opacity: 1; }
    #tooltip rect { fill: rgba(255, 255, 204, 0.95); stroke: #333; stroke-width: 0.5; }
    #tooltip text { font-size: 12px; fill: #000; }`

	tooltipJS = `
    (function () {
      const svg = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg');
      const tip = svg.querySelector('#tooltip');
      const box = tip.querySelector('rect');
      const lines = tip.querySelectorAll('tspan');
      const vb = svg.viewBox.baseVal;
      function at(evt) {
        const pt = svg.createSVGPoint();
        pt.x = evt.clientX; pt.y = evt.clientY;
        return pt.matrixTransform(svg.getScreenCTM().inverse());
      }
      svg.querySelectorAll('.tile').forEach(function (tile) {
        tile.addEventListener('mousemove', function (evt) {
          lines[0].textContent = 'Name: ' + tile.dataset.name;
          lines[1].textContent = 'Category: ' + tile.dataset.category;
          lines[2].textContent = 'Value: ' + tile.dataset.value;
          tip.setAttribute('data-name', tile.dataset.name);
          tip.setAttribute('data-category', tile.dataset.category);
          tip.setAttribute('data-value', tile.dataset.value);
          const text = tip.querySelector('text').getBBox();
          box.setAttribute('width', (text.width + 16).toFixed(1));
          box.setAttribute('height', (text.height + 12).toFixed(1));
          const p = at(evt);
          let x = p.x + 12, y = p.y + 12;
          if (x + text.width + 16 > vb.x + vb.width) x = p.x - text.width - 28;
          if (y + text.height + 12 > vb.y + vb.height) y = p.y - text.height - 24;
          tip.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
          tip.setAttribute('visibility', 'visible');
        });
        tile.addEventListener('mouseout', function () {
          tip.setAttribute('visibility', 'hidden');
        });
      });
    })();`
)

func renderTooltip(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", tooltipCSS)
	buf.WriteString(`  <g id="tooltip" visibility="hidden" transform="translate(0,0)">` + "\n")
	buf.WriteString(`    <rect rx="3" ry="3" width="0" height="0"/>` + "\n")
	buf.WriteString(`    <text x="8" y="6"><tspan x="8" dy="12"></tspan><tspan x="8" dy="15"></tspan><tspan x="8" dy="15"></tspan></text>` + "\n")
	buf.WriteString("  </g>\n")
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", tooltipJS)
}
