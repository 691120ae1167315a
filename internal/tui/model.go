// Package tui is the interactive terminal viewer for the treemap.
//
// The viewer lays out the dataset on the same canvas as the SVG output and
// samples it once per terminal cell, so tiles keep their proportions at any
// window size. Moving the mouse over a tile shows its name, platform and
// sales in a tooltip.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/treemap/internal/view"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/styles"
	"github.com/matzehuels/treemap/pkg/treemap"
)

const (
	headerHeight = 1
	footerHeight = 1
	minMapWidth  = 10
	minMapHeight = 4
)

// loadedMsg carries the rendered dataset, or the reason it is unavailable.
type loadedMsg struct {
	res *pipeline.Result
	err error
}

// Model is the bubbletea model of the viewer.
type Model struct {
	ctx    context.Context
	runner *pipeline.Runner
	store  *view.Store
	opts   pipeline.Options

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int

	state  pipeline.State
	result *pipeline.Result
	err    error

	grid       grid
	legend     palette.LegendGrid
	showLegend bool

	hover  int
	mouseX int
	mouseY int
}

// New creates a viewer that waits for store to be published.
func New(ctx context.Context, runner *pipeline.Runner, store *view.Store, opts pipeline.Options) Model {
	opts.Formats = []string{pipeline.FormatJSON}
	return Model{
		ctx:        ctx,
		runner:     runner,
		store:      store,
		opts:       opts,
		keys:       defaultKeys,
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		state:      pipeline.StateUnloaded,
		showLegend: true,
		hover:      -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForDataset())
}

// waitForDataset blocks until the fetch is published and renders it.
func (m Model) waitForDataset() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.store.Wait(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		res, err := view.Render(m.ctx, m.runner, m.store, m.opts)
		return loadedMsg{res: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Legend):
			m.showLegend = !m.showLegend
			m.relayout()
		}

	case tea.MouseMsg:
		m.mouseX, m.mouseY = msg.X, msg.Y-headerHeight
		m.hover = m.grid.at(m.mouseX, m.mouseY)

	case loadedMsg:
		m.apply(msg)
		m.relayout()

	case spinner.TickMsg:
		if m.state != pipeline.StateUnloaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) apply(msg loadedMsg) {
	switch {
	case msg.err != nil:
		m.state = pipeline.StateFailed
		m.err = msg.err
	case msg.res.State == pipeline.StateFailed:
		m.state = pipeline.StateFailed
		m.err = msg.res.Err
	default:
		m.state = msg.res.State
		m.result = msg.res
		m.legend = palette.Legend(msg.res.Assignment, m.opts.LegendRows)
	}
}

// mapSize returns the cell size of the map area for the current window.
func (m Model) mapSize() (int, int) {
	h := m.height - headerHeight - footerHeight
	if m.showLegend {
		h -= m.legend.Rows + 1
	}
	return max(minMapWidth, m.width), max(minMapHeight, h)
}

func (m *Model) relayout() {
	m.hover = -1
	if m.result == nil || m.width == 0 {
		return
	}
	w, h := m.mapSize()
	m.grid = newGrid(m.result.Layout, w, h)
}

// Hovered returns the tile under the mouse pointer.
func (m Model) Hovered() (treemap.Tile, bool) {
	if m.result == nil || m.hover < 0 {
		return treemap.Tile{}, false
	}
	return m.result.Layout.Tiles[m.hover], true
}

// State returns the viewer's current phase.
func (m Model) State() pipeline.State { return m.state }

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var body string
	switch m.state {
	case pipeline.StateUnloaded:
		body = m.spinner.View() + " " + dimStyle.Render("Loading dataset...")
	case pipeline.StateFailed:
		body = m.errorView()
	default:
		body = m.mapView()
		if m.showLegend {
			body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.legendView())
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.help.View(m.keys))
}

func (m Model) headerView() string {
	title := "Video Game Sales"
	if m.result != nil && m.result.Layout.Name != "" {
		title = m.result.Layout.Name
	}
	line := titleStyle.Render(title)
	if m.result != nil {
		l := m.result.Layout
		line += dimStyle.Render(fmt.Sprintf("  %d titles · %d platforms", len(l.Tiles), len(l.Order)))
	}
	return line
}

func (m Model) mapView() string {
	l := m.result.Layout
	cells := m.grid.cells(l, m.result.Assignment, m.hover)
	if t, ok := m.Hovered(); ok {
		overlay(cells, tooltipLines(t), m.mouseX, m.mouseY, tooltipBg, tooltipFg)
	}
	return paint(cells)
}

func (m Model) legendView() string {
	cols := make([]string, m.legend.Columns)
	for _, e := range m.legend.Entries {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(e.Color)).Render("  ")
		line := swatch + " " + e.Group
		if cols[e.Column] != "" {
			cols[e.Column] += "\n"
		}
		cols[e.Column] += line
	}
	for i := range cols {
		cols[i] = lipgloss.NewStyle().PaddingRight(3).Render(cols[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) errorView() string {
	lines := []string{
		"Could not load the sales data",
		errors.UserMessage(m.err),
	}
	if code := errors.GetCode(m.err); code != "" {
		lines = append(lines, codeStyle.Render(string(code)))
	}
	return errorStyle.Render(strings.Join(lines, "\n"))
}

func tooltipLines(t treemap.Tile) []string {
	return []string{
		"Name: " + t.Name,
		"Category: " + t.Category,
		"Value: " + styles.FormatValue(t.Value),
	}
}
