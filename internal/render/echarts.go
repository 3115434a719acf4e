package render

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"hawkmon/console-go/internal/naming"
	"hawkmon/console-go/internal/topology"
)

// HTML writes a self-contained HTML view of the laid-out graph. Node
// positions come from the layout run, so the chart uses no force
// simulation of its own.
func HTML(w io.Writer, g topology.Graph, title string) error {
	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       nodeName(n),
			X:          float32(n.X),
			Y:          float32(n.Y),
			Value:      float32(n.Status),
			SymbolSize: 2 * n.Radius,
			ItemStyle:  &opts.ItemStyle{Color: n.Status.Color()},
		})
	}

	byID := make(map[int]string, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = nodeName(n)
	}

	links := make([]opts.GraphLink, 0, len(g.Relations))
	for _, r := range g.Relations {
		links = append(links, opts.GraphLink{
			Source: byID[r.ParentID],
			Target: byID[r.ChildID],
		})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	graph.AddSeries(
		"map",
		nodes,
		links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout:    "none",
			Roam:      opts.Bool(true),
			Draggable: opts.Bool(true),
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "top",
		}),
	)

	page := components.NewPage()
	page.AddCharts(graph)
	return page.Render(w)
}

// nodeName builds a chart-unique node name; echarts links reference nodes
// by name, and labels alone may collide.
func nodeName(n topology.Node) string {
	label := naming.Truncate(n.Label, topology.LabelMax)
	if label == "" {
		return "#" + strconv.Itoa(n.ID)
	}
	return strconv.Itoa(n.ID) + " " + label
}
