package topology

import (
	"fmt"
	"strings"

	"hawkmon/console-go/internal/naming"
)

// LabelMax is the maximum number of visible characters in a node label;
// longer labels are elided.
const LabelMax = 16

const rootLabel = "hawkmon"

// BuildGraph assembles a Graph from raw entity records. Node ids are
// assigned sequentially in input order, starting at 0 for the root marker
// (1 for the first entity when the root marker is suppressed). Relations
// are derived per node against the nodes admitted before and after it,
// then orphans are anchored to the root marker.
func BuildGraph(entities []RawEntity, links LinkTable, opts Options) Graph {
	opts = opts.normalized()

	var g Graph
	if !opts.NoRoot {
		g.Nodes = append(g.Nodes, Node{
			ID:     0,
			Type:   RootMarker,
			Label:  rootLabel,
			Status: StatusNormal,
			Radius: opts.Radius,
		})
	}

	if opts.EmptyMap {
		return g
	}

	next := len(g.Nodes)
	if opts.NoRoot {
		next = 1 // id 0 stays reserved even when the marker is absent
	}
	for _, e := range entities {
		if opts.TextFilter != "" && !strings.Contains(strings.ToLower(e.Label), strings.ToLower(opts.TextFilter)) {
			continue
		}

		n := Node{
			ID:       next,
			Type:     e.Classify(),
			SourceID: e.ID,
			Label:    e.Label,
			Status:   e.Status,
			X:        e.X,
			Y:        e.Y,
			ParentID: e.ParentRef,
			Holding:  e.Holding,
			Radius:   opts.Radius,
		}
		switch n.Type {
		case Device:
			n.SourceID = e.DeviceID
		case SubComponent:
			// Sub-components resolve links through their owning device.
			n.SourceID = e.DeviceID
			n.SubID = e.SubID
		}
		g.Nodes = append(g.Nodes, n)
		next++
	}

	for _, n := range g.Nodes {
		g.Relations = append(g.Relations, DeriveRelations(g, n, links)...)
	}
	if !opts.NoRoot {
		g.Relations = append(g.Relations, connectOrphans(g)...)
	}

	return g
}

// GraphDescription renders the graph as the textual document consumed by
// the external layout tool. The header encodes canvas size and the
// parameter specific to the selected algorithm; node declarations carry
// only positioning hints, never styling colors.
func GraphDescription(g Graph, opts Options) string {
	opts = opts.normalized()

	var b strings.Builder
	b.WriteString("graph networkmap {\n")
	b.WriteString(fmt.Sprintf("\tsize=\"%.1f,%.1f\"; ratio=fill;\n",
		float64(opts.Width)*opts.Zoom/96, float64(opts.Height)*opts.Zoom/96))
	b.WriteString(fmt.Sprintf("\tnodesep=%.2f; overlap=scale;\n", opts.Spacing/10))

	switch opts.Algorithm {
	case AlgoFlat:
		b.WriteString(fmt.Sprintf("\tranksep=%.2f;\n", opts.Spacing/10))
	case AlgoRadial:
		b.WriteString(fmt.Sprintf("\tranksep=%.2f;\n", opts.Spacing/5))
	case AlgoCircular:
		b.WriteString(fmt.Sprintf("\tmindist=%.2f;\n", opts.Spacing/10))
	default: // spring variants
		b.WriteString(fmt.Sprintf("\tK=%.2f;\n", opts.Spacing/10))
	}

	radius := opts.Radius / 50
	if radius <= 0 {
		radius = 1
	}

	for _, n := range g.Nodes {
		shape := "circle"
		if n.Type == RootMarker {
			shape = "doublecircle"
		}
		b.WriteString(fmt.Sprintf("\t%d [label=%q, shape=%s, width=%.2f, height=%.2f, fixedsize=true];\n",
			n.ID, naming.Truncate(n.Label, LabelMax), shape, radius, radius))
	}

	for _, r := range g.Relations {
		b.WriteString(fmt.Sprintf("\t%d -- %d;\n", r.ParentID, r.ChildID))
	}

	b.WriteString("}\n")
	return b.String()
}
