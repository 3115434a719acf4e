package topology

// HoldingColumns is the width of the implicit holding-area grid.
const HoldingColumns = 11

const holdingPad = 10

// edgePriority classifies a relation by the type pair of its endpoints.
// Sub-component edges outrank plain device-to-device edges; a negative
// priority marks edges that are always accepted and never deduplicated.
func edgePriority(r Relation) int {
	p, c := r.ParentType, r.ChildType
	switch {
	case p == Generic || c == Generic || p == RootMarker || c == RootMarker:
		return -1
	case p == SubComponent && c == SubComponent:
		return 1
	case p == SubComponent || c == SubComponent:
		return 1
	default: // Device–Device
		return 0
	}
}

// CleanRelations deduplicates and prioritizes the raw relation set:
// self-loops are always discarded; for each unordered node pair only the
// highest-priority edge survives (first seen wins ties); generic and
// root-marker edges pass through untouched. The operation is idempotent.
func CleanRelations(rels []Relation) []Relation {
	type kept struct {
		idx  int
		prio int
	}
	byPair := make(map[[2]int]kept)
	out := make([]Relation, 0, len(rels))

	for _, r := range rels {
		if r.ParentID == r.ChildID {
			continue
		}

		prio := edgePriority(r)
		if prio < 0 {
			out = append(out, r)
			continue
		}

		pair := [2]int{r.ParentID, r.ChildID}
		if pair[0] > pair[1] {
			pair[0], pair[1] = pair[1], pair[0]
		}

		prev, ok := byPair[pair]
		if !ok {
			byPair[pair] = kept{idx: len(out), prio: prio}
			out = append(out, r)
			continue
		}
		if prio > prev.prio {
			out[prev.idx] = r
			byPair[pair] = kept{idx: prev.idx, prio: prio}
		}
	}

	return out
}

// ResolveEdgeColors fills in the display color of every relation that does
// not declare an explicit override, using the worse of the two endpoint
// statuses.
func ResolveEdgeColors(g Graph) Graph {
	status := make(map[int]Status, len(g.Nodes))
	for _, n := range g.Nodes {
		status[n.ID] = n.Status
	}

	rels := make([]Relation, len(g.Relations))
	copy(rels, g.Relations)
	for i, r := range rels {
		if r.LinkColor != "" {
			continue
		}
		rels[i].LinkColor = WorstStatus(status[r.ParentID], status[r.ChildID]).Color()
	}
	g.Relations = rels
	return g
}

// PlaceHoldingNodes assigns holding-area nodes to grid slots along the
// canvas edge. The grid is HoldingColumns wide; each node takes the next
// slot in processing order, and row positions are clamped so the staging
// band never runs past the canvas bottom.
func PlaceHoldingNodes(g Graph, opts Options) Graph {
	opts = opts.normalized()

	originX := float64(opts.HoldingX)
	originY := float64(opts.HoldingY)
	if opts.HoldingX == 0 {
		originX = float64(opts.Width) + 2*opts.Radius
	}
	if opts.HoldingY == 0 {
		originY = opts.Radius
	}
	step := 2*opts.Radius + holdingPad
	maxY := float64(opts.Height) - opts.Radius
	if maxY < originY {
		maxY = originY
	}

	nodes := make([]Node, len(g.Nodes))
	copy(nodes, g.Nodes)

	slot := 0
	for i, n := range nodes {
		if !n.Holding {
			continue
		}
		col := slot % HoldingColumns
		row := slot / HoldingColumns
		slot++

		nodes[i].X = originX + float64(col)*step
		y := originY + float64(row)*step
		if y > maxY {
			y = maxY
		}
		nodes[i].Y = y
	}

	g.Nodes = nodes
	return g
}

// SetCoordinates copies layout-tool coordinates onto the graph. Nodes the
// tool did not place keep their stored positions; holding-area nodes are
// skipped entirely, their placement belongs to PlaceHoldingNodes.
func SetCoordinates(g Graph, coords map[int][2]float64, scale float64) Graph {
	nodes := make([]Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	for i, n := range nodes {
		if n.Holding {
			continue
		}
		if xy, ok := coords[n.ID]; ok {
			nodes[i].X = xy[0]
			nodes[i].Y = xy[1]
		}
	}
	g.Nodes = nodes
	g.Scale = scale
	return g
}

// PostProcess runs the full post-layout pass: relation cleanup, edge
// coloring and holding-area placement. The input graph is not modified.
func PostProcess(g Graph, opts Options) Graph {
	g.Relations = CleanRelations(g.Relations)
	g = ResolveEdgeColors(g)
	g = PlaceHoldingNodes(g, opts)
	return g
}
