// Package render serializes a post-processed graph for the client-side
// rendering layer.
package render

import (
	"html"

	"hawkmon/console-go/internal/naming"
	"hawkmon/console-go/internal/topology"
)

type PayloadNode struct {
	ID    int     `json:"id"`
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Image string  `json:"image"`
	Text  string  `json:"text"`
	Shape string  `json:"shape"`
}

type PayloadLink struct {
	Source      int    `json:"source"`
	Target      int    `json:"target"`
	StatusColor string `json:"status_color"`
	Text        string `json:"text,omitempty"`
}

type Payload struct {
	Nodes []PayloadNode `json:"nodes"`
	Links []PayloadLink `json:"links"`
	Scale float64       `json:"scale"`
}

// Build converts the graph into the client payload: display image per node
// type, escaped and truncated label text, edge colors as resolved by the
// post-processor.
func Build(g topology.Graph) Payload {
	p := Payload{
		Nodes: make([]PayloadNode, 0, len(g.Nodes)),
		Links: make([]PayloadLink, 0, len(g.Relations)),
		Scale: g.Scale,
	}

	for _, n := range g.Nodes {
		p.Nodes = append(p.Nodes, PayloadNode{
			ID:    n.ID,
			Type:  n.Type.String(),
			X:     n.X,
			Y:     n.Y,
			Color: n.Status.Color(),
			Image: nodeImage(n),
			Text:  html.EscapeString(naming.Truncate(n.Label, topology.LabelMax)),
			Shape: nodeShape(n.Type),
		})
	}

	for _, r := range g.Relations {
		p.Links = append(p.Links, PayloadLink{
			Source:      r.ParentID,
			Target:      r.ChildID,
			StatusColor: r.LinkColor,
			Text:        html.EscapeString(r.Text),
		})
	}

	return p
}

func nodeShape(t topology.NodeType) string {
	switch t {
	case topology.RootMarker:
		return "doublecircle"
	case topology.Generic:
		return "box"
	default:
		return "circle"
	}
}

func nodeImage(n topology.Node) string {
	switch n.Type {
	case topology.RootMarker:
		return "images/map/root.png"
	case topology.Device:
		return "images/map/device_" + n.Status.String() + ".png"
	case topology.SubComponent:
		return "images/map/module_" + n.Status.String() + ".png"
	default:
		return "images/map/generic.png"
	}
}
