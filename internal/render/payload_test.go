package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hawkmon/console-go/internal/topology"
)

func TestBuild_NodeProjection(t *testing.T) {
	g := topology.Graph{
		Nodes: []topology.Node{
			{ID: 0, Type: topology.RootMarker, Label: "hawkmon", Status: topology.StatusNormal},
			{ID: 1, Type: topology.Device, Label: "core-switch", Status: topology.StatusCritical, X: 10, Y: 20},
			{ID: 2, Type: topology.SubComponent, Label: "eth0", Status: topology.StatusWarning},
		},
		Scale: 1.25,
	}

	p := Build(g)

	require.Len(t, p.Nodes, 3)
	assert.Equal(t, 1.25, p.Scale)

	root := p.Nodes[0]
	assert.Equal(t, "root", root.Type)
	assert.Equal(t, "doublecircle", root.Shape)
	assert.Equal(t, "images/map/root.png", root.Image)

	dev := p.Nodes[1]
	assert.Equal(t, "device", dev.Type)
	assert.Equal(t, 10.0, dev.X)
	assert.Equal(t, 20.0, dev.Y)
	assert.Equal(t, topology.StatusCritical.Color(), dev.Color)
	assert.Equal(t, "images/map/device_critical.png", dev.Image)

	sub := p.Nodes[2]
	assert.Equal(t, "images/map/module_warning.png", sub.Image)
}

func TestBuild_EscapesAndTruncatesLabels(t *testing.T) {
	g := topology.Graph{
		Nodes: []topology.Node{
			{ID: 1, Type: topology.Device, Label: "<script>alert</script>"},
		},
	}

	p := Build(g)

	require.Len(t, p.Nodes, 1)
	text := p.Nodes[0].Text
	assert.NotContains(t, text, "<script>")
	assert.Contains(t, text, "&lt;")
}

func TestBuild_LongLabelTruncated(t *testing.T) {
	g := topology.Graph{
		Nodes: []topology.Node{
			{ID: 1, Type: topology.Device, Label: strings.Repeat("a", 20)},
		},
	}

	p := Build(g)

	require.Len(t, p.Nodes, 1)
	assert.Equal(t, strings.Repeat("a", 15)+"…", p.Nodes[0].Text)
}

func TestBuild_LinksCarryResolvedColors(t *testing.T) {
	g := topology.Graph{
		Nodes: []topology.Node{{ID: 1}, {ID: 2}},
		Relations: []topology.Relation{
			{ParentID: 1, ChildID: 2, LinkColor: "#e63c52", Text: "uplink"},
		},
	}

	p := Build(g)

	require.Len(t, p.Links, 1)
	assert.Equal(t, 1, p.Links[0].Source)
	assert.Equal(t, 2, p.Links[0].Target)
	assert.Equal(t, "#e63c52", p.Links[0].StatusColor)
	assert.Equal(t, "uplink", p.Links[0].Text)
}

func TestBuild_EmptyGraph(t *testing.T) {
	p := Build(topology.Graph{})

	assert.NotNil(t, p.Nodes)
	assert.NotNil(t, p.Links)
	assert.Empty(t, p.Nodes)
	assert.Empty(t, p.Links)
}
