package topology

// NodeType is the closed set of node kinds a map graph can contain.
type NodeType int

const (
	// RootMarker is the synthetic anchor node (always id 0 when enabled).
	RootMarker NodeType = iota
	Device
	SubComponent
	Generic
)

func (t NodeType) String() string {
	switch t {
	case RootMarker:
		return "root"
	case Device:
		return "device"
	case SubComponent:
		return "subcomponent"
	case Generic:
		return "generic"
	default:
		return "unknown"
	}
}

// Status is the ordinal health scale used to color nodes and edges.
// Higher values are more critical.
type Status int

const (
	StatusNormal Status = iota
	StatusNotInit
	StatusUnknown
	StatusWarning
	StatusCritical
	StatusAlertFired
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusNotInit:
		return "not_init"
	case StatusUnknown:
		return "unknown"
	case StatusWarning:
		return "warning"
	case StatusCritical:
		return "critical"
	case StatusAlertFired:
		return "alert_fired"
	default:
		return "unknown"
	}
}

// Color returns the display color for a status.
func (s Status) Color() string {
	switch s {
	case StatusNormal:
		return "#82b92e"
	case StatusNotInit:
		return "#5bb6e5"
	case StatusWarning:
		return "#ffd731"
	case StatusCritical:
		return "#e63c52"
	case StatusAlertFired:
		return "#ffa631"
	default:
		return "#b2b2b2"
	}
}

// WorstStatus returns whichever of the two statuses is more critical.
func WorstStatus(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}

// Node is a single map node. ID is sequential within one graph, assigned
// during build; 0 is reserved for the root marker.
type Node struct {
	ID       int
	Type     NodeType
	SourceID string // inventory reference; meaning depends on Type
	SubID    string // owning sub-component identifier, SubComponent nodes only
	Label    string
	Status   Status
	X, Y     float64
	ParentID string // declared parent reference, Generic nodes only
	Holding  bool   // not yet positioned by the user
	Radius   float64
}

// Relation is an edge between two nodes of the same graph.
type Relation struct {
	ParentID   int
	ChildID    int
	ParentType NodeType
	ChildType  NodeType
	ParentSub  string // sub-component id on the parent end, when applicable
	ChildSub   string
	LinkColor  string // explicit override; empty means color by worst endpoint status
	Text       string
}

// Graph owns the node and relation sets for one map-building session.
// It is a plain value: the builder returns one and the post-processor
// takes and returns one, so no state hides between pipeline stages.
type Graph struct {
	Nodes     []Node
	Relations []Relation
	Scale     float64 // layout tool scale factor, set after layout
}

// NodeByID returns the node with the given graph id.
func (g Graph) NodeByID(id int) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeByDevice returns the Device node whose source id matches.
func (g Graph) NodeByDevice(deviceID string) (Node, bool) {
	if deviceID == "" {
		return Node{}, false
	}
	for _, n := range g.Nodes {
		if n.Type == Device && n.SourceID == deviceID {
			return n, true
		}
	}
	return Node{}, false
}

// NodeBySub returns the SubComponent node owning the given sub-component id.
func (g Graph) NodeBySub(subID string) (Node, bool) {
	if subID == "" {
		return Node{}, false
	}
	for _, n := range g.Nodes {
		if n.Type == SubComponent && n.SubID == subID {
			return n, true
		}
	}
	return Node{}, false
}

// NodeBySource returns any node whose source id matches, preferring lower ids.
func (g Graph) NodeBySource(sourceID string) (Node, bool) {
	if sourceID == "" {
		return Node{}, false
	}
	for _, n := range g.Nodes {
		if n.SourceID == sourceID {
			return n, true
		}
	}
	return Node{}, false
}
