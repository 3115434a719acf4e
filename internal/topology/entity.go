package topology

// RawEntity is one monitored-entity record as supplied by the entity
// source. Classification into a NodeType happens during graph build.
type RawEntity struct {
	ID        string // inventory id, unique across the source
	DeviceID  string // set when the entity is (or belongs to) a device
	SubID     string // set when the entity is a sub-component
	TypeTag   string // explicit tag for manual nodes ("generic", "map_link", ...)
	Label     string
	Status    Status
	ParentRef string // declared parent entity id, may be empty
	X, Y      float64
	Holding   bool
}

// Classify maps a raw entity onto the closed node-type set. Entries that
// carry neither a device nor a sub-component identifier fall back to
// Generic, whatever their tag says.
func (e RawEntity) Classify() NodeType {
	switch {
	case e.SubID != "":
		return SubComponent
	case e.DeviceID != "" && e.TypeTag == "":
		return Device
	default:
		return Generic
	}
}

// SubLink is one configured sub-component-to-sub-component link between
// two devices.
type SubLink struct {
	LocalSub     string // sub-component on the declaring device
	LocalDevice  string
	RemoteSub    string
	RemoteDevice string
	Color        string // optional explicit edge color
}

// LinkTable indexes configured sub-links by declaring device id.
type LinkTable map[string][]SubLink
