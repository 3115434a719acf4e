package sqlcgen

import "time"

type Entity struct {
	ID        string
	DeviceID  *string
	SubID     *string
	TypeTag   *string
	Label     *string
	ParentRef *string
	Address   *string
	Holding   bool
	X         float64
	Y         float64
}

type EntityStatus struct {
	EntityID  string
	Status    string
	UpdatedAt time.Time
}

type SubLink struct {
	ID           string
	LocalSub     string
	LocalDevice  string
	RemoteSub    string
	RemoteDevice string
	Color        *string
}

type MapDefinition struct {
	ID            string
	Name          string
	GroupSelector *string
	Options       map[string]any
	Width         int32
	Height        int32
	CenterX       int32
	CenterY       int32
	UpdatedAt     time.Time
}

type MapNode struct {
	MapID    string
	NodeID   int32
	SourceID *string
	X        float64
	Y        float64
}

type DeviceTarget struct {
	EntityID string
	Address  string
}
