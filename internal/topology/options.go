package topology

// Algorithm selects the layout engine invocation mode.
type Algorithm string

const (
	AlgoCircular Algorithm = "circular"
	AlgoFlat     Algorithm = "flat"
	AlgoRadial   Algorithm = "radial"
	AlgoSpring1  Algorithm = "spring1"
	AlgoSpring2  Algorithm = "spring2"
)

// Program maps an algorithm to its graphviz program name.
func (a Algorithm) Program() string {
	switch a {
	case AlgoCircular:
		return "circo"
	case AlgoFlat:
		return "dot"
	case AlgoRadial:
		return "twopi"
	case AlgoSpring2:
		return "fdp"
	default:
		return "neato"
	}
}

// Valid reports whether a is a known algorithm name.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgoCircular, AlgoFlat, AlgoRadial, AlgoSpring1, AlgoSpring2:
		return true
	}
	return false
}

// Options is the read-only configuration bag for one map build.
type Options struct {
	Algorithm Algorithm
	Radius    float64 // node visual radius, px
	Spacing   float64 // inter-node separation, graph units
	Width     int     // canvas max width, px
	Height    int     // canvas max height, px
	Zoom      float64
	CenterX   int
	CenterY   int

	TextFilter       string // substring filter on entity labels
	IncludeSubgroups bool
	NoRoot           bool // suppress the root marker node
	EmptyMap         bool // build no nodes regardless of source content

	// Holding-area origin; zero values derive from Width/Radius.
	HoldingX int
	HoldingY int
}

// DefaultOptions returns the option set used when a stored definition
// carries no overrides.
func DefaultOptions() Options {
	return Options{
		Algorithm: AlgoSpring1,
		Radius:    40,
		Spacing:   5,
		Width:     900,
		Height:    600,
		Zoom:      1,
	}
}

// normalized applies floors and defaults so downstream stages never see
// zero or negative geometry.
func (o Options) normalized() Options {
	if !o.Algorithm.Valid() {
		o.Algorithm = AlgoSpring1
	}
	if o.Radius <= 0 {
		o.Radius = 1
	}
	if o.Spacing <= 0 {
		o.Spacing = 5
	}
	if o.Width <= 0 {
		o.Width = 900
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Zoom <= 0 {
		o.Zoom = 1
	}
	return o
}
