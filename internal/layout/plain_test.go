package layout

import (
	"errors"
	"testing"
)

const samplePlain = `graph 1.5 4.0 3.0
node 0 1.0 2.0 0.75 0.75 "hawkmon" solid doublecircle black lightgrey
node 1 2.5 0.5 0.75 0.75 "alpha" solid circle black lightgrey
edge 0 1 4 1.0 2.0 1.5 1.2 2.5 0.5 solid black
stop
`

func TestPlainParser_ParsesNodesAndScale(t *testing.T) {
	res, err := PlainParser{}.Parse([]byte(samplePlain))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if res.Scale != 1.5 {
		t.Fatalf("scale %v, want 1.5", res.Scale)
	}
	if len(res.Coords) != 2 {
		t.Fatalf("got %d coordinates, want 2", len(res.Coords))
	}
	if xy := res.Coords[1]; xy != [2]float64{2.5, 0.5} {
		t.Fatalf("node 1 at %v, want [2.5 0.5]", xy)
	}
}

func TestPlainParser_MalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"no graph record", "node 1 2.5 0.5\nstop\n"},
		{"short graph record", "graph 1.5\n"},
		{"bad scale", "graph zero 4 3\n"},
		{"negative scale", "graph -1 4 3\n"},
		{"bad node id", "graph 1 4 3\nnode one 2.5 0.5\n"},
		{"bad coordinates", "graph 1 4 3\nnode 1 x y\n"},
		{"unknown record", "graph 1 4 3\nbogus 1 2 3\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PlainParser{}.Parse([]byte(tc.input))
			if !errors.Is(err, ErrLayoutParse) {
				t.Fatalf("err = %v, want ErrLayoutParse", err)
			}
		})
	}
}

type stubParser struct {
	res Result
	err error
}

func (s stubParser) Parse([]byte) (Result, error) { return s.res, s.err }

func TestParseWithFallback_PrimaryWins(t *testing.T) {
	primary := stubParser{res: Result{Scale: 2}}
	p := ParseWithFallback(primary, stubParser{err: errors.New("fallback must not run")})

	res, err := p.Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Scale != 2 {
		t.Fatalf("scale %v, want primary result", res.Scale)
	}
}

func TestParseWithFallback_FallsBackOnParseError(t *testing.T) {
	primary := stubParser{err: ErrLayoutParse}
	p := ParseWithFallback(primary, PlainParser{})

	res, err := p.Parse([]byte(samplePlain))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Coords) != 2 {
		t.Fatalf("fallback did not run: %+v", res)
	}
}

func TestParseWithFallback_UnhandledErrorSurfaces(t *testing.T) {
	boom := errors.New("disk gone")
	p := ParseWithFallback(stubParser{err: boom}, PlainParser{})

	_, err := p.Parse([]byte(samplePlain))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the primary failure", err)
	}
}
