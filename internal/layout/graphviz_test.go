package layout

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"hawkmon/console-go/internal/topology"
)

func testEngine(t *testing.T, opts GraphvizOptions) *GraphvizEngine {
	t.Helper()
	return NewGraphvizEngine(zerolog.New(os.Stderr).Level(zerolog.Disabled), opts)
}

func TestGraphvizEngine_MissingBinaryIsToolFailure(t *testing.T) {
	e := testEngine(t, GraphvizOptions{
		Programs: map[string]string{"neato": "/nonexistent/neato"},
	})

	_, err := e.Layout(context.Background(), "graph g {}\n", topology.AlgoSpring1)
	if !errors.Is(err, ErrLayoutTool) {
		t.Fatalf("err = %v, want ErrLayoutTool", err)
	}
}

func TestGraphvizEngine_UnresolvableProgramIsToolFailure(t *testing.T) {
	e := testEngine(t, GraphvizOptions{
		Programs: map[string]string{"neato": ""},
	})
	t.Setenv("PATH", t.TempDir())

	_, err := e.Layout(context.Background(), "graph g {}\n", topology.AlgoSpring1)
	if !errors.Is(err, ErrLayoutTool) {
		t.Fatalf("err = %v, want ErrLayoutTool", err)
	}
}

// fakeTool writes a shell script standing in for a graphviz binary. It
// ignores its input and writes the canned plain document to the -o path.
func fakeTool(t *testing.T, plainDoc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-neato")
	script := "#!/bin/sh\nprintf '%s' '" + plainDoc + "' > \"$3\"\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

func TestGraphvizEngine_ConvertsToPixels(t *testing.T) {
	tool := fakeTool(t, "graph 2.0 4 3\nnode 0 1.0 0.5\nstop\n")
	e := testEngine(t, GraphvizOptions{
		Programs:  map[string]string{"neato": tool},
		PxPerUnit: 100,
	})

	res, err := e.Layout(context.Background(), "graph g {}\n", topology.AlgoSpring1)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	// scale 2.0 times 100 px per unit
	if xy := res.Coords[0]; xy != [2]float64{200, 100} {
		t.Fatalf("node 0 at %v, want [200 100]", xy)
	}
	if res.Scale != 2.0 {
		t.Fatalf("scale %v, want 2.0", res.Scale)
	}
}

func TestGraphvizEngine_MalformedOutputIsParseFailure(t *testing.T) {
	tool := fakeTool(t, "not plain output\n")
	e := testEngine(t, GraphvizOptions{
		Programs: map[string]string{"neato": tool},
	})

	_, err := e.Layout(context.Background(), "graph g {}\n", topology.AlgoSpring1)
	if !errors.Is(err, ErrLayoutParse) {
		t.Fatalf("err = %v, want ErrLayoutParse", err)
	}
}
