// Package layout invokes an external graph-layout tool and parses the
// coordinates it computes. The pipeline itself stays platform-agnostic:
// callers inject an Engine and the graphviz implementation deals with
// binaries, temp files and timeouts.
package layout

import (
	"context"
	"errors"

	"hawkmon/console-go/internal/topology"
)

var (
	// ErrLayoutTool marks a failed tool invocation: nonzero exit, missing
	// output file, or timeout. No partial coordinates are trusted.
	ErrLayoutTool = errors.New("layout tool failed")

	// ErrLayoutParse marks malformed tool output.
	ErrLayoutParse = errors.New("layout output malformed")
)

// Result is the all-or-nothing outcome of one layout run: the tool's
// global scale factor and per-node pixel coordinates.
type Result struct {
	Scale  float64
	Coords map[int][2]float64
}

// Engine computes node coordinates for a graph-description document.
type Engine interface {
	Layout(ctx context.Context, doc string, algo topology.Algorithm) (Result, error)
}

// OutputParser turns raw tool output into a Result in tool-native units.
// Implementations return ErrLayoutParse (possibly wrapped) for recoverable
// format problems; any other error is surfaced untouched.
type OutputParser interface {
	Parse(output []byte) (Result, error)
}

// fallbackParser tries a primary parser and falls back to the default one
// only when the primary reports a handled parse failure.
type fallbackParser struct {
	primary  OutputParser
	fallback OutputParser
}

// ParseWithFallback combines two parsers: fallback runs only when primary
// fails with ErrLayoutParse. Unhandled failures from the primary parser
// surface to the caller and produce no result.
func ParseWithFallback(primary, fallback OutputParser) OutputParser {
	return &fallbackParser{primary: primary, fallback: fallback}
}

func (p *fallbackParser) Parse(output []byte) (Result, error) {
	res, err := p.primary.Parse(output)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, ErrLayoutParse) {
		return p.fallback.Parse(output)
	}
	return Result{}, err
}
