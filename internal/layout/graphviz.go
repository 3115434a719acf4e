package layout

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"hawkmon/console-go/internal/topology"
)

// GraphvizOptions configures the graphviz-backed engine.
type GraphvizOptions struct {
	// Programs overrides the binary per graphviz program name ("neato",
	// "dot", ...). Unset entries resolve through PATH.
	Programs map[string]string
	TempDir  string // empty means the OS temp dir
	Timeout  time.Duration
	// PxPerUnit converts tool-native units into pixels, together with the
	// scale factor the tool reports. Derive it from the node radius.
	PxPerUnit float64
	// Parser replaces the default plain-output parser when set.
	Parser OutputParser
	// FallbackToDefault retries a handled parse failure of the custom
	// parser with the default one.
	FallbackToDefault bool
}

// GraphvizEngine runs a graphviz binary over a temp file and reads the
// plain-output coordinates back.
type GraphvizEngine struct {
	log  zerolog.Logger
	opts GraphvizOptions
}

func NewGraphvizEngine(log zerolog.Logger, opts GraphvizOptions) *GraphvizEngine {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.PxPerUnit <= 0 {
		opts.PxPerUnit = 80
	}
	return &GraphvizEngine{log: log, opts: opts}
}

// Layout writes the document to a uniquely-named temp file, invokes the
// binary matching the algorithm, and parses the plain output. Both temp
// files are removed on every exit path. A single retry is attempted when
// the tool itself failed; parse failures are never retried.
func (e *GraphvizEngine) Layout(ctx context.Context, doc string, algo topology.Algorithm) (Result, error) {
	res, err := e.layoutOnce(ctx, doc, algo)
	if err != nil && errors.Is(err, ErrLayoutTool) && ctx.Err() == nil {
		e.log.Warn().Err(err).Str("algorithm", string(algo)).Msg("layout tool failed, retrying once")
		res, err = e.layoutOnce(ctx, doc, algo)
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (e *GraphvizEngine) layoutOnce(ctx context.Context, doc string, algo topology.Algorithm) (Result, error) {
	program := algo.Program()
	binary := e.opts.Programs[program]
	if binary == "" {
		path, err := exec.LookPath(program)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %s not found", ErrLayoutTool, program)
		}
		binary = path
	}

	in, err := os.CreateTemp(e.opts.TempDir, "netmap-*.gv")
	if err != nil {
		return Result{}, fmt.Errorf("%w: temp input: %v", ErrLayoutTool, err)
	}
	defer os.Remove(in.Name())

	if _, err := in.WriteString(doc); err != nil {
		in.Close()
		return Result{}, fmt.Errorf("%w: write input: %v", ErrLayoutTool, err)
	}
	if err := in.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: close input: %v", ErrLayoutTool, err)
	}

	out, err := os.CreateTemp(e.opts.TempDir, "netmap-*.plain")
	if err != nil {
		return Result{}, fmt.Errorf("%w: temp output: %v", ErrLayoutTool, err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	runCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, binary, "-Tplain", "-o", outPath, in.Name())
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		e.log.Error().
			Err(err).
			Str("program", program).
			Str("stderr", stderr.String()).
			Dur("elapsed", time.Since(start)).
			Msg("layout tool run failed")
		return Result{}, fmt.Errorf("%w: %s: %v", ErrLayoutTool, program, err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: read output: %v", ErrLayoutTool, err)
	}

	res, err := e.parse(raw)
	if err != nil {
		return Result{}, err
	}

	e.log.Debug().
		Str("program", program).
		Int("nodes", len(res.Coords)).
		Float64("scale", res.Scale).
		Dur("elapsed", time.Since(start)).
		Msg("layout complete")

	return e.toPixels(res), nil
}

func (e *GraphvizEngine) parse(raw []byte) (Result, error) {
	if e.opts.Parser == nil {
		return PlainParser{}.Parse(raw)
	}
	if e.opts.FallbackToDefault {
		return ParseWithFallback(e.opts.Parser, PlainParser{}).Parse(raw)
	}
	return e.opts.Parser.Parse(raw)
}

// toPixels converts tool-native coordinates into pixels using the reported
// scale and the configured per-unit factor.
func (e *GraphvizEngine) toPixels(res Result) Result {
	factor := res.Scale * e.opts.PxPerUnit
	out := Result{Scale: res.Scale, Coords: make(map[int][2]float64, len(res.Coords))}
	for id, xy := range res.Coords {
		out.Coords[id] = [2]float64{xy[0] * factor, xy[1] * factor}
	}
	return out
}
