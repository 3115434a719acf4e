package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// PlainParser reads the tool's plain-text output format: one record per
// line, first token naming the record type.
//
//	graph <scale> <width> <height>
//	node <id> <x> <y> ...
//	edge <tail> <head> ...
//	stop
//
// Edge records are informational only; the authoritative relation set is
// the one the builder produced, so they are skipped.
type PlainParser struct{}

func (PlainParser) Parse(output []byte) (Result, error) {
	res := Result{Scale: 1, Coords: make(map[int][2]float64)}

	sawGraph := false
	s := bufio.NewScanner(bytes.NewReader(output))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "graph":
			if len(fields) < 4 {
				return Result{}, fmt.Errorf("%w: short graph record %q", ErrLayoutParse, line)
			}
			scale, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || scale <= 0 {
				return Result{}, fmt.Errorf("%w: bad scale in %q", ErrLayoutParse, line)
			}
			res.Scale = scale
			sawGraph = true

		case "node":
			if len(fields) < 4 {
				return Result{}, fmt.Errorf("%w: short node record %q", ErrLayoutParse, line)
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil {
				return Result{}, fmt.Errorf("%w: bad node id in %q", ErrLayoutParse, line)
			}
			x, errX := strconv.ParseFloat(fields[2], 64)
			y, errY := strconv.ParseFloat(fields[3], 64)
			if errX != nil || errY != nil {
				return Result{}, fmt.Errorf("%w: bad coordinates in %q", ErrLayoutParse, line)
			}
			res.Coords[id] = [2]float64{x, y}

		case "edge", "stop":
			// edge lines carry no authority here; stop ends the document.

		default:
			return Result{}, fmt.Errorf("%w: unknown record %q", ErrLayoutParse, fields[0])
		}
	}
	if err := s.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrLayoutParse, err)
	}
	if !sawGraph {
		return Result{}, fmt.Errorf("%w: no graph record", ErrLayoutParse)
	}

	return res, nil
}
