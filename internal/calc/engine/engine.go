// Package engine dispatches a normalized request to the evaluator of the
// requested B31G level.
package engine

import (
	"fmt"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/level0"
	"Integrity/internal/calc/level1"
	"Integrity/internal/calc/level2"
)

// Evaluate runs the request at the given level. A nil result means the input
// was incomplete.
func Evaluate(level assess.Level, req assess.Request) *assess.Result {
	spec := req.Pipe.Spec()
	switch level {
	case assess.Level0:
		return level0.Evaluate(spec, req.Defect.Defect(), req.System)
	case assess.Level1:
		return level1.Evaluate(spec, req.Defect.Defect(), req.System)
	default:
		return level2.Evaluate(spec, req.ProfilePoints(), req.System)
	}
}

// ParseLevel accepts 0, 1, 2 and the method names used on the command line.
func ParseLevel(s string) (assess.Level, error) {
	switch s {
	case "0", "level0", "original":
		return assess.Level0, nil
	case "1", "level1", "modified":
		return assess.Level1, nil
	case "2", "level2", "rstreng":
		return assess.Level2, nil
	}
	return 0, fmt.Errorf("unknown assessment level %q", s)
}
