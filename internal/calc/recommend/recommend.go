// Package recommend turns an assessment into a next step: keep monitoring,
// derate to the safe pressure, or repair. For single defects it also sizes
// the deepest defect of the same length that would still be acceptable.
package recommend

import (
	"fmt"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/engine"
	"Integrity/internal/calc/level0"
	"Integrity/internal/calc/level1"
	"Integrity/internal/calc/units"
)

type Action string

const (
	Monitor      Action = "monitor"
	Derate       Action = "derate or repair"
	Repair       Action = "repair"
	RepairUrgent Action = "repair immediately"
)

// bisection steps; 2^-50 of the wall is far below any reported precision
const iterations = 50

type Result struct {
	Assessment assess.Assessment `json:"assessment"`
	Action     Action            `json:"action"`
	// DeratedMAOP is the highest operating pressure the defect supports, set
	// only when derating alone makes it acceptable.
	DeratedMAOP *float64 `json:"derated_maop,omitempty"`
	// MaxAcceptableDepth is the deepest defect of the same length that is
	// acceptable at the current MAOP. Levels 0 and 1 only.
	MaxAcceptableDepth *float64 `json:"max_acceptable_depth,omitempty"`
	Notes              string   `json:"notes"`
}

func Recommend(level assess.Level, req assess.Request) (Result, error) {
	res := engine.Evaluate(level, req)
	if res == nil {
		return Result{}, fmt.Errorf("invalid input")
	}
	a := assess.NewAssessment(res)
	out := Result{Assessment: a}

	switch a.Verdict {
	case assess.Acceptable:
		out.Action = Monitor
		out.Notes = "Defect is acceptable at the current MAOP. Keep it in the inspection program."
	case assess.PressureInsufficient:
		out.Action = Derate
		p := res.SafePressure
		out.DeratedMAOP = &p
		out.Notes = fmt.Sprintf("Reduce operating pressure to %.2f %s or repair (recoat, sleeve).", p, res.System.Pressure())
	case assess.DepthExceeded:
		out.Action = Repair
		out.Notes = "Depth exceeds 80% of wall thickness. Derating is not a remedy; repair or cut out."
	default:
		out.Action = RepairUrgent
		out.Notes = "Through-wall metal loss. Isolate the section and repair."
	}

	if level != assess.Level2 {
		if d, ok := MaxAcceptableDepth(level, req.Pipe.Spec(), req.Defect.Defect().Length); ok {
			d = units.LengthFromMetric(d, res.System)
			out.MaxAcceptableDepth = &d
		}
	}
	return out, nil
}

// MaxAcceptableDepth searches the depth (metric) at which a defect of the
// given length stops being acceptable. It reports false when even a zero
// depth defect is unacceptable, as when MAOP exceeds the intact safe pressure.
func MaxAcceptableDepth(level assess.Level, spec assess.PipeSpec, length float64) (float64, bool) {
	ok := func(depth float64) bool {
		defect := assess.Defect{Length: length, Depth: depth}
		var res *assess.Result
		if level == assess.Level0 {
			res = level0.Evaluate(spec, defect, units.Metric)
		} else {
			res = level1.Evaluate(spec, defect, units.Metric)
		}
		return res != nil && assess.Classify(*res, res.WallThickness).Acceptable()
	}

	lo, hi := 0.0, assess.MaxDepthRatio*spec.WallThickness
	if !ok(lo) {
		return 0, false
	}
	if ok(hi) {
		return hi, true
	}
	for i := 0; i < iterations; i++ {
		mid := (lo + hi) / 2
		if ok(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, true
}
