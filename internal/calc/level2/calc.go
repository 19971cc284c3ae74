// Package level2 implements the RSTRENG effective-area method over a measured
// river-bottom profile.
//
// Every contiguous sub-interval [x_i, x_j] of the sorted profile is a
// candidate defect. Its metal-loss area is the trapezoidal integral of depth
// over the interval, its length is x_j - x_i, and the Modified B31G formula is
// applied with the area ratio A/(L·t) in place of 0.85·d/t. The governing
// (critical) interval is the one with the lowest failure pressure, so the
// search covers all C(n,2) pairs.
package level2

import (
	"math"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/trace"
	"Integrity/internal/calc/units"
)

// Evaluate returns nil when the pipe is incomplete, the profile has fewer than
// two complete points, or every interval has zero length and no point leaks.
func Evaluate(spec assess.PipeSpec, profile assess.Profile, sys units.System) *assess.Result {
	if !spec.Valid() || !profile.Valid() {
		return nil
	}
	p := spec.In(sys)
	pts := make(assess.Profile, len(profile))
	for i, pt := range profile {
		pts[i] = assess.Point{
			Distance: units.LengthFromMetric(pt.Distance, p.System),
			Depth:    units.LengthFromMetric(pt.Depth, p.System),
		}
	}
	pts = pts.Sorted()

	s := search(pts, p.D, p.T, p.SMYS+assess.FlowStressMargin(p.System))
	maxDepth := deepest(pts)
	leak := maxDepth >= p.T
	if s.intervals == 0 && !leak {
		return nil
	}

	up, ul := p.System.Pressure(), p.System.Length()
	margin := assess.FlowStressMargin(p.System)

	var tr trace.Trace
	tr.Step("Flow Stress (S_flow) = SMYS + %g = %.2f + %g = %.2f %s", margin, p.SMYS, margin, s.flow, up)
	tr.Step("Evaluated %d river-bottom points to find the critical effective area.", len(pts))

	pf := s.pf
	if s.intervals == 0 {
		pf = 0
	}
	if leak {
		pf = 0
		tr.Alert("LEAK DETECTED: Max depth (%.2f) >= Wall Thickness (%.2f)", maxDepth, p.T)
	}

	var crit *assess.Interval
	if s.intervals > 0 {
		crit = &assess.Interval{
			Start:     s.start,
			End:       s.end,
			Length:    s.length,
			Area:      s.area,
			AreaRatio: s.area / (s.length * p.T),
		}
		tr.Step("Minimum Failure Pressure found between X = %.2f and X = %.2f", crit.Start, crit.End)
		tr.Detail("Critical Length (L_crit) = %.2f %s", crit.Length, ul)
		tr.Detail("Critical Area (A_crit) = %.2f %s²", crit.Area, ul)
		tr.Detail("Area Ratio (A / Lt) = %.4f", crit.AreaRatio)
		if s.saturated > 0 {
			tr.Detail("%d of %d intervals have A / Lt ≥ 1 and were taken as through-wall (Pf = 0), first between X = %.2f and X = %.2f",
				s.saturated, s.intervals, s.firstSaturated[0], s.firstSaturated[1])
		}
	} else {
		tr.Step("No interval of non-zero length in the profile")
	}
	tr.Step("Critical Failure Pressure (Pf) = %.2f %s", pf, up)

	safe := pf * p.F
	tr.Step("Safe Pressure (Psafe) = Pf × F = %.2f × %g = %.2f %s", pf, p.F, safe, up)

	erf := assess.RepairFactor(p.MAOP, safe)
	tr.Step("Estimated Repair Factor (ERF) = MAOP / Psafe = %.2f / %.2f = %.4f", p.MAOP, safe, erf)

	return &assess.Result{
		Level:           assess.Level2,
		System:          p.System,
		FlowStress:      s.flow,
		FailurePressure: pf,
		SafePressure:    safe,
		ERF:             erf,
		MaxDepth:        maxDepth,
		WallThickness:   p.T,
		MAOP:            p.MAOP,
		Critical:        crit,
		Intervals:       s.intervals,
		Saturated:       s.saturated,
		Steps:           tr.Steps(),
	}
}

type searchResult struct {
	flow           float64
	pf             float64
	start, end     float64
	length, area   float64
	intervals      int
	saturated      int
	firstSaturated [2]float64
}

// search enumerates every pair i < j of the sorted profile. Ties keep the
// first interval found.
func search(pts assess.Profile, D, t, flow float64) searchResult {
	s := searchResult{flow: flow, pf: math.Inf(1)}
	for i := 0; i < len(pts)-1; i++ {
		area := 0.0
		for j := i + 1; j < len(pts); j++ {
			// A_ij extends A_i(j-1) by the trapezoid between j-1 and j.
			area += Trapezoid(pts[j-1], pts[j])

			L := pts[j].Distance - pts[i].Distance
			if L <= 0 {
				continue
			}
			s.intervals++

			pf, saturated := IntervalPressure(L, area, D, t, flow)
			if saturated {
				if s.saturated == 0 {
					s.firstSaturated = [2]float64{pts[i].Distance, pts[j].Distance}
				}
				s.saturated++
			}
			if pf < s.pf {
				s.pf = pf
				s.start, s.end = pts[i].Distance, pts[j].Distance
				s.length, s.area = L, area
			}
		}
	}
	return s
}

// Trapezoid is the metal-loss area between two consecutive profile points.
func Trapezoid(a, b assess.Point) float64 {
	return (b.Distance - a.Distance) * (b.Depth + a.Depth) / 2
}

// IntervalPressure is the failure pressure of one candidate interval of
// length L and metal-loss area A. An area ratio of 1 or more means the
// interval is through-wall: it returns 0 and saturated = true.
func IntervalPressure(L, A, D, t, flow float64) (pf float64, saturated bool) {
	ratio := A / (L * t)
	if ratio >= 1 {
		return 0, true
	}
	M := assess.FoliasModified(assess.ShapeParameter(L, D, t))
	return assess.HoopFactor(t, flow, D) * ((1 - ratio) / (1 - ratio/M)), false
}

func deepest(pts assess.Profile) float64 {
	m := math.Inf(-1)
	for _, pt := range pts {
		m = math.Max(m, pt.Depth)
	}
	return m
}
