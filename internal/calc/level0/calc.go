// Package level0 implements Original B31G (1984): flow stress 1.1·SMYS and a
// parabolic metal-loss area that becomes rectangular for long defects.
package level0

import (
	"math"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/trace"
	"Integrity/internal/calc/units"
)

// LongDefectZ is the shape parameter above which the defect is treated as
// infinitely long (M → ∞, rectangular area).
const LongDefectZ = 20

// Evaluate returns nil when the pipe or the defect is incomplete.
func Evaluate(spec assess.PipeSpec, defect assess.Defect, sys units.System) *assess.Result {
	if !spec.Valid() || !defect.Valid() {
		return nil
	}
	p := spec.In(sys)
	L := units.LengthFromMetric(defect.Length, p.System)
	d := units.LengthFromMetric(defect.Depth, p.System)
	up := p.System.Pressure()

	var tr trace.Trace
	flow := 1.1 * p.SMYS
	tr.Step("Flow Stress (S_flow) = 1.1 × SMYS = 1.1 × %.2f = %.2f %s", p.SMYS, flow, up)

	z := assess.ShapeParameter(L, p.D, p.T)
	tr.Step("Parameter (z) = L² / (D × t) = %.2f² / (%.2f × %.2f) = %.4f", L, p.D, p.T, z)

	var M, pf float64
	if z <= LongDefectZ {
		M = math.Sqrt(1 + 0.8*z)
		pf = FailurePressure(p.T, flow, p.D, d, M)
		tr.Step("Failure Pressure (Pf) [for z ≤ 20] = (2 × t × S_flow / D) × [(1 - 2/3(d/t)) / (1 - 2/3(d/t)/M)] = %.2f %s", pf, up)
	} else {
		M = math.Inf(1)
		pf = assess.HoopFactor(p.T, flow, p.D) * (1 - d/p.T)
		tr.Step("Failure Pressure (Pf) [for z > 20] = (2 × t × S_flow / D) × (1 - d/t) = %.2f %s", pf, up)
	}

	safe := pf * p.F
	tr.Step("Safe Pressure (Psafe) = Pf × F = %.2f × %g = %.2f %s", pf, p.F, safe, up)

	erf := assess.RepairFactor(p.MAOP, safe)
	tr.Step("Estimated Repair Factor (ERF) = MAOP / Psafe = %.2f / %.2f = %.4f", p.MAOP, safe, erf)

	return &assess.Result{
		Level:           assess.Level0,
		System:          p.System,
		FlowStress:      flow,
		Z:               z,
		Folias:          M,
		FailurePressure: pf,
		SafePressure:    safe,
		ERF:             erf,
		MaxDepth:        d,
		WallThickness:   p.T,
		MAOP:            p.MAOP,
		Steps:           tr.Steps(),
	}
}

// FailurePressure is the parabolic-area formula. As M grows without bound it
// tends to the rectangular form (2tS/D)(1 - d/t).
func FailurePressure(t, flow, D, d, M float64) float64 {
	a := 2.0 / 3.0 * (d / t)
	return assess.HoopFactor(t, flow, D) * ((1 - a) / (1 - a/M))
}
