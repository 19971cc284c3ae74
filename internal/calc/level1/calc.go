// Package level1 implements Modified B31G: flow stress SMYS plus a fixed
// margin, a 0.85·d·L metal-loss area and the two-piece Folias factor.
package level1

import (
	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/trace"
	"Integrity/internal/calc/units"
)

// AreaFactor approximates an arbitrary defect shape as 0.85·d·L.
const AreaFactor = 0.85

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
	margin := assess.FlowStressMargin(p.System)
	flow := p.SMYS + margin
	tr.Step("Flow Stress (S_flow) = SMYS + %g = %.2f + %g = %.2f %s", margin, p.SMYS, margin, flow, up)

	z := assess.ShapeParameter(L, p.D, p.T)
	tr.Step("Parameter (z) = L² / (D × t) = %.2f² / (%.2f × %.2f) = %.4f", L, p.D, p.T, z)

	M := assess.FoliasModified(z)
	pf := FailurePressure(p.T, flow, p.D, d, M)
	tr.Step("Failure Pressure (Pf) = (2 × t × S_flow / D) × [(1 - 0.85(d/t)) / (1 - 0.85(d/t)/M)] = %.2f %s", pf, up)

	safe := pf * p.F
	tr.Step("Safe Pressure (Psafe) = Pf × F = %.2f × %g = %.2f %s", pf, p.F, safe, up)

	erf := assess.RepairFactor(p.MAOP, safe)
	tr.Step("Estimated Repair Factor (ERF) = MAOP / Psafe = %.2f / %.2f = %.4f", p.MAOP, safe, erf)

	return &assess.Result{
		Level:           assess.Level1,
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

func FailurePressure(t, flow, D, d, M float64) float64 {
	a := AreaFactor * (d / t)
	return assess.HoopFactor(t, flow, D) * ((1 - a) / (1 - a/M))
}
