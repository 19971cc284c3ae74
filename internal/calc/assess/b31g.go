package assess

import (
	"math"

	"Integrity/internal/calc/units"
)

// FlowStressMargin is the additive flow-stress margin of Modified B31G and
// RSTRENG: 68.95 MPa, or 10 000 psi.
func FlowStressMargin(sys units.System) float64 {
	if sys == units.Imperial {
		return 10000
	}
	return 68.95
}

// ShapeParameter is z = L² / (D·t).
func ShapeParameter(l, d, t float64) float64 {
	return l * l / (d * t)
}

// FoliasModified is the two-piece bulging factor used by levels 1 and 2. The
// pieces do not meet at z = 50.
func FoliasModified(z float64) float64 {
	if z <= 50 {
		return math.Sqrt(1 + 0.6275*z - 0.003375*z*z)
	}
	return 0.032*z + 3.3
}

// HoopFactor is 2·t·S_flow / D, the failure pressure of undamaged pipe.
func HoopFactor(t, flow, d float64) float64 {
	return 2 * t * flow / d
}

// RepairFactor is MAOP / Psafe, or +Inf when there is no safe pressure left.
func RepairFactor(maop, safe float64) float64 {
	if safe > 0 {
		return maop / safe
	}
	return math.Inf(1)
}
