package units

import "math"

type System string

const (
	Metric   System = "metric"
	Imperial System = "imperial"
)

type Unit string

const (
	MM  Unit = "mm"
	IN  Unit = "in"
	MPa Unit = "MPa"
	PSI Unit = "psi"
)

const (
	MMPerInch = 25.4
	PSIPerMPa = 145.038
)

// Normalize maps an unknown or empty system to Metric.
func Normalize(s System) System {
	if s == Imperial {
		return Imperial
	}
	return Metric
}

func (s System) Length() Unit {
	if s == Imperial {
		return IN
	}
	return MM
}

func (s System) Pressure() Unit {
	if s == Imperial {
		return PSI
	}
	return MPa
}

// LengthToMetric converts v given in unit to millimetres. An empty unit is read as mm.
func LengthToMetric(v float64, unit Unit) float64 {
	if unit == IN {
		return v * MMPerInch
	}
	return v
}

func LengthFromMetric(v float64, s System) float64 {
	if s == Imperial {
		return v / MMPerInch
	}
	return v
}

// PressureToMetric converts v given in unit to megapascals. An empty unit is read as MPa.
func PressureToMetric(v float64, unit Unit) float64 {
	if unit == PSI {
		return v / PSIPerMPa
	}
	return v
}

func PressureFromMetric(v float64, s System) float64 {
	if s == Imperial {
		return v * PSIPerMPa
	}
	return v
}

// Absent is the value used for a scalar the caller did not supply.
var Absent = math.NaN()

func IsAbsent(v float64) bool {
	return math.IsNaN(v)
}
