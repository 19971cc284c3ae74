// Package assess holds the value types shared by the B31G evaluators, the
// formulas common to more than one level and the acceptance classifier.
//
// Inputs are in metric (mm, MPa). Each evaluator converts them once into the
// output unit system and works there, so every number in the trace is in the
// units the caller asked for.
package assess

import (
	"encoding/json"
	"math"
	"sort"

	"Integrity/internal/calc/units"
)

type Level int

const (
	Level0 Level = iota
	Level1
	Level2
)

func (l Level) String() string {
	switch l {
	case Level0:
		return "Original B31G (Level 0)"
	case Level1:
		return "Modified B31G (Level 1)"
	default:
		return "RSTRENG Effective Area (Level 2)"
	}
}

// PipeSpec is the pipe under assessment, in mm and MPa.
type PipeSpec struct {
	OuterDiameter float64
	WallThickness float64
	SMYS          float64
	MAOP          float64
	DesignFactor  float64
}

// Valid reports whether every scalar is present and physically meaningful.
// NaN counts as absent.
func (p PipeSpec) Valid() bool {
	return p.OuterDiameter > 0 && p.WallThickness > 0 && p.SMYS > 0 &&
		p.MAOP >= 0 && p.DesignFactor > 0 && p.DesignFactor <= 1
}

// Pipe is a PipeSpec expressed in one output unit system.
type Pipe struct {
	D, T, SMYS, MAOP, F float64
	System              units.System
}

func (p PipeSpec) In(sys units.System) Pipe {
	sys = units.Normalize(sys)
	return Pipe{
		D:      units.LengthFromMetric(p.OuterDiameter, sys),
		T:      units.LengthFromMetric(p.WallThickness, sys),
		SMYS:   units.PressureFromMetric(p.SMYS, sys),
		MAOP:   units.PressureFromMetric(p.MAOP, sys),
		F:      p.DesignFactor,
		System: sys,
	}
}

// Defect is a single length/depth metal-loss area, in mm. Depth may be zero;
// an absent depth is NaN.
type Defect struct {
	Length float64
	Depth  float64
}

func (d Defect) Valid() bool {
	return d.Length > 0 && !math.IsNaN(d.Depth)
}

type Point struct {
	Distance float64 `json:"x"`
	Depth    float64 `json:"d"`
}

// Profile is a river-bottom depth profile, in mm.
type Profile []Point

// Sorted returns a copy ordered by distance. Equal distances keep their input order.
func (p Profile) Sorted() Profile {
	out := make(Profile, len(p))
	copy(out, p)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

func (p Profile) Valid() bool {
	if len(p) < 2 {
		return false
	}
	for _, pt := range p {
		if math.IsNaN(pt.Distance) || math.IsNaN(pt.Depth) {
			return false
		}
	}
	return true
}

// Interval is the governing sub-length found by the Level 2 search.
type Interval struct {
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Length    float64 `json:"length"`
	Area      float64 `json:"area"`
	AreaRatio float64 `json:"area_ratio"`
}

// Result is the output of one evaluation. It is built once by an evaluator
// and handed to the caller; nothing in this module changes it afterwards.
type Result struct {
	Level           Level
	System          units.System
	FlowStress      float64
	Z               float64
	Folias          float64
	FailurePressure float64
	SafePressure    float64
	ERF             float64
	MaxDepth        float64
	WallThickness   float64
	MAOP            float64
	Critical        *Interval
	Intervals       int
	Saturated       int
	Steps           []string
}

// Leak reports whether the deepest point reaches the wall thickness.
func (r Result) Leak() bool {
	return r.MaxDepth >= r.WallThickness
}

type resultJSON struct {
	Level           Level        `json:"level"`
	Method          string       `json:"method"`
	System          units.System `json:"system"`
	LengthUnit      units.Unit   `json:"length_unit"`
	PressureUnit    units.Unit   `json:"pressure_unit"`
	FlowStress      float64      `json:"flow_stress"`
	Z               *float64     `json:"z,omitempty"`
	Folias          *float64     `json:"folias,omitempty"`
	FailurePressure float64      `json:"failure_pressure"`
	SafePressure    float64      `json:"safe_pressure"`
	ERF             *float64     `json:"erf"`
	MaxDepth        float64      `json:"max_depth"`
	WallThickness   float64      `json:"wall_thickness"`
	MAOP            float64      `json:"maop"`
	Critical        *Interval    `json:"critical,omitempty"`
	Intervals       int          `json:"intervals,omitempty"`
	Saturated       int          `json:"saturated,omitempty"`
	Steps           []string     `json:"steps"`
}

// MarshalJSON encodes infinite values (ERF, the rectangular-branch Folias
// factor) as null, which encoding/json cannot represent otherwise.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Level:           r.Level,
		Method:          r.Level.String(),
		System:          r.System,
		LengthUnit:      r.System.Length(),
		PressureUnit:    r.System.Pressure(),
		FlowStress:      r.FlowStress,
		FailurePressure: r.FailurePressure,
		SafePressure:    r.SafePressure,
		ERF:             finite(r.ERF),
		MaxDepth:        r.MaxDepth,
		WallThickness:   r.WallThickness,
		MAOP:            r.MAOP,
		Critical:        r.Critical,
		Intervals:       r.Intervals,
		Saturated:       r.Saturated,
		Steps:           r.Steps,
	}
	if r.Level != Level2 {
		out.Z = finite(r.Z)
		out.Folias = finite(r.Folias)
	}
	return json.Marshal(out)
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
