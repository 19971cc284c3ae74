package assess

import (
	"fmt"

	"Integrity/internal/calc/grades"
	"Integrity/internal/calc/units"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Quantity is a caller-supplied value with its own unit. A nil Value is absent.
type Quantity struct {
	Value *float64   `json:"value" yaml:"value"`
	Unit  units.Unit `json:"unit" yaml:"unit" validate:"omitempty,oneof=mm in MPa psi"`
}

func Q(v float64, unit units.Unit) Quantity {
	return Quantity{Value: &v, Unit: unit}
}

func (q Quantity) Length() float64 {
	if q.Value == nil {
		return units.Absent
	}
	return units.LengthToMetric(*q.Value, q.Unit)
}

func (q Quantity) Pressure() float64 {
	if q.Value == nil {
		return units.Absent
	}
	return units.PressureToMetric(*q.Value, q.Unit)
}

type PipeInput struct {
	OuterDiameter Quantity `json:"outer_diameter" yaml:"outer_diameter"`
	WallThickness Quantity `json:"wall_thickness" yaml:"wall_thickness"`
	// Grade names an API 5L grade; it is used when SMYS has no value.
	Grade        string   `json:"grade,omitempty" yaml:"grade,omitempty"`
	SMYS         Quantity `json:"smys" yaml:"smys"`
	MAOP         Quantity `json:"maop" yaml:"maop"`
	DesignFactor *float64 `json:"design_factor" yaml:"design_factor" validate:"omitempty,gt=0,lte=1"`
}

// Spec converts the input to a metric PipeSpec. Absent values become NaN and
// are rejected later by the evaluator, not here.
func (p PipeInput) Spec() PipeSpec {
	smys := p.SMYS.Pressure()
	if p.SMYS.Value == nil && p.Grade != "" {
		if g, ok := grades.Lookup(p.Grade); ok {
			smys = g.Metric
		}
	}
	f := units.Absent
	if p.DesignFactor != nil {
		f = *p.DesignFactor
	}
	return PipeSpec{
		OuterDiameter: p.OuterDiameter.Length(),
		WallThickness: p.WallThickness.Length(),
		SMYS:          smys,
		MAOP:          p.MAOP.Pressure(),
		DesignFactor:  f,
	}
}

type DefectInput struct {
	Length Quantity `json:"length" yaml:"length"`
	Depth  Quantity `json:"depth" yaml:"depth"`
}

func (d DefectInput) Defect() Defect {
	return Defect{Length: d.Length.Length(), Depth: d.Depth.Length()}
}

type PointInput struct {
	Distance *float64 `json:"x" yaml:"x"`
	Depth    *float64 `json:"d" yaml:"d"`
}

// ProfileInput carries one unit for all distances and one for all depths.
type ProfileInput struct {
	DistanceUnit units.Unit   `json:"distance_unit" yaml:"distance_unit" validate:"omitempty,oneof=mm in"`
	DepthUnit    units.Unit   `json:"depth_unit" yaml:"depth_unit" validate:"omitempty,oneof=mm in"`
	Points       []PointInput `json:"points" yaml:"points"`
}

func (p ProfileInput) Profile() Profile {
	out := make(Profile, 0, len(p.Points))
	for _, pt := range p.Points {
		x, d := units.Absent, units.Absent
		if pt.Distance != nil {
			x = units.LengthToMetric(*pt.Distance, p.DistanceUnit)
		}
		if pt.Depth != nil {
			d = units.LengthToMetric(*pt.Depth, p.DepthUnit)
		}
		out = append(out, Point{Distance: x, Depth: d})
	}
	return out
}

// Request is the input of a single-defect or profile assessment. Level 0 and
// 1 read Defect, Level 2 reads Profile.
type Request struct {
	System  units.System  `json:"system" yaml:"system" validate:"omitempty,oneof=metric imperial"`
	Pipe    PipeInput     `json:"pipe" yaml:"pipe"`
	Defect  DefectInput   `json:"defect" yaml:"defect"`
	Profile *ProfileInput `json:"profile,omitempty" yaml:"profile,omitempty"`
}

// ProfilePoints is the metric profile, or nil when none was sent.
func (r Request) ProfilePoints() Profile {
	if r.Profile == nil {
		return nil
	}
	return r.Profile.Profile()
}

// Validate checks units and ranges. Missing values are not an error here.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
