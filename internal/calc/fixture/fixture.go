// Package fixture holds the worked example used by the tests and by
// `b31g example`: a 610 mm × 12.7 mm X52 line at 8 MPa MAOP.
package fixture

import (
	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/units"
)

func Pipe() assess.PipeSpec {
	return assess.PipeSpec{
		OuterDiameter: 610,
		WallThickness: 12.7,
		SMYS:          359,
		MAOP:          8.0,
		DesignFactor:  0.72,
	}
}

func Defect() assess.Defect {
	return assess.Defect{Length: 200, Depth: 5.0}
}

func Profile() assess.Profile {
	return assess.Profile{
		{Distance: 0, Depth: 0},
		{Distance: 50, Depth: 2.5},
		{Distance: 100, Depth: 6.2},
		{Distance: 150, Depth: 4.1},
		{Distance: 200, Depth: 0},
	}
}

// Request returns the example as a caller would send it, for the given level.
func Request(level assess.Level) assess.Request {
	f := 0.72
	req := assess.Request{
		System: units.Metric,
		Pipe: assess.PipeInput{
			OuterDiameter: assess.Q(610, units.MM),
			WallThickness: assess.Q(12.7, units.MM),
			Grade:         "X52",
			MAOP:          assess.Q(8.0, units.MPa),
			DesignFactor:  &f,
		},
	}
	if level == assess.Level2 {
		in := &assess.ProfileInput{DistanceUnit: units.MM, DepthUnit: units.MM}
		for _, pt := range Profile() {
			x, d := pt.Distance, pt.Depth
			in.Points = append(in.Points, assess.PointInput{Distance: &x, Depth: &d})
		}
		req.Profile = in
		return req
	}
	req.Defect = assess.DefectInput{Length: assess.Q(200, units.MM), Depth: assess.Q(5.0, units.MM)}
	return req
}
