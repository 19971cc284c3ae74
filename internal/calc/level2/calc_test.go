package level2

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/fixture"
	"Integrity/internal/calc/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateWorkedProfile(t *testing.T) {
	res := Evaluate(fixture.Pipe(), fixture.Profile(), units.Metric)
	require.NotNil(t, res)

	assert.InDelta(t, 427.95, res.FlowStress, 1e-9)
	assert.Equal(t, 10, res.Intervals)
	assert.Equal(t, 0, res.Saturated)
	require.NotNil(t, res.Critical)
	assert.Equal(t, 50.0, res.Critical.Start)
	assert.Equal(t, 200.0, res.Critical.End)
	assert.Equal(t, 150.0, res.Critical.Length)
	assert.InDelta(t, 577.5, res.Critical.Area, 1e-9)
	assert.InDelta(t, 15.1685, res.FailurePressure, 1e-4)
	assert.InDelta(t, 10.9213, res.SafePressure, 1e-4)
	assert.InDelta(t, 0.7325, res.ERF, 1e-4)
	assert.Equal(t, 6.2, res.MaxDepth)
	assert.Equal(t, assess.Acceptable, assess.Classify(*res, 12.7))

	assert.Equal(t, "2. Evaluated 5 river-bottom points to find the critical effective area.", res.Steps[1])
	assert.Equal(t, "3. Minimum Failure Pressure found between X = 50.00 and X = 200.00", res.Steps[2])
	assert.Equal(t, "   - Critical Length (L_crit) = 150.00 mm", res.Steps[3])
	assert.Equal(t, "   - Critical Area (A_crit) = 577.50 mm²", res.Steps[4])
}

func TestTwoPointProfileEqualsSingleInterval(t *testing.T) {
	p := fixture.Pipe()
	profile := assess.Profile{{Distance: 10, Depth: 2}, {Distance: 210, Depth: 4}}

	res := Evaluate(p, profile, units.Metric)
	require.NotNil(t, res)

	flow := p.SMYS + 68.95
	area := 200 * (2.0 + 4.0) / 2
	ratio := area / (200 * p.WallThickness)
	M := assess.FoliasModified(assess.ShapeParameter(200, p.OuterDiameter, p.WallThickness))
	want := 2 * p.WallThickness * flow / p.OuterDiameter * ((1 - ratio) / (1 - ratio/M))

	assert.Equal(t, 1, res.Intervals)
	assert.InDelta(t, want, res.FailurePressure, 1e-9)
	assert.Equal(t, assess.Interval{Start: 10, End: 210, Length: 200, Area: area, AreaRatio: ratio}, *res.Critical)
}

func TestLeakForcesZeroPressure(t *testing.T) {
	profile := append(fixture.Profile(), assess.Point{Distance: 250, Depth: 12.7})

	res := Evaluate(fixture.Pipe(), profile, units.Metric)
	require.NotNil(t, res)

	assert.Equal(t, 0.0, res.FailurePressure)
	assert.Equal(t, 0.0, res.SafePressure)
	assert.True(t, math.IsInf(res.ERF, 1))
	assert.True(t, res.Leak())
	assert.Equal(t, assess.Leak, assess.Classify(*res, res.WallThickness))
	assert.Equal(t, "!!! LEAK DETECTED: Max depth (12.70) >= Wall Thickness (12.70) !!!", res.Steps[2])
}

func TestLeakDominatesAnyProfile(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := fixture.Pipe()
	for i := 0; i < 200; i++ {
		profile := randomProfile(rng, 2+rng.Intn(10), p.WallThickness)
		profile[rng.Intn(len(profile))].Depth = p.WallThickness * (1 + rng.Float64()*0.2)

		res := Evaluate(p, profile, units.Metric)
		require.NotNil(t, res)
		require.Equal(t, 0.0, res.FailurePressure)
		require.True(t, math.IsInf(res.ERF, 1))
	}
}

func TestSaturatedIntervalsAreReported(t *testing.T) {
	profile := assess.Profile{
		{Distance: 0, Depth: 0},
		{Distance: 10, Depth: 13},
		{Distance: 20, Depth: 13},
		{Distance: 30, Depth: 0},
	}
	res := Evaluate(fixture.Pipe(), profile, units.Metric)
	require.NotNil(t, res)

	assert.Equal(t, 1, res.Saturated)
	assert.Equal(t, 0.0, res.FailurePressure)
	found := false
	for _, s := range res.Steps {
		if strings.Contains(s, "1 of 6 intervals have A / Lt ≥ 1") && strings.Contains(s, "X = 10.00 and X = 20.00") {
			found = true
		}
	}
	assert.True(t, found, "saturated interval diagnostic missing from %v", res.Steps)
}

func TestCallerOrderIsNotTrusted(t *testing.T) {
	shuffled := assess.Profile{
		{Distance: 150, Depth: 4.1},
		{Distance: 0, Depth: 0},
		{Distance: 200, Depth: 0},
		{Distance: 100, Depth: 6.2},
		{Distance: 50, Depth: 2.5},
	}
	want := Evaluate(fixture.Pipe(), fixture.Profile(), units.Metric)
	got := Evaluate(fixture.Pipe(), shuffled, units.Metric)
	assert.Equal(t, want, got)
	assert.Equal(t, 150.0, shuffled[0].Distance)
}

func TestDegenerateIntervalsAreSkipped(t *testing.T) {
	p := fixture.Pipe()
	withDup := assess.Profile{{Distance: 0, Depth: 1}, {Distance: 0, Depth: 3}, {Distance: 100, Depth: 3}}
	res := Evaluate(p, withDup, units.Metric)
	require.NotNil(t, res)
	assert.Equal(t, 2, res.Intervals)

	assert.Nil(t, Evaluate(p, assess.Profile{{Distance: 5, Depth: 1}, {Distance: 5, Depth: 2}}, units.Metric))

	leaking := Evaluate(p, assess.Profile{{Distance: 5, Depth: 1}, {Distance: 5, Depth: 13}}, units.Metric)
	require.NotNil(t, leaking)
	assert.Nil(t, leaking.Critical)
	assert.Equal(t, 0.0, leaking.FailurePressure)
}

func TestEvaluateNoResult(t *testing.T) {
	assert.Nil(t, Evaluate(fixture.Pipe(), assess.Profile{{Distance: 0, Depth: 1}}, units.Metric))
	assert.Nil(t, Evaluate(fixture.Pipe(), nil, units.Metric))

	p := fixture.Pipe()
	p.SMYS = units.Absent
	assert.Nil(t, Evaluate(p, fixture.Profile(), units.Metric))
}

func TestImperialMatchesMetricGeometry(t *testing.T) {
	metric := Evaluate(fixture.Pipe(), fixture.Profile(), units.Metric)
	imperial := Evaluate(fixture.Pipe(), fixture.Profile(), units.Imperial)
	require.NotNil(t, imperial)

	assert.InDelta(t, 50/25.4, imperial.Critical.Start, 1e-9)
	assert.InDelta(t, 577.5/(25.4*25.4), imperial.Critical.Area, 1e-9)
	assert.InEpsilon(t, units.PressureFromMetric(metric.FailurePressure, units.Imperial), imperial.FailurePressure, 0.001)
	assert.Contains(t, imperial.Steps[3], " in")
}

// reference recomputes the minimum with an explicit sum over k for every pair.
func reference(pts assess.Profile, D, t, flow float64) float64 {
	pts = pts.Sorted()
	best := math.Inf(1)
	for i := 0; i < len(pts)-1; i++ {
		for j := i + 1; j < len(pts); j++ {
			L := pts[j].Distance - pts[i].Distance
			if L <= 0 {
				continue
			}
			A := 0.0
			for k := i; k < j; k++ {
				A += (pts[k+1].Distance - pts[k].Distance) * (pts[k+1].Depth + pts[k].Depth) / 2
			}
			pf, _ := IntervalPressure(L, A, D, t, flow)
			best = math.Min(best, pf)
		}
	}
	return best
}

func TestSearchMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	p := fixture.Pipe()
	for i := 0; i < 200; i++ {
		profile := randomProfile(rng, 2+rng.Intn(25), p.WallThickness)
		res := Evaluate(p, profile, units.Metric)
		if res == nil {
			continue
		}
		want := reference(profile, p.OuterDiameter, p.WallThickness, p.SMYS+68.95)
		require.InDelta(t, want, res.FailurePressure, 1e-9)
	}
}

func TestFailurePressureDecreasesWithDepth(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p := fixture.Pipe()
	for i := 0; i < 200; i++ {
		base := randomProfile(rng, 3+rng.Intn(10), p.WallThickness)
		for k := range base {
			base[k].Depth += 0.1
		}
		deeper := make(assess.Profile, len(base))
		for k, pt := range base {
			deeper[k] = assess.Point{Distance: pt.Distance, Depth: pt.Depth * 1.05}
		}
		r1 := Evaluate(p, base, units.Metric)
		r2 := Evaluate(p, deeper, units.Metric)
		if r1 == nil || r2 == nil || r2.Leak() {
			continue
		}
		require.Less(t, r2.FailurePressure, r1.FailurePressure)
	}
}

func randomProfile(rng *rand.Rand, n int, wt float64) assess.Profile {
	out := make(assess.Profile, n)
	for i := range out {
		out[i] = assess.Point{
			Distance: math.Round(rng.Float64() * 500),
			Depth:    rng.Float64() * 0.85 * wt,
		}
	}
	return out
}
