package assess

type Verdict string

const (
	Acceptable           Verdict = "acceptable"
	DepthExceeded        Verdict = "unacceptable: depth exceeds 80% of wall thickness"
	PressureInsufficient Verdict = "unacceptable: pressure margin insufficient"
	Leak                 Verdict = "unacceptable: leak"
)

// Severity is the presentation tier of a verdict.
type Severity string

const (
	Safe    Severity = "safe"
	Warning Severity = "warning"
	Danger  Severity = "danger"
)

// MaxDepthRatio is the absolute B31G depth limit as a fraction of wall thickness.
const MaxDepthRatio = 0.8

// Classify derives the verdict from the result's ERF and maximum depth.
// Leak takes precedence over depth, depth over ERF. An infinite ERF is never
// acceptable. wallThickness must be in the result's unit system.
func Classify(res Result, wallThickness float64) Verdict {
	switch {
	case res.MaxDepth >= wallThickness:
		return Leak
	case res.MaxDepth > MaxDepthRatio*wallThickness:
		return DepthExceeded
	case res.ERF <= 1:
		return Acceptable
	default:
		return PressureInsufficient
	}
}

func (v Verdict) Acceptable() bool {
	return v == Acceptable
}

func (v Verdict) Severity() Severity {
	switch v {
	case Acceptable:
		return Safe
	case DepthExceeded:
		return Warning
	default:
		return Danger
	}
}

// Headline and Explanation are the banner texts shown with a verdict.
func (v Verdict) Headline() string {
	switch v {
	case Acceptable:
		return "Defect is Acceptable"
	case DepthExceeded:
		return "Unacceptable: Depth > 80% WT"
	case Leak:
		return "Unacceptable: Leak Detected"
	default:
		return "Defect is Unacceptable"
	}
}

func (v Verdict) Explanation() string {
	switch v {
	case Acceptable:
		return "Safe Operating Pressure exceeds MAOP (ERF ≤ 1.0)."
	case DepthExceeded:
		return "ASME B31G requires repair or replacement for defects deeper than 80% of wall thickness regardless of length."
	case Leak:
		return "Maximum defect depth exceeds or equals wall thickness."
	default:
		return "Safe Operating Pressure is below MAOP (ERF > 1.0)."
	}
}

// Assessment pairs a result with its verdict for transport.
type Assessment struct {
	Result   *Result  `json:"result"`
	Verdict  Verdict  `json:"verdict"`
	Severity Severity `json:"severity"`
	Headline string   `json:"headline"`
	Details  string   `json:"details"`
}

func NewAssessment(res *Result) Assessment {
	v := Classify(*res, res.WallThickness)
	return Assessment{
		Result:   res,
		Verdict:  v,
		Severity: v.Severity(),
		Headline: v.Headline(),
		Details:  v.Explanation(),
	}
}
