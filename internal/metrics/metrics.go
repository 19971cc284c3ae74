package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	subsystem = "b31g"

	assessmentsTotal  = "assessments_total"
	noResultTotal     = "no_result_total"
	narrativeAttempts = "narrative_attempts_total"

	levelLabel   = "level"
	verdictLabel = "verdict"
	outcomeLabel = "outcome"
)

var assessmentsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      assessmentsTotal,
		Help:      "number of completed defect assessments by level and verdict",
	},
	[]string{levelLabel, verdictLabel},
)

var noResultTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      noResultTotal,
		Help:      "number of assessment requests that lacked required input",
	},
	[]string{levelLabel},
)

var narrativeAttemptsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      narrativeAttempts,
		Help:      "narrative report generation attempts by outcome",
	},
	[]string{outcomeLabel},
)

func IncreaseAssessments(level int, verdict string) {
	assessmentsTotalMetric.With(prometheus.Labels{
		levelLabel:   strconv.Itoa(level),
		verdictLabel: verdict,
	}).Inc()
}

func IncreaseNoResult(level int) {
	noResultTotalMetric.With(prometheus.Labels{levelLabel: strconv.Itoa(level)}).Inc()
}

func IncreaseNarrativeAttempts(outcome string) {
	narrativeAttemptsMetric.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func init() {
	prometheus.MustRegister(assessmentsTotalMetric)
	prometheus.MustRegister(noResultTotalMetric)
	prometheus.MustRegister(narrativeAttemptsMetric)
}
