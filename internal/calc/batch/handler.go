package batch

import (
	"encoding/json"
	"net/http"

	"Integrity/internal/metrics"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		h.Log.Warn("batch rejected", zap.Error(err))
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	Record(res)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

// Record counts each item of a finished batch.
func Record(res Result) {
	for _, item := range res.Items {
		if item.Assessment == nil {
			metrics.IncreaseNoResult(int(res.Level))
			continue
		}
		metrics.IncreaseAssessments(int(res.Level), string(item.Assessment.Verdict))
	}
}
