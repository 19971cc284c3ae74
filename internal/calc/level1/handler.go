package level1

import (
	"encoding/json"
	"net/http"

	"Integrity/internal/calc/assess"
	"Integrity/internal/metrics"
	"go.uber.org/zap"
)

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var req assess.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		h.Log.Warn("level 1 request rejected", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := Evaluate(req.Pipe.Spec(), req.Defect.Defect(), req.System)
	if res == nil {
		metrics.IncreaseNoResult(int(assess.Level1))
		http.Error(w, "No result: pipe or defect input incomplete", http.StatusUnprocessableEntity)
		return
	}
	out := assess.NewAssessment(res)
	metrics.IncreaseAssessments(int(assess.Level1), string(out.Verdict))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
