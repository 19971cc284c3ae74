package importer

import (
	"encoding/json"
	"net/http"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/batch"
	"Integrity/internal/calc/level2"
	"Integrity/internal/metrics"
	"go.uber.org/zap"
)

const MaxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Log *zap.Logger
}

// Profile takes a multipart form with "file" (xlsx profile) and "request"
// (JSON assess.Request without a profile) and returns a Level 2 assessment.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	var req assess.Request
	if err := json.Unmarshal([]byte(r.FormValue("request")), &req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	profile, err := ReadProfile(file)
	if err != nil {
		h.Log.Warn("profile import failed", zap.Error(err))
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	req.Profile = &profile

	res := level2.Evaluate(req.Pipe.Spec(), req.ProfilePoints(), req.System)
	if res == nil {
		metrics.IncreaseNoResult(int(assess.Level2))
		http.Error(w, "No result: pipe or profile input incomplete", http.StatusUnprocessableEntity)
		return
	}
	out := assess.NewAssessment(res)
	metrics.IncreaseAssessments(int(assess.Level2), string(out.Verdict))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// Defects takes "file" (xlsx defect list) and "request" (JSON batch.Input
// without items) and answers with the batch results as an xlsx workbook.
func (h *Handler) Defects(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	var in batch.Input
	if err := json.Unmarshal([]byte(r.FormValue("request")), &in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	in.Items, err = ReadDefects(file)
	if err != nil {
		h.Log.Warn("defect import failed", zap.Error(err))
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	res, err := batch.Calculate(in)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}
	batch.Record(res)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"b31g-results.xlsx\"")
	if err := batch.WriteXLSX(w, res, in.System); err != nil {
		h.Log.Error("write results workbook", zap.Error(err))
	}
}
