package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/engine"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Input struct {
	Project   string         `json:"project"`
	Author    string         `json:"author"`
	Title     string         `json:"title"`
	Narrative string         `json:"narrative"`
	Level     assess.Level   `json:"level"`
	Request   assess.Request `json:"request"`
}

type Handler struct {
	Log *zap.Logger
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := input.Request.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := engine.Evaluate(input.Level, input.Request)
	if res == nil {
		http.Error(w, "No result: pipe or defect/profile input incomplete", http.StatusUnprocessableEntity)
		return
	}

	meta := Meta{
		ID:        uuid.New(),
		Project:   input.Project,
		Author:    input.Author,
		Title:     input.Title,
		Narrative: input.Narrative,
	}
	var buf bytes.Buffer
	if err := Write(&buf, meta, input.Request, assess.NewAssessment(res)); err != nil {
		h.Log.Error("report generation failed", zap.Stringer("report_id", meta.ID), zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"b31g-%s.pdf\"", meta.ID))
	w.Header().Set("X-Report-ID", meta.ID.String())
	w.Write(buf.Bytes())
}
