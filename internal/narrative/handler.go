package narrative

import (
	"encoding/json"
	"net/http"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/engine"
	"go.uber.org/zap"
)

type Input struct {
	Level   assess.Level   `json:"level"`
	Request assess.Request `json:"request"`
}

type Output struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

type Handler struct {
	Client *Client
	Log    *zap.Logger
}

// SubjectOf collects the prompt context from the request that produced a result.
func SubjectOf(req assess.Request) Subject {
	s := Subject{Grade: req.Pipe.Grade, DefectLength: req.Defect.Length.Length()}
	if req.Pipe.DesignFactor != nil {
		s.DesignFactor = *req.Pipe.DesignFactor
	}
	if req.Profile != nil {
		s.ProfilePoints = len(req.Profile.Points)
	}
	return s
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.Client == nil || h.Client.APIKey == "" {
		http.Error(w, "Narrative generation is not configured", http.StatusServiceUnavailable)
		return
	}
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := in.Request.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := engine.Evaluate(in.Level, in.Request)
	if res == nil {
		http.Error(w, "No result: pipe or defect/profile input incomplete", http.StatusUnprocessableEntity)
		return
	}

	text, err := h.Client.Generate(r.Context(), Prompt(assess.NewAssessment(res), SubjectOf(in.Request)))
	if err != nil {
		h.Log.Warn("narrative fallback served", zap.Error(err))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Output{Text: text, Fallback: err != nil})
}
