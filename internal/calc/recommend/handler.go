package recommend

import (
	"encoding/json"
	"net/http"

	"Integrity/internal/calc/assess"
)

type Input struct {
	Level   assess.Level   `json:"level"`
	Request assess.Request `json:"request"`
}

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := input.Request.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Recommend(input.Level, input.Request)
	if err != nil {
		http.Error(w, "No result: pipe or defect/profile input incomplete", http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
