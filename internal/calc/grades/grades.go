package grades

import (
	"encoding/json"
	"net/http"
	"strings"

	"Integrity/internal/calc/units"
)

// Grade is an API 5L line-pipe grade with its SMYS in both unit systems.
// Imperial values are the catalogue figures, not a conversion of the metric ones.
type Grade struct {
	Name     string  `json:"name"`
	Metric   float64 `json:"smys_mpa"`
	Imperial float64 `json:"smys_psi"`
}

var API5L = []Grade{
	{Name: "Grade A", Metric: 207, Imperial: 30000},
	{Name: "Grade B", Metric: 241, Imperial: 35000},
	{Name: "X42", Metric: 290, Imperial: 42000},
	{Name: "X46", Metric: 317, Imperial: 46000},
	{Name: "X52", Metric: 359, Imperial: 52000},
	{Name: "X56", Metric: 386, Imperial: 56000},
	{Name: "X60", Metric: 414, Imperial: 60000},
	{Name: "X65", Metric: 448, Imperial: 65000},
	{Name: "X70", Metric: 483, Imperial: 70000},
	{Name: "X80", Metric: 552, Imperial: 80000},
}

// Lookup finds a grade by name, ignoring case and surrounding spaces.
func Lookup(name string) (Grade, bool) {
	name = strings.TrimSpace(name)
	for _, g := range API5L {
		if strings.EqualFold(g.Name, name) {
			return g, true
		}
	}
	return Grade{}, false
}

// SMYS returns the grade's yield strength in the requested pressure unit.
func (g Grade) SMYS(unit units.Unit) float64 {
	if unit == units.PSI {
		return g.Imperial
	}
	return g.Metric
}

type Handler struct{}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(API5L)
}
