package level0

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Integrity/internal/calc/assess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalcHandlerRejectsBadPayload(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}

	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"system":"metric","pipe":{"outer_diameter":{"value":24,"unit":"ft"}}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalcHandlerLongDefect(t *testing.T) {
	body := `{
		"system": "metric",
		"pipe": {
			"outer_diameter": {"value": 610, "unit": "mm"},
			"wall_thickness": {"value": 0.5, "unit": "in"},
			"smys": {"value": 52068.642, "unit": "psi"},
			"maop": {"value": 8},
			"design_factor": 0.72
		},
		"defect": {"length": {"value": 400}, "depth": {"value": 5}}
	}`
	rec := httptest.NewRecorder()
	(&Handler{Log: zap.NewNop()}).Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Result struct {
			Steps []string `json:"steps"`
		} `json:"result"`
		Verdict assess.Verdict `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Result.Steps, 5)
	assert.Contains(t, got.Result.Steps[2], "[for z > 20]")
	assert.Equal(t, assess.PressureInsufficient, got.Verdict)
}
