package level1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCalcHandler(t *testing.T) {
	body, err := json.Marshal(fixture.Request(assess.Level1))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h := &Handler{Log: zap.NewNop()}
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/tools/b31g/level1", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Result struct {
			FailurePressure float64  `json:"failure_pressure"`
			ERF             *float64 `json:"erf"`
			Steps           []string `json:"steps"`
		} `json:"result"`
		Verdict  string `json:"verdict"`
		Severity string `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.InDelta(t, 14.19, got.Result.FailurePressure, 0.01)
	require.NotNil(t, got.Result.ERF)
	assert.InDelta(t, 0.78, *got.Result.ERF, 0.05)
	assert.Len(t, got.Result.Steps, 5)
	assert.Equal(t, "acceptable", got.Verdict)
	assert.Equal(t, "safe", got.Severity)
}

func TestCalcHandlerIncompleteInput(t *testing.T) {
	req := fixture.Request(assess.Level1)
	req.Defect.Depth.Value = nil
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	(&Handler{Log: zap.NewNop()}).Calc(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
