package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/engine"
	"Integrity/internal/calc/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(url string) *Client {
	c := NewClient("secret")
	c.BaseURL = url
	c.BaseDelay = 0
	return c
}

func reply(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
}

func TestGenerateSendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/"+DefaultModel+":generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)
		assert.Equal(t, systemInstruction, req.SystemInstruction.Parts[0].Text)
		reply(w, "summary")
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "summary", text)
}

func TestGenerateRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&calls, 1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			reply(w, "")
		default:
			reply(w, "third time")
		}
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "third time", text)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGenerateFallsBack(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error: 500")
	assert.Equal(t, Fallback, text)
	assert.EqualValues(t, 5, atomic.LoadInt32(&calls))
}

func TestGenerateStopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.BaseDelay = time.Hour
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	text, err := c.Generate(ctx, "p")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Fallback, text)
}

func TestPrompt(t *testing.T) {
	req := fixture.Request(assess.Level1)
	a := assess.NewAssessment(engine.Evaluate(assess.Level1, req))
	p := Prompt(a, SubjectOf(req))

	assert.Contains(t, p, "Assessment Method: Modified B31G (Level 1)")
	assert.Contains(t, p, "Pipeline Material Grade: X52, Design Factor = 0.72.")
	assert.Contains(t, p, "Defect: Length = 200.00 mm, Max Depth = 5.00 mm.")
	assert.Contains(t, p, "Safe Operating Pressure (Psafe) = 10.21 MPa")
	assert.Contains(t, p, "MAOP = 8.00 MPa.")
	assert.Contains(t, p, "ERF (Estimated Repair Factor) = 0.7832.")
	assert.Contains(t, p, "Acceptability Status: ACCEPTABLE (Leak detected: false, Depth > 80% WT: false).")
}

func TestPromptProfile(t *testing.T) {
	req := fixture.Request(assess.Level2)
	a := assess.NewAssessment(engine.Evaluate(assess.Level2, req))
	p := Prompt(a, SubjectOf(req))

	assert.Contains(t, p, "Defect Profile: 5 points evaluated. Max Depth = 6.20 mm.")
	assert.Contains(t, p, "RSTRENG Effective Area (Level 2)")
}

func TestHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reply(w, "**Acceptable.**")
	}))
	defer srv.Close()

	body, err := json.Marshal(Input{Level: assess.Level1, Request: fixture.Request(assess.Level1)})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	h := &Handler{Client: testClient(srv.URL), Log: zap.NewNop()}
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/api/tools/b31g/narrative", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var out Output
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, Output{Text: "**Acceptable.**"}, out)
}

func TestHandlerNotConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	h := &Handler{Client: NewClient(""), Log: zap.NewNop()}
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
