// Package narrative asks a generative-language endpoint for a short
// engineering summary of an assessment. It sits outside the calculation path:
// a failed call degrades to Fallback and never changes a result.
package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/units"
	"Integrity/internal/metrics"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash-preview-09-2025"

	Fallback = "Failed to generate AI engineering report. Please verify your connection and try again."

	systemInstruction = "You are an expert pipeline integrity engineer. Provide professional, clear, and actionable fitness-for-service advice based on standard industry practices."
)

var ErrNoText = errors.New("no text in response")

type Client struct {
	BaseURL    string
	Model      string
	APIKey     string
	HTTPClient *http.Client
	MaxRetries int
	BaseDelay  time.Duration
	Log        *zap.Logger
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Model:      DefaultModel,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		MaxRetries: 5,
		BaseDelay:  time.Second,
		Log:        zap.NewNop(),
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction content   `json:"systemInstruction"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Subject is the context around a result that the result itself does not
// carry. Lengths are metric; DefectLength is NaN for a profile.
type Subject struct {
	Grade         string
	DesignFactor  float64
	DefectLength  float64
	ProfilePoints int
}

// Prompt describes the assessment in the output units of its result.
func Prompt(a assess.Assessment, s Subject) string {
	res := a.Result
	lu, pu := res.System.Length(), res.System.Pressure()
	leak := a.Verdict == assess.Leak
	deep := a.Verdict == assess.DepthExceeded
	status := "UNACCEPTABLE"
	if a.Verdict.Acceptable() {
		status = "ACCEPTABLE"
	}
	grade := s.Grade
	if grade == "" {
		grade = "custom SMYS"
	}

	var defect string
	if res.Level == assess.Level2 {
		defect = fmt.Sprintf("Defect Profile: %d points evaluated. Max Depth = %.2f %s.", s.ProfilePoints, res.MaxDepth, lu)
	} else {
		defect = fmt.Sprintf("Defect: Length = %.2f %s, Max Depth = %.2f %s.",
			units.LengthFromMetric(s.DefectLength, res.System), lu, res.MaxDepth, lu)
	}

	var b strings.Builder
	b.WriteString("Analyze the following pipeline defect assessment:\n")
	fmt.Fprintf(&b, "- Assessment Method: %s\n", res.Level)
	fmt.Fprintf(&b, "- Pipeline Material Grade: %s, Design Factor = %g.\n", grade, s.DesignFactor)
	fmt.Fprintf(&b, "- %s\n", defect)
	fmt.Fprintf(&b, "- Results: Failure Pressure (Pf) = %.2f %s, Safe Operating Pressure (Psafe) = %.2f %s.\n",
		res.FailurePressure, pu, res.SafePressure, pu)
	fmt.Fprintf(&b, "- MAOP = %.2f %s.\n", res.MAOP, pu)
	fmt.Fprintf(&b, "- ERF (Estimated Repair Factor) = %.4f.\n", res.ERF)
	fmt.Fprintf(&b, "- Acceptability Status: %s (Leak detected: %t, Depth > 80%% WT: %t).\n\n", status, leak, deep)
	b.WriteString("Write a concise, professional engineering summary.\n")
	b.WriteString("Include:\n")
	b.WriteString("1. A clear statement on whether the defect is acceptable for the current MAOP.\n")
	b.WriteString("2. An explanation of the failure pressure margin and ERF.\n")
	b.WriteString("3. Recommended next steps (e.g., monitoring, specific repair methods like recoating or sleeving, or pressure derating) based on industry best practices.\n")
	b.WriteString("Format with clear spacing and bold text for emphasis.\n")
	return b.String()
}

// Generate sends the prompt, retrying with exponential backoff. After the last
// failed attempt it returns Fallback together with the last error, so callers
// can always show the text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
	})
	if err != nil {
		return Fallback, fmt.Errorf("encode request: %w", err)
	}
	attempts := c.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * c.BaseDelay
			c.logger().Debug("retrying narrative request", zap.Int("attempt", attempt), zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return Fallback, ctx.Err()
			case <-time.After(backoff):
			}
		}

		text, err := c.do(ctx, body)
		if err == nil {
			metrics.IncreaseNarrativeAttempts("success")
			return text, nil
		}
		metrics.IncreaseNarrativeAttempts("failure")
		lastErr = err
		if ctx.Err() != nil {
			return Fallback, ctx.Err()
		}
	}
	c.logger().Warn("narrative generation failed", zap.Int("attempts", attempts), zap.Error(lastErr))
	return Fallback, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func (c *Client) do(ctx context.Context, body []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.BaseURL, "/"), c.Model, url.QueryEscape(c.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("API error: %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return "", ErrNoText
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func (c *Client) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}
