package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlCase = `
level: modified
system: imperial
pipe:
  outer_diameter: {value: 610, unit: mm}
  wall_thickness: {value: 12.7, unit: mm}
  grade: X52
  maop: {value: 8, unit: MPa}
  design_factor: 0.72
defect:
  length: {value: 200, unit: mm}
  depth: {value: 5, unit: mm}
`

func TestDecodeCaseYAML(t *testing.T) {
	c, err := decodeCase(strings.NewReader(yamlCase))
	require.NoError(t, err)
	assert.Equal(t, units.Imperial, c.System)
	assert.Equal(t, "X52", c.Pipe.Grade)
	assert.Equal(t, 200.0, c.Defect.Defect().Length)

	level, err := c.level()
	require.NoError(t, err)
	assert.Equal(t, assess.Level1, level)
}

func TestDecodeCaseJSON(t *testing.T) {
	in := `{"level":"2","pipe":{"outer_diameter":{"value":610}},"profile":{"points":[{"x":0,"d":1},{"x":10,"d":2}]}}`
	c, err := decodeCase(strings.NewReader(in))
	require.NoError(t, err)
	require.NotNil(t, c.Profile)
	assert.Len(t, c.ProfilePoints(), 2)
	level, err := c.level()
	require.NoError(t, err)
	assert.Equal(t, assess.Level2, level)
}

func TestCaseLevelInferred(t *testing.T) {
	assert.Equal(t, assess.Level1, mustLevel(t, Case{}))
	assert.Equal(t, assess.Level2, mustLevel(t, Case{Request: assess.Request{Profile: &assess.ProfileInput{}}}))

	_, err := Case{Level: "3"}.level()
	assert.Error(t, err)
}

func mustLevel(t *testing.T, c Case) assess.Level {
	t.Helper()
	l, err := c.level()
	require.NoError(t, err)
	return l
}

func TestDecodeCaseRejectsBadUnit(t *testing.T) {
	_, err := decodeCase(strings.NewReader("pipe:\n  outer_diameter: {value: 2, unit: ft}\n"))
	assert.Error(t, err)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExampleThenAssess(t *testing.T) {
	for _, level := range []string{"0", "1", "2"} {
		t.Run(level, func(t *testing.T) {
			yml, err := run(t, "example", "--level", level)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "case.yaml")
			require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

			out, err := run(t, "assess", "-f", path, "-o", "json", "--level", "", "--pdf", "")
			require.NoError(t, err)
			var a struct {
				Verdict assess.Verdict `json:"verdict"`
				Result  struct {
					Level assess.Level `json:"level"`
				} `json:"result"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &a))
			assert.Equal(t, assess.Acceptable, a.Verdict)
			assert.Equal(t, level, strconv.Itoa(int(a.Result.Level)))
		})
	}
}

func TestAssessTextAndPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCase), 0o600))
	pdf := filepath.Join(dir, "report.pdf")

	out, err := run(t, "assess", "-f", path, "-o", "text", "--level", "", "--pdf", pdf)
	require.NoError(t, err)
	assert.Contains(t, out, "Modified B31G (Level 1)")
	assert.Contains(t, out, "psi")
	assert.Contains(t, out, "acceptable")

	b, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}

func TestAssessNoResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: 1\n"), 0o600))
	_, err := run(t, "assess", "-f", path, "-o", "json", "--level", "", "--pdf", "")
	assert.ErrorIs(t, err, errNoResult)
}

func TestGrades(t *testing.T) {
	out, err := run(t, "grades")
	require.NoError(t, err)
	assert.Contains(t, out, "X52")
	assert.Contains(t, out, "359")
}
