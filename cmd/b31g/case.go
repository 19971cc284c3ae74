package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"Integrity/internal/calc/assess"
	"Integrity/internal/calc/engine"
	"gopkg.in/yaml.v3"
)

// Case is an assessment request read from a YAML (or JSON) file.
type Case struct {
	Level          string `yaml:"level" json:"level"`
	assess.Request `yaml:",inline"`
}

func readCase(path string) (Case, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return Case{}, err
		}
		defer f.Close()
		r = f
	}
	return decodeCase(r)
}

func decodeCase(r io.Reader) (Case, error) {
	var c Case
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return Case{}, fmt.Errorf("decode case: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Case{}, err
	}
	return c, nil
}

// level picks the level from the case, or from the shape of the input when
// the case does not name one.
func (c Case) level() (assess.Level, error) {
	if c.Level != "" {
		return engine.ParseLevel(c.Level)
	}
	if c.Profile != nil {
		return assess.Level2, nil
	}
	return assess.Level1, nil
}

func writeJSON(w io.Writer, a assess.Assessment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(a)
}

func writeText(w io.Writer, a assess.Assessment) error {
	res := a.Result
	pu := res.System.Pressure()
	erf := "infinite"
	if !math.IsInf(res.ERF, 1) {
		erf = strconv.FormatFloat(res.ERF, 'f', 4, 64)
	}
	fmt.Fprintf(w, "%s\n\n", res.Level)
	for _, s := range res.Steps {
		fmt.Fprintln(w, s)
	}
	fmt.Fprintf(w, "\nPf = %.2f %s, Psafe = %.2f %s, MAOP = %.2f %s, ERF = %s\n",
		res.FailurePressure, pu, res.SafePressure, pu, res.MAOP, pu, erf)
	fmt.Fprintf(w, "%s: %s\n%s\n", a.Headline, a.Verdict, a.Details)
	return nil
}
