// Package trace records the intermediate quantities of an assessment as
// numbered, human-readable lines.
package trace

import (
	"fmt"
	"strings"
)

type Trace struct {
	steps []string
	n     int
}

// Step appends a numbered line. Numbering starts at 1.
func (t *Trace) Step(format string, args ...any) {
	t.n++
	t.steps = append(t.steps, fmt.Sprintf("%d. ", t.n)+fmt.Sprintf(format, args...))
}

// Detail appends an indented sub-line under the previous step.
func (t *Trace) Detail(format string, args ...any) {
	t.steps = append(t.steps, "   - "+fmt.Sprintf(format, args...))
}

// Alert appends an unnumbered line that stands out from the steps.
func (t *Trace) Alert(format string, args ...any) {
	t.steps = append(t.steps, "!!! "+fmt.Sprintf(format, args...)+" !!!")
}

// Steps returns a copy, so a finished result never shares its backing array with the trace.
func (t *Trace) Steps() []string {
	out := make([]string, len(t.steps))
	copy(out, t.steps)
	return out
}

func (t *Trace) String() string {
	return strings.Join(t.steps, "\n")
}
