package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceOrdering(t *testing.T) {
	var tr Trace
	tr.Step("Flow Stress = %.2f MPa", 427.95)
	tr.Alert("LEAK DETECTED")
	tr.Step("z = %.4f", 5.16333)
	tr.Detail("Critical Length = %.2f mm", 200.0)

	assert.Equal(t, []string{
		"1. Flow Stress = 427.95 MPa",
		"!!! LEAK DETECTED !!!",
		"2. z = 5.1633",
		"   - Critical Length = 200.00 mm",
	}, tr.Steps())
	assert.Equal(t, "1. Flow Stress = 427.95 MPa\n!!! LEAK DETECTED !!!\n2. z = 5.1633\n   - Critical Length = 200.00 mm", tr.String())
}

func TestStepsIsACopy(t *testing.T) {
	var tr Trace
	tr.Step("a")
	steps := tr.Steps()
	steps[0] = "mutated"
	tr.Step("b")
	assert.Equal(t, []string{"1. a", "2. b"}, tr.Steps())
}
