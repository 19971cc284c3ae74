package grades

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Integrity/internal/calc/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	g, ok := Lookup(" x52 ")
	require.True(t, ok)
	assert.Equal(t, "X52", g.Name)
	assert.Equal(t, 359.0, g.SMYS(units.MPa))
	assert.Equal(t, 52000.0, g.SMYS(units.PSI))
	assert.Equal(t, 359.0, g.SMYS(""))

	_, ok = Lookup("Custom")
	assert.False(t, ok)
}

func TestListHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	(&Handler{}).List(rec, httptest.NewRequest(http.MethodGet, "/api/tools/b31g/grades", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []Grade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 10)
	assert.Equal(t, "Grade A", got[0].Name)
	assert.Equal(t, 80000.0, got[9].Imperial)
}
