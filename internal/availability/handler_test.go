package availability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminHandlerList(t *testing.T) {
	h := NewAdminHandler(DefaultTable(), DefaultSlots(), nil)
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/admin/availability?from=2025-11-01&to=2025-11-30", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Days []OccupiedDay `json:"days"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Days, 2)
	assert.Equal(t, "2025-11-25", body.Days[0].Date.String())
	assert.Equal(t, []string{"09:00", "10:00", "14:00"}, body.Days[0].Slots)
	assert.Equal(t, CapacityOpen, body.Days[0].Capacity)
	assert.Equal(t, "2025-11-26", body.Days[1].Date.String())
}

func TestAdminHandlerBadRange(t *testing.T) {
	h := NewAdminHandler(DefaultTable(), DefaultSlots(), nil)
	for _, q := range []string{
		"",
		"?from=2025-11-01",
		"?from=2025-11-30&to=2025-11-01",
		"?from=2025-01-01&to=2025-12-31",
	} {
		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, "/admin/availability"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}
