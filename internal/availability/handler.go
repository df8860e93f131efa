package availability

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/streetlab/cleaners-booking/pkg/logging"
)

// maxRangeDays caps one admin query.
const maxRangeDays = 92

// AdminHandler lists occupied slots for the owner. It is read-only; the
// table is maintained outside this service.
type AdminHandler struct {
	source RangeSource
	slots  Slots
	logger *logging.Logger
}

func NewAdminHandler(source RangeSource, slots Slots, logger *logging.Logger) *AdminHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminHandler{source: source, slots: slots, logger: logger}
}

// OccupiedDay is one row of the admin listing.
type OccupiedDay struct {
	Date     Date     `json:"date"`
	Slots    []string `json:"slots"`
	Capacity Capacity `json:"capacity"`
}

// List handles GET /admin/availability?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from must be YYYY-MM-DD"})
		return
	}
	to, err := ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "to must be YYYY-MM-DD"})
		return
	}
	if to.Before(from) || from.AddDays(maxRangeDays).Before(to) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "range must be ordered and at most 92 days"})
		return
	}

	days, err := h.source.OccupiedRange(r.Context(), from, to)
	if err != nil {
		h.logger.Error("failed to list occupied slots", "error", err, "from", from.String(), "to", to.String())
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	out := make([]OccupiedDay, 0, len(days))
	for d, slots := range days {
		sort.Strings(slots)
		out = append(out, OccupiedDay{
			Date:     d,
			Slots:    slots,
			Capacity: Classify(countKnown(slots, h.slots), h.slots.Len()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	writeJSON(w, http.StatusOK, map[string]any{
		"from": from,
		"to":   to,
		"days": out,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
