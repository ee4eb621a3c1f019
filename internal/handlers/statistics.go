package handlers

import (
	"net/http"
)

// Statistics returns the caller's spending per category for one month.
// year and month default to the current month.
func (h *Handlers) Statistics(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	now := h.now()
	year, err := queryInt(r, "year", int64(now.Year()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	month, err := queryInt(r, "month", int64(now.Month()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	stats, err := h.expenses.Statistics(r.Context(), caller.UserID, int(year), int(month))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
