package handlers

import (
	"net/http"
)

// RecentActivities returns the caller's latest account events.
func (h *Handlers) RecentActivities(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	activities, err := h.activities.Recent(r.Context(), caller.UserID, int(limit))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}
