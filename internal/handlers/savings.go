package handlers

import (
	"net/http"

	"finance-tracker/internal/models"
)

// ListSavings returns every saving.
func (h *Handlers) ListSavings(w http.ResponseWriter, r *http.Request) {
	savings, err := h.savings.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, savings)
}

// GetSaving returns one saving.
func (h *Handlers) GetSaving(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	s, err := h.savings.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// CreateSaving handles the creation of a new saving. A missing userId means
// the caller.
func (h *Handlers) CreateSaving(w http.ResponseWriter, r *http.Request) {
	var s models.Saving
	if err := decode(w, r, &s); err != nil {
		h.writeError(w, r, err)
		return
	}
	s.ID = 0

	var err error
	if s.UserID, err = ownerOr(r, s.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.savings.Create(r.Context(), s)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateSaving replaces an existing saving. A missing userId keeps the
// stored owner.
func (h *Handlers) UpdateSaving(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var s models.Saving
	if err := decode(w, r, &s); err != nil {
		h.writeError(w, r, err)
		return
	}
	if s.ID, err = bodyID(id, s.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.savings.Update(r.Context(), s)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteSaving removes a saving.
func (h *Handlers) DeleteSaving(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.savings.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
