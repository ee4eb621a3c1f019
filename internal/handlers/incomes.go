package handlers

import (
	"net/http"

	"finance-tracker/internal/models"
)

// ListIncomes returns every income.
func (h *Handlers) ListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.incomes.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, incomes)
}

// GetIncome returns one income.
func (h *Handlers) GetIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	i, err := h.incomes.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, i)
}

// CreateIncome handles the creation of a new income. A missing userId means
// the caller.
func (h *Handlers) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var i models.Income
	if err := decode(w, r, &i); err != nil {
		h.writeError(w, r, err)
		return
	}
	i.ID = 0

	var err error
	if i.UserID, err = ownerOr(r, i.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.incomes.Create(r.Context(), i)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateIncome replaces an existing income. A missing userId keeps the
// stored owner.
func (h *Handlers) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var i models.Income
	if err := decode(w, r, &i); err != nil {
		h.writeError(w, r, err)
		return
	}
	if i.ID, err = bodyID(id, i.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.incomes.Update(r.Context(), i)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteIncome removes an income.
func (h *Handlers) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.incomes.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
