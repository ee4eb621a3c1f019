package handlers

import (
	"net/http"

	"finance-tracker/internal/models"
)

// ListPayments returns every payment.
func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// GetPayment returns one payment.
func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.payments.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// CreatePayment records a payment against an expense that has none yet.
func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var p models.Payment
	if err := decode(w, r, &p); err != nil {
		h.writeError(w, r, err)
		return
	}
	p.ID = 0

	created, err := h.payments.Create(r.Context(), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdatePayment replaces an existing payment.
func (h *Handlers) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var p models.Payment
	if err := decode(w, r, &p); err != nil {
		h.writeError(w, r, err)
		return
	}
	if p.ID, err = bodyID(id, p.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.payments.Update(r.Context(), p)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeletePayment removes a payment. The expense stays.
func (h *Handlers) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.payments.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
