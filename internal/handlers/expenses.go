package handlers

import (
	"net/http"

	"finance-tracker/internal/models"
	"finance-tracker/internal/storage"
)

// ListExpenses returns expenses, filtered by the userId query parameter when set.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt(r, "userId", 0)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	expenses, err := h.expenses.List(r.Context(), storage.ExpenseFilter{UserID: userID})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// GetExpense returns one expense.
func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	e, err := h.expenses.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// CreateExpense handles the creation of a new expense. A missing userId means
// the caller.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var e models.Expense
	if err := decode(w, r, &e); err != nil {
		h.writeError(w, r, err)
		return
	}
	e.ID = 0

	var err error
	if e.UserID, err = ownerOr(r, e.UserID); err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.expenses.Create(r.Context(), e)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateExpense handles the update of an existing expense. A missing userId
// keeps the stored owner.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var e models.Expense
	if err := decode(w, r, &e); err != nil {
		h.writeError(w, r, err)
		return
	}
	if e.ID, err = bodyID(id, e.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, err := h.expenses.Update(r.Context(), e)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteExpense removes an expense and its payment.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.expenses.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
