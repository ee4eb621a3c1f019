package handlers

import (
	"net/http"
)

// ListUsers returns every user.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// GetUser returns one user.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// GetUserByEmail looks a user up by the email query parameter.
func (h *Handlers) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CurrentUser returns the authenticated caller's account.
func (h *Handlers) CurrentUser(w http.ResponseWriter, r *http.Request) {
	caller, err := identity(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.users.Get(r.Context(), caller.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// CreateUser adds an account.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	u, err := h.users.Create(r.Context(), req.toNewUser())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// UpdateUser replaces name and email and optionally changes the password.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req userRequest
	if err := decode(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if id, err = bodyID(id, req.ID); err != nil {
		h.writeError(w, r, err)
		return
	}

	u, err := h.users.Update(r.Context(), req.toUserUpdate(id))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// DeleteUser removes an account and everything it owns.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
