package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var creds accessreview.Credentials
	if err := h.decodeJSON(r, &creds); err != nil {
		h.error(w, r, err, http.StatusBadRequest)
		return
	}

	token, err := h.ar.Login(&creds)
	if err != nil {
		if errors.Is(err, accessreview.ErrInvalidPair) {
			h.error(w, r, fmt.Errorf("incorrect password for user `%s`", creds.Name), http.StatusUnauthorized)
			return
		}
		if errors.Is(err, accessreview.ErrUserNotFound) {
			h.error(w, r, fmt.Errorf("user `%s` does not exist", creds.Name), http.StatusNotFound)
			return
		}
		h.error(w, r, err, http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, r, token)
	h.logger(r).Debugf("session for user `%s` successfully created", creds.Name)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token accessreview.Token `json:"token"`
	}
	if err := h.decodeJSON(r, &req); err != nil {
		h.error(w, r, err, http.StatusBadRequest)
		return
	}

	err := h.ar.Logout(req.Token)
	if err != nil {
		if errors.Is(err, accessreview.ErrSessionNotFound) {
			h.error(w, r, fmt.Errorf("this user was not logged in, or doesn't exist"), http.StatusBadRequest)
			return
		}
		h.error(w, r, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	h.logger(r).Debugf("logout session %d", req.Token)
}
