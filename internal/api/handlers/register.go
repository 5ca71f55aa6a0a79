package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

// register creates the user and answers with a fresh session token.
func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var creds accessreview.Credentials
	if err := h.decodeJSON(r, &creds); err != nil {
		h.error(w, r, err, http.StatusBadRequest)
		return
	}

	token, err := h.ar.Register(&creds)
	if err != nil {
		// 409: name already taken
		if errors.Is(err, accessreview.ErrLoginAlreadyTaken) {
			h.error(w, r, fmt.Errorf("user not registered, name `%s` already exists", creds.Name), http.StatusConflict)
			return
		}
		h.error(w, r, fmt.Errorf("[System Bug] something has gone wrong on our end - %w", err), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, r, token)
	h.logger(r).Debugf("user `%s` registered", creds.Name)
}
