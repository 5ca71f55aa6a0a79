package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, h.ar.Search(r.URL.Query().Get("query")))
}

func (h *handler) getData(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("restaurant")

	view, err := h.ar.GetData(name, r.URL.Query()["filter"]...)
	if err != nil {
		h.restaurantError(w, r, name, err)
		return
	}

	h.writeJSON(w, r, view)
}

func (h *handler) addReview(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("restaurant")

	var req accessreview.ReviewRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.error(w, r, err, http.StatusBadRequest)
		return
	}

	view, err := h.ar.AddReview(name, &req)
	if err != nil {
		if errors.Is(err, accessreview.ErrUnauthorizedAccess) {
			h.error(w, r, fmt.Errorf("the token provided is invalid for any user"), http.StatusUnauthorized)
			return
		}
		h.restaurantError(w, r, name, err)
		return
	}

	h.writeJSON(w, r, view)
	h.logger(r).Debugf("review added to `%s`", name)
}

func (h *handler) filterReviews(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("restaurant")

	reviews, err := h.ar.FilterReviews(name, r.URL.Query()["filter"]...)
	if err != nil {
		h.restaurantError(w, r, name, err)
		return
	}

	h.writeJSON(w, r, reviews)
}

func (h *handler) restaurantError(w http.ResponseWriter, r *http.Request, name string, err error) {
	if errors.Is(err, accessreview.ErrRestaurantNotFound) {
		h.error(w, r, fmt.Errorf("restaurant `%s` doesn't exist", name), http.StatusNotFound)
		return
	}
	h.error(w, r, err, http.StatusInternalServerError)
}
