package handlers

func (h *handler) setRoutes() {
	h.r.Get("/heartbeat", h.heartbeat)

	h.r.Post("/register_user", h.register)
	h.r.Post("/login", h.login)
	h.r.Post("/logout", h.logout)

	h.r.Get("/search", h.search)
	h.r.Get("/get_data", h.getData)
	h.r.Post("/add_review", h.addReview)
	h.r.Get("/filter_reviews", h.filterReviews)
}
