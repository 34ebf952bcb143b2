package attempt

import "github.com/go-chi/chi/v5"

// ExamRoutes is mounted under /exams for authenticated users.
func ExamRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/available", h.ListAvailable)
	r.Post("/{id}/start", h.Start)
	r.Post("/{id}/submit", h.Submit)
	return r
}

// ResultRoutes is mounted under /results for authenticated users.
func ResultRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListResults)
	r.Get("/{id}", h.GetResult)
	return r
}
