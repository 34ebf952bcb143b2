package assignment

import "github.com/go-chi/chi/v5"

// Routes is mounted under /admin/users/{userID}/assignments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListAssignments)
	r.Put("/", h.ReplaceAssignments)
	r.Post("/{examID}", h.Assign)
	return r
}
