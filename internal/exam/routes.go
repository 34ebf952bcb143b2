package exam

import (
	"github.com/go-chi/chi/v5"
)

// Routes is mounted under /admin/exams behind the admin role check.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateExam)
	r.Get("/", h.ListExams)
	r.Get("/{id}", h.GetExam)
	r.Put("/{id}", h.UpdateExam)
	r.Delete("/{id}", h.DeleteExam)

	r.Get("/{id}/questions", h.ListQuestions)
	r.Post("/{id}/questions", h.AddQuestion)
	r.Put("/{id}/questions/{questionID}", h.UpdateQuestion)
	r.Delete("/{id}/questions/{questionID}", h.DeleteQuestion)
	return r
}
