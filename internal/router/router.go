package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/examhub/internal/aiquiz"
	"github.com/saulo-duarte/examhub/internal/assignment"
	"github.com/saulo-duarte/examhub/internal/attempt"
	"github.com/saulo-duarte/examhub/internal/auth"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/middlewares"
	"github.com/saulo-duarte/examhub/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	ExamHandler       *exam.Handler
	AssignmentHandler *assignment.Handler
	AttemptHandler    *attempt.Handler
	AIQuizHandler     *aiquiz.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/exams", attempt.ExamRoutes(cfg.AttemptHandler))
		r.Mount("/results", attempt.ResultRoutes(cfg.AttemptHandler))

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireRole(string(user.RoleAdmin)))

			r.Mount("/exams", exam.Routes(cfg.ExamHandler))
			r.Mount("/question-drafts", aiquiz.Routes(cfg.AIQuizHandler))
			r.Get("/users", cfg.UserHandler.ListUsers)
			r.Mount("/users/{userID}/assignments", assignment.Routes(cfg.AssignmentHandler))
		})
	})
	return r
}
