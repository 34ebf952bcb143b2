package aiquiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/exam"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) DraftQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid draft request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	questions, err := h.service.DraftQuestions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrProviderUnavailable):
			log.Warn("Question drafting requested without a model client")
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		case errors.Is(err, ErrNoUsableDrafts), errors.Is(err, ErrEmptyResponse):
			log.WithError(err).Warn("Model produced no usable questions")
			http.Error(w, "failed to draft questions", http.StatusBadGateway)
		default:
			exam.WriteError(w, r, err)
		}
		return
	}

	config.JSON(w, http.StatusCreated, questions)
}
