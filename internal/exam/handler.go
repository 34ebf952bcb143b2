package exam

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/examhub/internal/config"
	util "github.com/saulo-duarte/examhub/internal/utils"
	"github.com/saulo-duarte/examhub/internal/validation"
)

type Handler struct {
	service ExamService
}

func NewHandler(s ExamService) *Handler {
	return &Handler{service: s}
}

// WriteError maps catalog errors onto HTTP responses. Other packages that
// call the catalog reuse it.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context())
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		log.WithField("fields", len(verr.Fields)).Warn("Exam request failed validation")
		config.JSON(w, http.StatusBadRequest, verr)
	case errors.Is(err, ErrExamNotFound), errors.Is(err, ErrQuestionNotFound):
		log.WithError(err).Warn("Exam or question not found")
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrQuestionsLocked), errors.Is(err, ErrConcurrencyConflict):
		log.WithError(err).Warn("Exam change rejected")
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.WithError(err).Error("Exam request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) CreateExam(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto CreateExamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid exam request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.service.CreateExam(r.Context(), dto)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	config.JSON(w, http.StatusCreated, e)
}

func (h *Handler) ListExams(w http.ResponseWriter, r *http.Request) {
	exams, err := h.service.ListExams(r.Context())
	if err != nil {
		WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, exams)
}

func (h *Handler) GetExam(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	e, err := h.service.GetExam(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	var dto UpdateExamDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid exam request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	e, err := h.service.UpdateExam(r.Context(), id, dto)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, e)
}

func (h *Handler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteExam(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	questions, err := h.service.ListQuestions(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	id, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	var dto QuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid exam request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.service.AddQuestion(r.Context(), id, dto)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, q)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	examID, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}
	questionID, err := util.UUIDParam(r, "questionID")
	if err != nil {
		log.WithError(err).Warn("Invalid question id")
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}

	var dto QuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid exam request body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	q, err := h.service.UpdateQuestion(r.Context(), examID, questionID, dto)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, q)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	examID, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}
	questionID, err := util.UUIDParam(r, "questionID")
	if err != nil {
		log.WithError(err).Warn("Invalid question id")
		http.Error(w, "invalid question id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), examID, questionID); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
