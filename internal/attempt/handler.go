package attempt

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/assignment"
	"github.com/saulo-duarte/examhub/internal/auth"
	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/exam"
	util "github.com/saulo-duarte/examhub/internal/utils"
)

type Handler struct {
	service AttemptService
}

func NewHandler(s AttemptService) *Handler {
	return &Handler{service: s}
}

func callerID(r *http.Request) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.UserID)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context())
	switch {
	case errors.Is(err, exam.ErrExamNotFound),
		errors.Is(err, ErrResultNotFound),
		errors.Is(err, assignment.ErrNotAssigned):
		log.WithError(err).Warn("Exam or result not available to caller")
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoQuestions):
		log.WithError(err).Warn("Exam cannot be started")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		log.WithError(err).Error("Exam attempt request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// redirectToResult answers an already completed exam with a 303 pointing at
// the existing result.
func redirectToResult(w http.ResponseWriter, id uuid.UUID) {
	w.Header().Set("Location", "/results/"+id.String())
	config.JSON(w, http.StatusSeeOther, map[string]interface{}{
		"already_completed": true,
		"result_id":         id,
	})
}

func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := callerID(r)
	if err != nil {
		log.Warn("Unauthenticated exam request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	exams, err := h.service.ListAvailableExams(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, exams)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := callerID(r)
	if err != nil {
		log.Warn("Unauthenticated exam request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	examID, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	outcome, err := h.service.StartAttempt(r.Context(), userID, examID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if outcome.AlreadyCompleted {
		redirectToResult(w, *outcome.ResultID)
		return
	}
	config.JSON(w, http.StatusOK, outcome.Session)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := callerID(r)
	if err != nil {
		log.Warn("Unauthenticated exam request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	examID, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	var dto SubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid submission body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	outcome, err := h.service.SubmitAttempt(r.Context(), userID, examID, dto.Answers)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if outcome.AlreadyCompleted {
		redirectToResult(w, outcome.ResultID)
		return
	}

	w.Header().Set("Location", "/results/"+outcome.ResultID.String())
	config.JSON(w, http.StatusCreated, outcome)
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := callerID(r)
	if err != nil {
		log.Warn("Unauthenticated exam request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	resultID, err := util.UUIDParam(r, "id")
	if err != nil {
		log.WithError(err).Warn("Invalid result id")
		http.Error(w, "invalid result id", http.StatusBadRequest)
		return
	}

	view, err := h.service.GetResult(r.Context(), userID, resultID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, view)
}

func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := callerID(r)
	if err != nil {
		log.Warn("Unauthenticated exam request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	views, err := h.service.ListMyResults(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, views)
}
