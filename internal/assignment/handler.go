package assignment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/user"
	util "github.com/saulo-duarte/examhub/internal/utils"
)

type Handler struct {
	service AssignmentService
}

func NewHandler(s AssignmentService) *Handler {
	return &Handler{service: s}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context())
	switch {
	case errors.Is(err, user.ErrUserNotFound), errors.Is(err, exam.ErrExamNotFound):
		log.WithError(err).Warn("Assignment target not found")
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.WithError(err).Error("Assignment request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := util.UUIDParam(r, "userID")
	if err != nil {
		log.WithError(err).Warn("Invalid user id")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	items, err := h.service.ListAssignments(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, items)
}

func (h *Handler) ReplaceAssignments(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := util.UUIDParam(r, "userID")
	if err != nil {
		log.WithError(err).Warn("Invalid user id")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var dto ReplaceAssignmentsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid assignment body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ReplaceAssignments(r.Context(), userID, dto.ExamIDs); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := util.UUIDParam(r, "userID")
	if err != nil {
		log.WithError(err).Warn("Invalid user id")
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}
	examID, err := util.UUIDParam(r, "examID")
	if err != nil {
		log.WithError(err).Warn("Invalid exam id")
		http.Error(w, "invalid exam id", http.StatusBadRequest)
		return
	}

	if err := h.service.Assign(r.Context(), userID, examID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
