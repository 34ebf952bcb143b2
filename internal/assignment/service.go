package assignment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/user"
	"github.com/sirupsen/logrus"
)

var ErrNotAssigned = errors.New("exam is not assigned to this user")

type ExamChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountExisting(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type UserChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type AssignmentService interface {
	Assign(ctx context.Context, userID, examID uuid.UUID) error
	ReplaceAssignments(ctx context.Context, userID uuid.UUID, examIDs []uuid.UUID) error
	IsAssigned(ctx context.Context, userID, examID uuid.UUID) (bool, error)
	ListAvailable(ctx context.Context, userID uuid.UUID) ([]*AvailableExam, error)
	ListAssignments(ctx context.Context, userID uuid.UUID) ([]*UserExamAssignment, error)
}

type assignmentService struct {
	repo  AssignmentRepository
	exams ExamChecker
	users UserChecker
}

func NewService(repo AssignmentRepository, exams ExamChecker, users UserChecker) AssignmentService {
	return &assignmentService{repo: repo, exams: exams, users: users}
}

func (s *assignmentService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return user.ErrUserNotFound
	}
	return nil
}

func (s *assignmentService) Assign(ctx context.Context, userID, examID uuid.UUID) error {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"assignee_id": userID,
		"exam_id":     examID,
	})

	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	ok, err := s.exams.Exists(ctx, examID)
	if err != nil {
		return err
	}
	if !ok {
		return exam.ErrExamNotFound
	}

	created, err := s.repo.Assign(ctx, userID, examID)
	if err != nil {
		log.WithError(err).Error("Failed to assign exam")
		return err
	}
	if created {
		log.Info("Exam assigned")
	} else {
		log.Info("Exam already assigned")
	}
	return nil
}

// ReplaceAssignments swaps the user's whole assignment set for examIDs.
// Duplicate ids are collapsed and every id must name an existing exam.
func (s *assignmentService) ReplaceAssignments(ctx context.Context, userID uuid.UUID, examIDs []uuid.UUID) error {
	log := config.WithContext(ctx).WithField("assignee_id", userID)

	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	unique := dedupe(examIDs)
	if len(unique) > 0 {
		found, err := s.exams.CountExisting(ctx, unique)
		if err != nil {
			return err
		}
		if found != int64(len(unique)) {
			log.WithField("requested", len(unique)).Warn("Assignment set references unknown exams")
			return exam.ErrExamNotFound
		}
	}

	if err := s.repo.Replace(ctx, userID, unique); err != nil {
		log.WithError(err).Error("Failed to replace assignments")
		return err
	}

	log.WithField("count", len(unique)).Info("Assignments replaced")
	return nil
}

func (s *assignmentService) IsAssigned(ctx context.Context, userID, examID uuid.UUID) (bool, error) {
	return s.repo.IsAssigned(ctx, userID, examID)
}

func (s *assignmentService) ListAvailable(ctx context.Context, userID uuid.UUID) ([]*AvailableExam, error) {
	exams, err := s.repo.ListAvailable(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list available exams")
		return nil, err
	}
	return exams, nil
}

func (s *assignmentService) ListAssignments(ctx context.Context, userID uuid.UUID) ([]*UserExamAssignment, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list user assignments")
		return nil, err
	}
	return items, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
