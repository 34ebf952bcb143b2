package assignment

import "gorm.io/gorm"

type AssignmentContainer struct {
	Repo    AssignmentRepository
	Service AssignmentService
	Handler *Handler
}

func NewAssignmentContainer(db *gorm.DB, exams ExamChecker, users UserChecker) *AssignmentContainer {
	repo := NewRepository(db)
	service := NewService(repo, exams, users)
	handler := NewHandler(service)

	return &AssignmentContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
