package attempt

import "gorm.io/gorm"

type AttemptContainer struct {
	Repo    AttemptRepository
	Service AttemptService
	Handler *Handler
}

func NewAttemptContainer(db *gorm.DB, exams ExamReader, assignments AssignmentReader) *AttemptContainer {
	repo := NewRepository(db)
	service := NewService(repo, exams, assignments)
	handler := NewHandler(service)

	return &AttemptContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
