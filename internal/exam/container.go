package exam

import "gorm.io/gorm"

type ExamContainer struct {
	Repo    ExamRepository
	Service ExamService
	Handler *Handler
}

func NewExamContainer(db *gorm.DB) *ExamContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &ExamContainer{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}
