package container

import (
	"context"
	"log"
	"net/http"

	"github.com/saulo-duarte/examhub/internal/aiquiz"
	"github.com/saulo-duarte/examhub/internal/assignment"
	"github.com/saulo-duarte/examhub/internal/attempt"
	"github.com/saulo-duarte/examhub/internal/auth"
	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/router"
	"github.com/saulo-duarte/examhub/internal/seed"
	"github.com/saulo-duarte/examhub/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	ExamContainer       *exam.ExamContainer
	AssignmentContainer *assignment.AssignmentContainer
	AttemptContainer    *attempt.AttemptContainer
	AIQuizContainer     *aiquiz.AIQuizContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	ctx := context.Background()
	if err := config.Connect(ctx, config.DatabaseDSN(),
		&user.User{},
		&exam.Exam{},
		&exam.Question{},
		&assignment.Assignment{},
		&attempt.Attempt{},
		&attempt.Result{},
	); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	userContainer := user.NewUserContainer(config.DB)
	examContainer := exam.NewExamContainer(config.DB)
	assignmentContainer := assignment.NewAssignmentContainer(
		config.DB,
		examContainer.Service,
		userContainer.Service,
	)
	attemptContainer := attempt.NewAttemptContainer(
		config.DB,
		examContainer.Service,
		assignmentContainer.Service,
	)
	aiQuizContainer := aiquiz.NewAIQuizContainer(examContainer.Service)

	if config.SeedEnabled() {
		seed.Run(ctx, examContainer.Service)
	}

	return &Container{
		UserContainer:       userContainer,
		ExamContainer:       examContainer,
		AssignmentContainer: assignmentContainer,
		AttemptContainer:    attemptContainer,
		AIQuizContainer:     aiQuizContainer,
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		ExamHandler:       c.ExamContainer.Handler,
		AssignmentHandler: c.AssignmentContainer.Handler,
		AttemptHandler:    c.AttemptContainer.Handler,
		AIQuizHandler:     c.AIQuizContainer.Handler,
	})
}
