package aiquiz

import (
	"context"

	"github.com/saulo-duarte/examhub/internal/config"
)

type AIQuizContainer struct {
	Handler *Handler
}

func NewAIQuizContainer(questions QuestionWriter) *AIQuizContainer {
	ctx := context.Background()

	provider, err := NewGeminiProvider(ctx, config.GeminiModel())
	if err != nil {
		config.Logger.WithError(err).Warn("Question drafting disabled")
		provider = nil
	}
	service := NewService(provider, questions)
	handler := NewHandler(service)

	return &AIQuizContainer{
		Handler: handler,
	}
}
