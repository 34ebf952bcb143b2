package aiquiz

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/exam"
	"github.com/saulo-duarte/examhub/internal/validation"
)

var (
	ErrProviderUnavailable = errors.New("question drafting is not configured")
	ErrNoUsableDrafts      = errors.New("model returned no usable questions")
)

// QuestionWriter stores drafted questions on an exam.
type QuestionWriter interface {
	AddQuestions(ctx context.Context, examID uuid.UUID, dtos []exam.QuestionDTO) ([]*exam.Question, error)
}

type Service interface {
	DraftQuestions(ctx context.Context, req DraftRequest) ([]*exam.Question, error)
}

type service struct {
	provider  Provider
	questions QuestionWriter
}

func NewService(provider Provider, questions QuestionWriter) Service {
	return &service{provider: provider, questions: questions}
}

func (s *service) DraftQuestions(ctx context.Context, req DraftRequest) ([]*exam.Question, error) {
	log := config.WithContext(ctx).WithField("exam_id", req.ExamID)

	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, ErrProviderUnavailable
	}

	drafts, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(req))
	if err != nil {
		return nil, err
	}

	dtos := make([]exam.QuestionDTO, 0, len(drafts))
	for i, d := range drafts {
		dto, ok := ToQuestionDTO(d)
		if !ok {
			log.Warnf("[AIQUIZ] discarding malformed draft #%d", i)
			continue
		}
		dtos = append(dtos, dto)
	}
	if len(dtos) == 0 {
		return nil, ErrNoUsableDrafts
	}

	questions, err := s.questions.AddQuestions(ctx, req.ExamID, dtos)
	if err != nil {
		return nil, err
	}

	log.WithField("count", len(questions)).Info("[AIQUIZ] drafted questions stored")
	return questions, nil
}

// ToQuestionDTO maps a draft onto the catalog's question shape. It reports
// false when the draft does not have four choices or a valid A-D marker.
func ToQuestionDTO(d Draft) (exam.QuestionDTO, bool) {
	if len(d.Choices) != len(exam.AnswerMarkers) || strings.TrimSpace(d.Prompt) == "" {
		return exam.QuestionDTO{}, false
	}

	marker := parseMarker(d.CorrectAnswer)
	valid := false
	for _, m := range exam.AnswerMarkers {
		if marker == m {
			valid = true
			break
		}
	}
	if !valid {
		return exam.QuestionDTO{}, false
	}

	choices := make([]string, len(d.Choices))
	for i, c := range d.Choices {
		choices[i] = stripMarker(c, exam.AnswerMarkers[i])
	}

	return exam.QuestionDTO{
		Prompt:        strings.TrimSpace(d.Prompt),
		ChoiceA:       choices[0],
		ChoiceB:       choices[1],
		ChoiceC:       choices[2],
		ChoiceD:       choices[3],
		CorrectAnswer: marker,
	}, true
}

// parseMarker accepts a bare letter or a letter followed by one of the label
// separators, as in "B" or "B) PUT". Anything else yields "".
func parseMarker(answer string) string {
	a := strings.ToUpper(strings.TrimSpace(answer))
	switch {
	case len(a) == 1:
		return a
	case len(a) >= 2 && strings.ContainsRune(markerSeparators, rune(a[1])):
		return a[:1]
	default:
		return ""
	}
}

const markerSeparators = ").:-"

// stripMarker removes a leading "A) ", "A. " or "A: " label.
func stripMarker(choice, marker string) string {
	c := strings.TrimSpace(choice)
	if len(c) >= 2 && strings.EqualFold(c[:1], marker) && strings.ContainsRune(markerSeparators, rune(c[1])) {
		c = strings.TrimSpace(c[2:])
	}
	return c
}
