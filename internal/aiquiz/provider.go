package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/saulo-duarte/examhub/internal/config"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("empty response from model")

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]Draft, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider reads its credentials from the environment
// (GEMINI_API_KEY or the Vertex AI variables).
func NewGeminiProvider(ctx context.Context, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]Draft, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(system+"\n\n"+user),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("Gemini content generation failed")
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw := result.Text()
	log.Debugf("[AIQUIZ] raw model response:\n%s", raw)

	drafts, err := DecodeDrafts(raw)
	if err != nil {
		log.WithError(err).Error("[AIQUIZ] could not decode model response")
		return nil, err
	}

	log.Infof("[AIQUIZ] model returned %d drafts", len(drafts))
	return drafts, nil
}

// DecodeDrafts parses a model reply, tolerating a surrounding markdown
// code fence.
func DecodeDrafts(raw string) ([]Draft, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return nil, ErrEmptyResponse
	}
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var drafts []Draft
	if err := json.Unmarshal([]byte(clean), &drafts); err != nil {
		return nil, fmt.Errorf("decode drafts: %w", err)
	}
	return drafts, nil
}
