package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/Aravinsamy/ai-fake-image-video-detector/internal/domain/analysis"
	"github.com/Aravinsamy/ai-fake-image-video-detector/internal/infra/detector/prompt"
)

const maxTokens = 2048

// Client asks an OpenAI model for the verdict JSON. The detection
// algorithm itself stays the provider's; this adapter only speaks the
// result schema.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

func (c *Client) Detect(ctx context.Context, fileURL string, kind domain.Kind) (*domain.Result, error) {
	model := c.Model
	if model == "" {
		model = "o3-2025-04-16"
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(fileURL, string(kind))},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	res, err := domain.DecodeResult([]byte(resp.Choices[0].Message.Content))
	if err != nil {
		return nil, fmt.Errorf("decode detector output: %w", err)
	}
	normalize(res)
	return res, nil
}

// normalize keeps the payload inside the contract even when the model
// drifts: clamp scores, force the verdict label to match isAI.
func normalize(r *domain.Result) {
	clamp := func(s domain.Score) domain.Score {
		if s < 0 {
			return 0
		}
		if s > 100 {
			return 100
		}
		return s
	}
	r.Confidence = clamp(r.Confidence)
	for i := range r.Indicators {
		r.Indicators[i].Score = clamp(r.Indicators[i].Score)
	}
	if r.IsAI {
		r.Verdict = domain.VerdictAI
	} else {
		r.Verdict = domain.VerdictReal
	}
}
