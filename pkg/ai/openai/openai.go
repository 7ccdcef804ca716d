package openai

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/markstyle-ai/markstyle/pkg/ai"
)

const (
	NAME = "openai"
)

// Driver speaks to any OpenAI-compatible chat completion endpoint
// (api.openai.com, deepseek, qwen, ollama behind a proxy base url).
type Driver struct {
	client *openai.Client
	model  ai.ModelName
	lang   string
}

func New(token, endpoint string, model ai.ModelName, lang string) *Driver {
	cfg := openai.DefaultConfig(token)
	if endpoint != "" {
		cfg.BaseURL = endpoint
	}

	if model.ChatModel == "" {
		model.ChatModel = openai.GPT4oMini
	}
	if lang == "" {
		lang = ai.MODEL_BASE_LANGUAGE_EN
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		lang:   lang,
	}
}

func (s *Driver) Lang() string {
	return s.lang
}

func (s *Driver) Complete(ctx context.Context, opts ai.CompleteOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.model.ChatModel,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: opts.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: opts.UserPrompt,
			},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("Completion error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("Completion error: empty choices")
	}

	slog.Debug("Complete", slog.String("driver", NAME), slog.String("model", s.model.ChatModel),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens), slog.Int("completion_tokens", resp.Usage.CompletionTokens))

	return resp.Choices[0].Message.Content, nil
}
