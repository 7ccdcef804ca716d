package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

const (
	MODEL_BASE_LANGUAGE_CN = "zh-CN"
	MODEL_BASE_LANGUAGE_EN = "en"
)

type ModelName struct {
	ChatModel string `toml:"chat_model"`
}

// Completer is the completion capability every orchestrator depends on.
// Concrete drivers live under pkg/ai/openai; tests use stubs.
type Completer interface {
	Complete(ctx context.Context, opts CompleteOptions) (string, error)
	Lang() string
}

type CompleteOptions struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float32
}

// Failure taxonomy. NoProvider is fatal, Malformed and EmptyExtraction are
// retryable, merge failures always degrade to a plain insert.
var (
	ErrNoProvider        = errors.New("ai: no completion provider configured")
	ErrMalformedResponse = errors.New("ai: malformed model response")
	ErrEmptyExtraction   = errors.New("ai: model extracted no rules")
)

// MalformedResponseError keeps the raw completion text for diagnostics. The
// normalizer never fabricates data; callers that want to log the raw payload
// unwrap this.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMalformedResponse, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// Retryable reports whether the caller may retry the operation that produced
// err. NoProvider and plain transport errors are not retried.
func Retryable(err error) bool {
	return errors.Is(err, ErrMalformedResponse) || errors.Is(err, ErrEmptyExtraction)
}

func IsNoProvider(err error) bool {
	return errors.Is(err, ErrNoProvider)
}

func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

func IsEmptyExtraction(err error) bool {
	return errors.Is(err, ErrEmptyExtraction)
}

// NumTokens counts prompt tokens the way the OpenAI cookbook does, so
// oversized inputs can be rejected before spending a model call.
func NumTokens(messages []openai.ChatCompletionMessage, model string) (numTokens int, err error) {
	if model == "" {
		model = "gpt-4-0613"
	}
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return 0, fmt.Errorf("encoding for model: %w", err)
	}

	const tokensPerMessage = 3
	for _, message := range messages {
		numTokens += tokensPerMessage
		numTokens += len(tkm.Encode(message.Content, nil, nil))
		numTokens += len(tkm.Encode(message.Role, nil, nil))
	}
	numTokens += 3 // every reply is primed with <|start|>assistant<|message|>
	return numTokens, nil
}
