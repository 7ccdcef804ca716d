package openai

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markstyle-ai/markstyle/pkg/ai"
	"github.com/markstyle-ai/markstyle/pkg/testutils"
)

func TestNewDefaults(t *testing.T) {
	d := New("sk-test", "", ai.ModelName{}, "")
	assert.Equal(t, ai.MODEL_BASE_LANGUAGE_EN, d.Lang())

	d = New("sk-test", "http://localhost:11434/v1", ai.ModelName{ChatModel: "qwen2"}, ai.MODEL_BASE_LANGUAGE_CN)
	assert.Equal(t, ai.MODEL_BASE_LANGUAGE_CN, d.Lang())
}

// TestCompleteIntegration talks to a real endpoint; it only runs when
// credentials are present in the environment or a .env file.
func TestCompleteIntegration(t *testing.T) {
	testutils.LoadEnv()
	token := os.Getenv("MARKSTYLE_AI_TOKEN")
	if token == "" {
		t.Skip("MARKSTYLE_AI_TOKEN not set")
	}

	d := New(token, os.Getenv("MARKSTYLE_AI_ENDPOINT"), ai.ModelName{ChatModel: os.Getenv("MARKSTYLE_AI_MODEL")}, "")
	resp, err := d.Complete(context.Background(), ai.CompleteOptions{
		SystemPrompt: "Reply with the single word: pong",
		UserPrompt:   "ping",
		MaxTokens:    16,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp)
}
