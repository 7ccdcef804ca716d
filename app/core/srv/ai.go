package srv

import (
	"context"
	"os"
	"strconv"

	"github.com/markstyle-ai/markstyle/pkg/ai"
	openaidriver "github.com/markstyle-ai/markstyle/pkg/ai/openai"
)

// AIConfig configures the single completion provider. Any OpenAI-compatible
// endpoint works through the base url.
type AIConfig struct {
	Token       string  `toml:"token"`
	Endpoint    string  `toml:"endpoint"`
	Model       string  `toml:"model"`
	Lang        string  `toml:"lang"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

func (c *AIConfig) FromENV() {
	c.Token = os.Getenv("MARKSTYLE_AI_TOKEN")
	c.Endpoint = os.Getenv("MARKSTYLE_AI_ENDPOINT")
	c.Model = os.Getenv("MARKSTYLE_AI_MODEL")
	c.Lang = os.Getenv("MARKSTYLE_AI_LANG")
	if v := os.Getenv("MARKSTYLE_AI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
}

const (
	defaultMaxTokens   = 4096
	defaultTemperature = 0.3
)

// AI wraps the lazily-configured completion driver. It is built once at
// startup and shared by every request; when no provider is configured every
// call fails fast with ai.ErrNoProvider.
type AI struct {
	driver      ai.Completer
	maxTokens   int
	temperature float32
}

func SetupAI(cfg AIConfig) *AI {
	a := &AI{
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
	if a.maxTokens <= 0 {
		a.maxTokens = defaultMaxTokens
	}
	if a.temperature <= 0 {
		a.temperature = defaultTemperature
	}

	if cfg.Token != "" || cfg.Endpoint != "" {
		a.driver = openaidriver.New(cfg.Token, cfg.Endpoint, ai.ModelName{ChatModel: cfg.Model}, cfg.Lang)
	}
	return a
}

func (s *AI) Available() bool {
	return s.driver != nil
}

func (s *AI) Lang() string {
	if s.driver == nil {
		return ai.MODEL_BASE_LANGUAGE_EN
	}
	return s.driver.Lang()
}

func (s *AI) Complete(ctx context.Context, opts ai.CompleteOptions) (string, error) {
	if s.driver == nil {
		return "", ai.ErrNoProvider
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = s.maxTokens
	}
	if opts.Temperature == 0 {
		opts.Temperature = s.temperature
	}
	return s.driver.Complete(ctx, opts)
}

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		s.ai = SetupAI(cfg)
	}
}

// ApplyAIDriver installs a concrete driver directly, bypassing provider
// configuration. Alternate entrypoints and tests use this.
func ApplyAIDriver(driver ai.Completer) ApplyFunc {
	return func(s *Srv) {
		s.ai = &AI{
			driver:      driver,
			maxTokens:   defaultMaxTokens,
			temperature: defaultTemperature,
		}
	}
}
