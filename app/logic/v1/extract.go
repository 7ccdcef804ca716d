package v1

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"

	"github.com/markstyle-ai/markstyle/app/core"
	"github.com/markstyle-ai/markstyle/pkg/ai"
	"github.com/markstyle-ai/markstyle/pkg/errors"
	"github.com/markstyle-ai/markstyle/pkg/i18n"
	"github.com/markstyle-ai/markstyle/pkg/types"
	"github.com/markstyle-ai/markstyle/pkg/utils"
)

const (
	extractMaxAttempts = 3
	extractRetryDelay  = time.Second
	maxPromptTokens    = 60000
)

type ExtractLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewExtractLogic(ctx context.Context, core *core.Core) *ExtractLogic {
	return &ExtractLogic{
		ctx:  ctx,
		core: core,
	}
}

// extractPayload is the wire shape the extraction prompt asks the model for.
type extractPayload struct {
	Rules   []types.RuleBody `json:"rules"`
	Summary string           `json:"summary"`
}

// ExtractRules asks the model to infer formatting rules from content. Parse
// failures and well-formed-but-empty results are retried with a linearly
// growing delay; a missing provider fails immediately.
func (l *ExtractLogic) ExtractRules(content string, styleTypes []string) (*types.ExtractResult, error) {
	driver := l.core.Srv().AI()
	if !driver.Available() {
		return nil, errors.New("ExtractLogic.ExtractRules.provider", i18n.ERROR_AI_NO_PROVIDER, ai.ErrNoProvider).Code(http.StatusServiceUnavailable)
	}

	system, user := ai.BuildExtractPrompt(driver.Lang(), content)
	if n, err := ai.NumTokens([]openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}, ""); err == nil && n > maxPromptTokens {
		return nil, errors.New("ExtractLogic.ExtractRules.tokens", i18n.ERROR_AI_CONTENT_TOO_LARGE, fmt.Errorf("prompt holds %d tokens", n)).Code(http.StatusBadRequest)
	}

	var (
		result  *types.ExtractResult
		lastErr error
	)
	for attempt := 1; attempt <= extractMaxAttempts; attempt++ {
		if attempt > 1 {
			// linear backoff, bounded by the attempt cap
			time.Sleep(time.Duration(attempt-1) * extractRetryDelay)
		}

		result, lastErr = l.extractOnce(system, user, styleTypes)
		if lastErr == nil {
			return result, nil
		}
		if !ai.Retryable(lastErr) {
			break
		}
	}

	return nil, l.wrapExtractError(lastErr)
}

func (l *ExtractLogic) extractOnce(system, user string, styleTypes []string) (*types.ExtractResult, error) {
	timer := l.core.Metrics().CompletionRequestTimer("extract")
	raw, err := l.core.Srv().AI().Complete(l.ctx, ai.CompleteOptions{
		SystemPrompt: system,
		UserPrompt:   user,
	})
	timer.ObserveDuration()
	if err != nil {
		l.core.Metrics().CompletionErrorInc("transport")
		return nil, err
	}

	var payload extractPayload
	if err := ai.UnmarshalResponse(raw, &payload); err != nil {
		l.core.Metrics().CompletionErrorInc("malformed")
		return nil, err
	}

	// a well-formed empty object is a model reasoning failure, not a result
	if len(payload.Rules) == 0 {
		l.core.Metrics().CompletionErrorInc("empty_extraction")
		return nil, ai.ErrEmptyExtraction
	}

	bodies := payload.Rules
	if len(styleTypes) > 0 {
		// the filter is applied after parsing, never pushed into the prompt
		wanted := lo.SliceToMap(styleTypes, func(t string) (string, struct{}) {
			return t, struct{}{}
		})
		bodies = lo.Filter(bodies, func(b types.RuleBody, _ int) bool {
			_, ok := wanted[b.Type]
			return ok
		})
	}

	now := time.Now().Unix()
	rules := lo.Map(bodies, func(b types.RuleBody, _ int) types.Rule {
		if b.Name == "" {
			b.Name = types.DefaultRuleName(b.Type)
		}
		return types.Rule{
			ID:          utils.GenUniqIDStr(),
			Type:        b.Type,
			Name:        b.Name,
			Pattern:     b.Pattern,
			Description: b.Description,
			Examples:    b.Examples,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	})

	summary := payload.Summary
	if summary == "" {
		summary = fmt.Sprintf("extracted %d rules", len(rules))
	}

	return &types.ExtractResult{
		Success: true,
		Rules:   rules,
		Message: summary,
	}, nil
}

func (l *ExtractLogic) wrapExtractError(err error) *errors.CustomizedError {
	switch {
	case ai.IsEmptyExtraction(err):
		return errors.New("ExtractLogic.ExtractRules.empty", i18n.ERROR_AI_EMPTY_EXTRACTION, err).Code(http.StatusBadGateway)
	case ai.IsMalformed(err):
		return errors.New("ExtractLogic.ExtractRules.malformed", i18n.ERROR_AI_MALFORMED, err).Code(http.StatusBadGateway)
	default:
		return errors.New("ExtractLogic.ExtractRules.complete", i18n.ERROR_INTERNAL, err)
	}
}
